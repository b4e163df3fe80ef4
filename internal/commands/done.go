package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id...]",
	Short: "Mark one or more tasks as completed",
	Long: `Mark tasks as done. All tasks are validated together: tasks that
block each other can be completed in one call, and if any task in the
batch is still blocked or has open subtasks, nothing is applied.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		eng := engine.New(db.DB)
		result, err := eng.RunBulkOperation(engine.BulkMarkDone, idItems(ids), actorID(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !result.Success {
			printBulkErrors(result)
			return
		}

		for _, id := range result.TaskIDs {
			fmt.Printf("✅ Marked task #%d as done\n", id)
		}
	},
}
