package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
)

var takeCmd = &cobra.Command{
	Use:   "take [task-id...]",
	Short: "Take ownership of one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		eng := engine.New(db.DB)
		result, err := eng.RunBulkOperation(engine.BulkTakeOwnership, idItems(ids), actorID(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !result.Success {
			printBulkErrors(result)
			return
		}

		for _, id := range result.TaskIDs {
			fmt.Printf("🙋 Took ownership of task #%d\n", id)
		}
	},
}
