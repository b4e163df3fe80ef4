package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
)

var rmCmd = &cobra.Command{
	Use:     "rm [task-id...]",
	Aliases: []string{"delete"},
	Short:   "Delete tasks with their subtasks and dependencies",
	Long: `Delete tasks. The whole subtask subtree goes with each task, along
with its dependency edges and history. Tasks that were only blocked by a
deleted task are reported as newly unblocked.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		eng := engine.New(db.DB)
		result, err := eng.RunBulkOperation(engine.BulkDelete, idItems(ids), actorID(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !result.Success {
			printBulkErrors(result)
			return
		}

		for _, id := range result.TaskIDs {
			fmt.Printf("🗑️  Deleted task #%d\n", id)
		}
		for _, id := range result.AffectedTaskIDs {
			fmt.Printf("🔓 Task #%d is no longer blocked\n", id)
		}
	},
}
