package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
	"github.com/abekenov/taskdep/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse tasks interactively",
	Long:  "Open a full-screen view of all tasks with their blocked state.",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		tasks, err := db.GetTasks()
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		ids := make([]uint, len(tasks))
		for i, task := range tasks {
			ids[i] = task.ID
		}
		eng := engine.New(db.DB)
		blocked, err := eng.ComputeIsBlockedBulk(ids, nil)
		if err != nil {
			fmt.Printf("Error computing blocked state: %v\n", err)
			return
		}

		if err := tui.RunBoardTUI(tasks, blocked); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}
