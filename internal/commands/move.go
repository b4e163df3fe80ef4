package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
)

var moveCmd = &cobra.Command{
	Use:     "mv [task-id] [new-parent-id|root]",
	Aliases: []string{"move"},
	Short:   "Move a task under a new parent",
	Long: `Reparent a task in the subtask tree. Use "root" as the second
argument to detach the task. Moves that would make a task its own
ancestor are rejected.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args[:1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		taskID := ids[0]

		var newParentID *uint
		if args[1] != "root" {
			parents, err := parseTaskIDs(args[1:])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			newParentID = &parents[0]
		}

		eng := engine.New(db.DB)
		if err := eng.ValidateAndReparent(actorID(cmd), taskID, newParentID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if newParentID != nil {
			fmt.Printf("🌲 Moved task #%d under task #%d\n", taskID, *newParentID)
		} else {
			fmt.Printf("🌲 Moved task #%d to the root\n", taskID)
		}
	},
}
