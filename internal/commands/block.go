package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
)

var blockCmd = &cobra.Command{
	Use:   "block [blocking-id] [blocked-id]",
	Short: "Make one task block another",
	Long: `Add a dependency edge: the second task cannot be completed until
the first one is done or not needed. The edge is rejected if it would
create a cycle, a self-reference, or a parent blocking its own subtask.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		eng := engine.New(db.DB)
		if _, err := eng.ValidateAndCreateDependency(actorID(cmd), ids[0], ids[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🔒 Task #%d now blocks task #%d\n", ids[0], ids[1])
	},
}

var unblockCmd = &cobra.Command{
	Use:   "unblock [blocking-id] [blocked-id]",
	Short: "Remove a blocking dependency between two tasks",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		eng := engine.New(db.DB)
		if err := eng.RemoveDependency(actorID(cmd), ids[0], ids[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🔓 Task #%d no longer blocks task #%d\n", ids[0], ids[1])
	},
}
