package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history [task-id]",
	Short: "Show the audit trail of a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		events, err := db.GetEventsForTask(ids[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(events) == 0 {
			fmt.Printf("No history for task #%d\n", ids[0])
			return
		}

		for _, event := range events {
			line := fmt.Sprintf("%s  %-20s by user #%d",
				event.CreatedAt.Format("2006-01-02 15:04"), event.EventType, event.ActorID)
			if event.OldValue != "" || event.NewValue != "" {
				line += fmt.Sprintf("  %q -> %q", event.OldValue, event.NewValue)
			}
			fmt.Println(line)
		}
	},
}
