package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
	"github.com/abekenov/taskdep/internal/parser"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task's title, status, due date or note",
	Long: `Edit task fields. Setting a terminal status (done, not_needed) runs
the same blocking and subtask checks as 'taskdep done'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		ids, err := parseTaskIDs(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		patch := engine.TaskPatch{}
		changed := false

		if title, _ := cmd.Flags().GetString("title"); title != "" {
			patch.Title = &title
			changed = true
		}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			patch.Status = &status
			changed = true
		}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			dueDate, err := parser.ParseDueDate(due)
			if err != nil {
				fmt.Printf("Error parsing due date: %v\n", err)
				return
			}
			patch.Due = dueDate
			changed = true
		}
		if note, _ := cmd.Flags().GetString("note"); note != "" {
			patch.Note = &note
			changed = true
		}

		if !changed {
			fmt.Println("Nothing to change. Use --title, --status, --due or --note.")
			return
		}

		eng := engine.New(db.DB)
		result, err := eng.RunBulkOperation(engine.BulkUpdate,
			[]engine.BulkItem{{TaskID: ids[0], Patch: &patch}}, actorID(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !result.Success {
			printBulkErrors(result)
			return
		}

		fmt.Printf("✏️  Updated task #%d\n", ids[0])
	},
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("status", "s", "", "New status")
	editCmd.Flags().String("due", "", "New due date: today, tomorrow, dd/mm/yyyy, X days, X hours, X weeks")
	editCmd.Flags().String("note", "", "New note")
}
