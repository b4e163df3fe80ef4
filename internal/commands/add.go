package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
	"github.com/abekenov/taskdep/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task to a project.

Examples:
  taskdep add "Fix login flow"
  taskdep add "Write migration" --project backend --parent 12
  taskdep add "Ship release" --due "2 weeks" --owner 3`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		title := strings.Join(args, " ")

		projectName, _ := cmd.Flags().GetString("project")
		project, err := db.GetProjectByName(projectName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		draft := engine.TaskDraft{
			Title:     title,
			ProjectID: project.ID,
		}

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			draft.Status = status
		}
		if parent, _ := cmd.Flags().GetUint("parent"); parent != 0 {
			parentID := parent
			draft.ParentTaskID = &parentID
		}
		if owner, _ := cmd.Flags().GetUint("owner"); owner != 0 {
			ownerID := owner
			draft.OwnerID = &ownerID
		}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			dueDate, err := parser.ParseDueDate(due)
			if err != nil {
				fmt.Printf("Error parsing due date: %v\n", err)
				return
			}
			draft.Due = dueDate
		}
		if note, _ := cmd.Flags().GetString("note"); note != "" {
			draft.Note = note
		}

		eng := engine.New(db.DB)
		result, err := eng.RunBulkOperation(engine.BulkCreate,
			[]engine.BulkItem{{Create: &draft}}, actorID(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !result.Success {
			printBulkErrors(result)
			return
		}

		fmt.Printf("✅ Created task #%d: %s\n", result.TaskIDs[0], title)
		if draft.ParentTaskID != nil {
			fmt.Printf("  Parent: #%d\n", *draft.ParentTaskID)
		}
		if draft.Due != nil {
			fmt.Printf("  Due: %s\n", parser.FormatDueDate(draft.Due))
		}
	},
}

func init() {
	addCmd.Flags().StringP("project", "p", "inbox", "Project name")
	addCmd.Flags().StringP("status", "s", "", "Initial status: backlog, todo, in_progress, in_review")
	addCmd.Flags().Uint("parent", 0, "Parent task ID")
	addCmd.Flags().Uint("owner", 0, "Owner user ID")
	addCmd.Flags().String("due", "", "Due date: today, tomorrow, dd/mm/yyyy, X days, X hours, X weeks")
	addCmd.Flags().String("note", "", "Additional notes")
}
