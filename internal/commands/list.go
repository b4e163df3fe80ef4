package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/engine"
	"github.com/abekenov/taskdep/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks with their parent, owner, blocked state and due date",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		tasks, err := db.GetTasks()
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'taskdep add \"task title\"' to create your first task.")
			return
		}

		// One bulk call for the whole listing, never one query per task
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

		// Print table header
		fmt.Printf("%-4s %-12s %-40s %-7s %-7s %-8s %s\n", "ID", "STATUS", "TITLE", "PARENT", "OWNER", "BLOCKED", "DUE")
		fmt.Println(strings.Repeat("-", 96))

		for _, task := range tasks {
			// Truncate title if too long
			title := task.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}

			parent := ""
			if task.ParentTaskID != nil {
				parent = fmt.Sprintf("#%d", *task.ParentTaskID)
			}
			owner := ""
			if task.OwnerID != nil {
				owner = fmt.Sprintf("#%d", *task.OwnerID)
			}
			blockedStr := ""
			if blocked[task.ID] {
				blockedStr = "🔒"
			}

			fmt.Printf("%-4d %-12s %-40s %-7s %-7s %-8s %s\n",
				task.ID,
				task.Status,
				title,
				parent,
				owner,
				blockedStr,
				parser.FormatDueDate(task.Due))
		}
	},
}
