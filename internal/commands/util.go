package commands

import (
	"fmt"
	"strconv"

	"github.com/abekenov/taskdep/internal/engine"
)

// parseTaskIDs converts command arguments into task IDs
func parseTaskIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid task ID '%s'", arg)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// idItems wraps task IDs as bulk items
func idItems(ids []uint) []engine.BulkItem {
	items := make([]engine.BulkItem, len(ids))
	for i, id := range ids {
		items[i] = engine.BulkItem{TaskID: id}
	}
	return items
}

// printBulkErrors prints the per-item errors of a rejected batch
func printBulkErrors(result *engine.BulkResult) {
	fmt.Println("❌ Nothing was applied:")
	for _, e := range result.Errors {
		if e.TaskID != nil {
			fmt.Printf("  [%s] task #%d: %s\n", e.Code, *e.TaskID, e.Message)
		} else {
			fmt.Printf("  [%s] %s\n", e.Code, e.Message)
		}
	}
}
