package engine

import (
	"testing"

	"github.com/abekenov/taskdep/internal/models"
)

func TestComputeIsBlocked(t *testing.T) {
	t.Run("task with no dependencies is not blocked", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)

		blocked, err := eng.ComputeIsBlocked(a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if blocked {
			t.Error("expected not blocked")
		}
	})

	t.Run("blocked state follows the blocker's terminal status", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)

		// Adding an edge from a non-terminal task flips b to blocked
		createEdge(t, gdb, a, b)
		blocked, err := eng.ComputeIsBlocked(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !blocked {
			t.Error("expected blocked after adding edge from open task")
		}

		// Marking the blocker terminal flips it back
		if err := gdb.Model(&models.Task{}).Where("id = ?", a).
			Update("status", models.StatusDone).Error; err != nil {
			t.Fatalf("failed to update status: %v", err)
		}
		blocked, err = eng.ComputeIsBlocked(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if blocked {
			t.Error("expected unblocked after blocker completed")
		}
	})

	t.Run("not_needed counts the same as done", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusNotNeeded, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		blocked, err := eng.ComputeIsBlocked(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if blocked {
			t.Error("a not_needed blocker must not block")
		}
	})

	t.Run("one incomplete blocker among complete ones still blocks", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusDone, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusInProgress, nil)
		c := createTask(t, gdb, projectAlpha, "c", models.StatusTodo, nil)
		createEdge(t, gdb, a, c)
		createEdge(t, gdb, b, c)

		blocked, err := eng.ComputeIsBlocked(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !blocked {
			t.Error("expected blocked while one blocker is incomplete")
		}
	})
}

func TestComputeIsBlockedBulk(t *testing.T) {
	t.Run("every requested ID appears in the result", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		c := createTask(t, gdb, projectAlpha, "c", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		result, err := eng.ComputeIsBlockedBulk([]uint{a, b, c}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(result))
		}
		if result[a] || !result[b] || result[c] {
			t.Errorf("unexpected blocked states: %v", result)
		}
	})

	t.Run("override treats chosen blockers as terminal", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		result, err := eng.ComputeIsBlockedBulk([]uint{b}, map[uint]bool{a: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result[b] {
			t.Error("override should have unblocked b")
		}
	})

	t.Run("empty input returns an empty map", func(t *testing.T) {
		eng, _ := newTestEngine(t)

		result, err := eng.ComputeIsBlockedBulk(nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("expected empty result, got %v", result)
		}
	})
}
