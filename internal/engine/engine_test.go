package engine

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abekenov/taskdep/internal/db"
	"github.com/abekenov/taskdep/internal/models"
)

// Test fixture: project 1 ("alpha") and project 2 ("beta"); user 1 is a
// member of both, user 2 of neither.
const (
	projectAlpha uint = 1
	projectBeta  uint = 2
	userAlice    uint = 1
	userBob      uint = 2
)

func newTestEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "taskdep.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	seed := []any{
		&models.Project{ID: projectAlpha, Name: "alpha"},
		&models.Project{ID: projectBeta, Name: "beta"},
		&models.User{ID: userAlice, Name: "alice"},
		&models.User{ID: userBob, Name: "bob"},
		&models.ProjectMember{ProjectID: projectAlpha, UserID: userAlice},
		&models.ProjectMember{ProjectID: projectBeta, UserID: userAlice},
	}
	for _, row := range seed {
		if err := gdb.Create(row).Error; err != nil {
			t.Fatalf("failed to seed fixture: %v", err)
		}
	}

	return New(gdb), gdb
}

func createTask(t *testing.T, gdb *gorm.DB, projectID uint, title, status string, parentID *uint) uint {
	t.Helper()
	task := models.Task{Title: title, ProjectID: projectID, Status: status, ParentTaskID: parentID}
	if err := gdb.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task %q: %v", title, err)
	}
	return task.ID
}

func createEdge(t *testing.T, gdb *gorm.DB, blockingID, blockedID uint) {
	t.Helper()
	edge := models.TaskDependency{BlockingTaskID: blockingID, BlockedTaskID: blockedID}
	if err := gdb.Create(&edge).Error; err != nil {
		t.Fatalf("failed to create edge %d->%d: %v", blockingID, blockedID, err)
	}
}

func getTask(t *testing.T, gdb *gorm.DB, id uint) *models.Task {
	t.Helper()
	var task models.Task
	if err := gdb.First(&task, id).Error; err != nil {
		t.Fatalf("failed to load task #%d: %v", id, err)
	}
	return &task
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := gdb.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

func assertCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Code != code {
		t.Errorf("expected code %s, got %s (%s)", code, verr.Code, verr.Message)
	}
}

func ptr(v uint) *uint {
	return &v
}

func TestValidateAndCreateDependency(t *testing.T) {
	t.Run("creates edge and audit event", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)

		edge, err := eng.ValidateAndCreateDependency(userAlice, a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if edge.BlockingTaskID != a || edge.BlockedTaskID != b {
			t.Errorf("edge has wrong endpoints: %+v", edge)
		}
		if n := countRows(t, gdb, &models.TaskEvent{}); n != 1 {
			t.Errorf("expected 1 audit event, got %d", n)
		}
	})

	t.Run("rejects self blocking", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)

		_, err := eng.ValidateAndCreateDependency(userAlice, a, a)
		assertCode(t, err, CodeSelfBlocking)
	})

	t.Run("rejects missing tasks", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)

		_, err := eng.ValidateAndCreateDependency(userAlice, a, 999)
		assertCode(t, err, CodeNotFound)

		_, err = eng.ValidateAndCreateDependency(userAlice, 999, a)
		assertCode(t, err, CodeNotFound)
	})

	t.Run("rejects duplicate edge", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		_, err := eng.ValidateAndCreateDependency(userAlice, a, b)
		assertCode(t, err, CodeDuplicate)
	})

	t.Run("rejects cross-project edge", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectBeta, "b", models.StatusTodo, nil)

		_, err := eng.ValidateAndCreateDependency(userAlice, a, b)
		assertCode(t, err, CodeDifferentProject)
	})

	t.Run("rejects non-member actor", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)

		_, err := eng.ValidateAndCreateDependency(userBob, a, b)
		assertCode(t, err, CodePermissionDenied)
	})

	t.Run("rejects parent blocking its subtask", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		p := createTask(t, gdb, projectAlpha, "parent", models.StatusTodo, nil)
		c := createTask(t, gdb, projectAlpha, "child", models.StatusTodo, ptr(p))

		_, err := eng.ValidateAndCreateDependency(userAlice, p, c)
		assertCode(t, err, CodeDeadlock)
	})

	t.Run("rejects grandparent blocking a nested subtask", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		p := createTask(t, gdb, projectAlpha, "parent", models.StatusTodo, nil)
		c := createTask(t, gdb, projectAlpha, "child", models.StatusTodo, ptr(p))
		g := createTask(t, gdb, projectAlpha, "grandchild", models.StatusTodo, ptr(c))

		_, err := eng.ValidateAndCreateDependency(userAlice, p, g)
		assertCode(t, err, CodeDeadlock)
	})

	t.Run("allows subtask blocking its parent", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		p := createTask(t, gdb, projectAlpha, "parent", models.StatusTodo, nil)
		c := createTask(t, gdb, projectAlpha, "child", models.StatusTodo, ptr(p))

		if _, err := eng.ValidateAndCreateDependency(userAlice, c, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects closing a chain into a cycle but allows skip-level edges", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		// 1 blocks 2 blocks 3 blocks 4
		t1 := createTask(t, gdb, projectAlpha, "t1", models.StatusTodo, nil)
		t2 := createTask(t, gdb, projectAlpha, "t2", models.StatusTodo, nil)
		t3 := createTask(t, gdb, projectAlpha, "t3", models.StatusTodo, nil)
		t4 := createTask(t, gdb, projectAlpha, "t4", models.StatusTodo, nil)
		createEdge(t, gdb, t1, t2)
		createEdge(t, gdb, t2, t3)
		createEdge(t, gdb, t3, t4)

		_, err := eng.ValidateAndCreateDependency(userAlice, t4, t1)
		assertCode(t, err, CodeCircularDependency)

		// Skip-level edge along the same direction is not a cycle
		if _, err := eng.ValidateAndCreateDependency(userAlice, t1, t3); err != nil {
			t.Fatalf("unexpected error for skip-level edge: %v", err)
		}
	})
}

func TestRemoveDependency(t *testing.T) {
	t.Run("removes an existing edge", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		if err := eng.RemoveDependency(userAlice, a, b); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := countRows(t, gdb, &models.TaskDependency{}); n != 0 {
			t.Errorf("expected 0 edges, got %d", n)
		}
	})

	t.Run("rejects a missing edge", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)

		err := eng.RemoveDependency(userAlice, a, b)
		assertCode(t, err, CodeNotFound)
	})
}

func TestValidateAndReparent(t *testing.T) {
	t.Run("moves a task under a new parent", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		p := createTask(t, gdb, projectAlpha, "parent", models.StatusTodo, nil)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)

		if err := eng.ValidateAndReparent(userAlice, a, ptr(p)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		task := getTask(t, gdb, a)
		if task.ParentTaskID == nil || *task.ParentTaskID != p {
			t.Errorf("expected parent %d, got %v", p, task.ParentTaskID)
		}
	})

	t.Run("detaches a task with nil parent", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		p := createTask(t, gdb, projectAlpha, "parent", models.StatusTodo, nil)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, ptr(p))

		if err := eng.ValidateAndReparent(userAlice, a, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task := getTask(t, gdb, a); task.ParentTaskID != nil {
			t.Errorf("expected no parent, got %v", *task.ParentTaskID)
		}
	})

	t.Run("rejects self as parent", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)

		err := eng.ValidateAndReparent(userAlice, a, ptr(a))
		assertCode(t, err, CodeCircularSubtask)
	})

	t.Run("rejects a descendant as parent", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, ptr(a))
		c := createTask(t, gdb, projectAlpha, "c", models.StatusTodo, ptr(b))

		err := eng.ValidateAndReparent(userAlice, a, ptr(c))
		assertCode(t, err, CodeCircularSubtask)
	})

	t.Run("rejects a missing parent", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)

		err := eng.ValidateAndReparent(userAlice, a, ptr(999))
		assertCode(t, err, CodeInvalidParentID)
	})

	t.Run("rejects a parent from another project", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectBeta, "b", models.StatusTodo, nil)

		err := eng.ValidateAndReparent(userAlice, a, ptr(b))
		assertCode(t, err, CodeDifferentProject)
	})

	t.Run("rejects moving a blocked task under its blocker", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		err := eng.ValidateAndReparent(userAlice, b, ptr(a))
		assertCode(t, err, CodeDeadlock)
		if task := getTask(t, gdb, b); task.ParentTaskID != nil {
			t.Errorf("expected no parent, got %v", *task.ParentTaskID)
		}
	})

	t.Run("rejects moving under a subtask of the blocker", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		sub := createTask(t, gdb, projectAlpha, "sub", models.StatusTodo, ptr(a))
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		err := eng.ValidateAndReparent(userAlice, b, ptr(sub))
		assertCode(t, err, CodeDeadlock)
	})

	t.Run("rejects when a new ancestor blocks a subtask of the moved task", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		p := createTask(t, gdb, projectAlpha, "p", models.StatusTodo, nil)
		q := createTask(t, gdb, projectAlpha, "q", models.StatusTodo, ptr(p))
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		c := createTask(t, gdb, projectAlpha, "c", models.StatusTodo, ptr(b))
		createEdge(t, gdb, p, c)

		err := eng.ValidateAndReparent(userAlice, b, ptr(q))
		assertCode(t, err, CodeDeadlock)
	})

	t.Run("allows moving under a task blocked elsewhere", func(t *testing.T) {
		eng, gdb := newTestEngine(t)
		a := createTask(t, gdb, projectAlpha, "a", models.StatusTodo, nil)
		b := createTask(t, gdb, projectAlpha, "b", models.StatusTodo, nil)
		c := createTask(t, gdb, projectAlpha, "c", models.StatusTodo, nil)
		createEdge(t, gdb, a, b)

		if err := eng.ValidateAndReparent(userAlice, c, ptr(b)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
