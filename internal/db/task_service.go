package db

import (
	"fmt"

	"github.com/abekenov/taskdep/internal/models"
)

// GetTasks retrieves all tasks ordered by ID. All task mutations go
// through the engine so its validation cannot be bypassed; this package
// only serves reads for display.
func GetTasks() ([]models.Task, error) {
	var tasks []models.Task

	if err := DB.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetTaskByID retrieves a task by ID
func GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task

	err := DB.First(&task, id).Error
	if err != nil {
		return nil, fmt.Errorf("task #%d not found", id)
	}

	return &task, nil
}

// GetProjectByName retrieves a project by name
func GetProjectByName(name string) (*models.Project, error) {
	var project models.Project

	err := DB.Where("name = ?", name).First(&project).Error
	if err != nil {
		return nil, fmt.Errorf("project %q not found", name)
	}

	return &project, nil
}

// GetEventsForTask retrieves the audit trail for a task, oldest first
func GetEventsForTask(taskID uint) ([]models.TaskEvent, error) {
	var events []models.TaskEvent

	err := DB.Where("task_id = ?", taskID).Order("id ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

// GetDependenciesForTask returns the edges blocking the given task
func GetDependenciesForTask(taskID uint) ([]models.TaskDependency, error) {
	var edges []models.TaskDependency

	err := DB.Where("blocked_task_id = ?", taskID).Find(&edges).Error
	if err != nil {
		return nil, err
	}

	return edges, nil
}
