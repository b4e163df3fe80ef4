package models

import (
	"time"
)

// Project groups tasks. Project CRUD lives outside the engine; the engine
// only reads projects to scope permission checks.
type Project struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name string `gorm:"unique;not null" json:"name"`
}

// User is a collaborator. Account management is out of scope; the engine
// needs users only as actors and owners.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name string `gorm:"unique;not null" json:"name"`
}

// ProjectMember grants a user access to a project's tasks.
type ProjectMember struct {
	ProjectID uint   `gorm:"primaryKey" json:"project_id"`
	UserID    uint   `gorm:"primaryKey" json:"user_id"`
	Role      string `gorm:"default:member" json:"role"`
}
