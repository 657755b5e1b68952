package models

import (
	"time"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityP0 TaskPriority = "P0"
	PriorityP1 TaskPriority = "P1"
	PriorityP2 TaskPriority = "P2"
	PriorityP3 TaskPriority = "P3"
)

// TaskRisk represents the delivery risk attached to a task.
type TaskRisk string

const (
	RiskLow    TaskRisk = "low"
	RiskMedium TaskRisk = "medium"
	RiskHigh   TaskRisk = "high"
)

// TaskRole represents the role a task is intended for.
type TaskRole string

const (
	RoleFrontend TaskRole = "frontend"
	RoleBackend  TaskRole = "backend"
	RoleInfra    TaskRole = "infra"
	RoleQA       TaskRole = "qa"
	RolePM       TaskRole = "pm"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusPlanned    TaskStatus = "planned"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// Task represents a single generated implementation task.
//
// IDs follow the pattern `[A-Z]-\d{3}` (e.g. "T-001") and must be unique
// within a collection. Dependencies reference other task IDs in the same
// collection; collection-level rules (uniqueness, acyclicity, dangling
// references) live in the graph package, not here.
type Task struct {
	ID           string        `json:"id" validate:"required,task_id,max=32"`
	Title        string        `json:"title" validate:"required,min=3,max=140"`
	Description  string        `json:"description,omitempty"`
	Details      string        `json:"details,omitempty"`
	TestStrategy string        `json:"testStrategy,omitempty"`
	Tags         []string      `json:"tags,omitempty" validate:"max=8,dive,nonempty"`
	Deps         []string      `json:"deps,omitempty" validate:"max=16,dive,nonempty"`
	Steps        []string      `json:"steps" validate:"required,min=1,max=20,dive,nonempty"`
	Metadata     *TaskMetadata `json:"metadata,omitempty"`
}

// TaskMetadata carries planning metadata attached to a task.
type TaskMetadata struct {
	Priority    TaskPriority `json:"priority" validate:"required,oneof=P0 P1 P2 P3"`
	Risk        TaskRisk     `json:"risk" validate:"required,oneof=low medium high"`
	EffortHours float64      `json:"effort_hours" validate:"required,min=2,max=24"`
	Role        TaskRole     `json:"role" validate:"required,oneof=frontend backend infra qa pm"`
	Status      TaskStatus   `json:"status" validate:"required,oneof=planned in-progress completed"`
	Created     time.Time    `json:"created" validate:"required"`
	Updated     time.Time    `json:"updated" validate:"required"`
}

// TasksJson is the top-level task collection returned by every generator.
type TasksJson struct {
	Version Version `json:"version"`
	Tasks   []Task  `json:"tasks" validate:"required,min=1,max=200,dive"`
}
