package model

import (
	"github.com/rs/xid"
)

// TaskID identifies a background task. It is globally unique and sortable
// by creation time.
type TaskID string

func NewTaskID() TaskID {
	return TaskID(xid.New().String())
}

// Task is a unit of background work dispatched by the task runner to the
// handler registered for its type.
type Task interface {
	ID() TaskID
	Type() TaskType
}

type TaskType string
