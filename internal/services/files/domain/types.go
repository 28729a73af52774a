// Package domain defines the types and ports of the files service
package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileRecord is one persisted file change, append only
type FileRecord struct {
	ID        uuid.UUID
	Path      string
	Event     string // always an eventclass label, never empty
	CreatedAt time.Time
}

// ChangeNotification is what the upload watcher posts for every change
type ChangeNotification struct {
	File  string `json:"file"  validate:"notblank" example:"/home/foo/upload/motion/cam1.jpg"`
	Event string `json:"event" validate:"notblank" example:"CREATE"`
}

// Ingested is a persisted record plus the change type echoed back to the caller
type Ingested struct {
	Record     FileRecord
	ChangeType string
}

// PoolStatus is a point in time view of the record store pool
type PoolStatus struct {
	TotalConnections int
	IdleConnections  int
	WaitingRequests  int
}
