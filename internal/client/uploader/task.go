// Package uploader manages a queue of pending local files and drives the
// two-phase upload protocol: request a one-time signed URL, then stream the
// payload directly to the object store. Each task owns a small status state
// machine with byte-level progress and per-file retry.
package uploader

import "errors"

// Status is the lifecycle state of one upload task.
//
// Allowed transitions: pending -> uploading -> success | error, and
// error -> uploading on retry. Nothing else.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

var (
	// ErrTransferInFlight is returned when a task or the whole queue is
	// torn down while a transfer is still running. Aborting mid-PUT would
	// leave the remote object half-written.
	ErrTransferInFlight = errors.New("transfer in flight")

	ErrQueueClosed  = errors.New("upload queue closed")
	ErrTaskNotFound = errors.New("task not found")
)

// LocalFile describes the file behind a task.
type LocalFile struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
}

// Task is one queued upload. Tasks are ephemeral and client-held; nothing
// about them is persisted server-side.
type Task struct {
	ID           string
	File         LocalFile
	Status       Status
	Progress     int
	ErrorMessage string

	preview *Preview
}
