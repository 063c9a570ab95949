package uploader

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Queue holds upload tasks in insertion order and enforces the task state
// machine. All methods are safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	order  []string
	tasks  map[string]*Task
	closed bool
}

func NewQueue() *Queue {
	return &Queue{tasks: make(map[string]*Task)}
}

// Add queues the given local files. Files whose base name matches an
// already queued task are not queued again; their names come back in the
// duplicates slice so the caller can tell the operator instead of silently
// dropping them.
func (q *Queue) Add(paths ...string) (added []Task, duplicates []string, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, nil, ErrQueueClosed
	}

	for _, path := range paths {
		name := filepath.Base(path)
		if q.hasNameLocked(name) {
			duplicates = append(duplicates, name)
			continue
		}

		info, statErr := os.Stat(path)
		if statErr != nil {
			return added, duplicates, fmt.Errorf("stat %s: %w", path, statErr)
		}
		if info.IsDir() {
			return added, duplicates, fmt.Errorf("%s is a directory", path)
		}

		task := &Task{
			ID: uuid.NewString(),
			File: LocalFile{
				Path:        path,
				Name:        name,
				Size:        info.Size(),
				ContentType: DetectContentType(name),
			},
			Status: StatusPending,
		}

		if isImage(task.File.ContentType) {
			p, pErr := newPreview(path)
			if pErr != nil {
				return added, duplicates, fmt.Errorf("open preview for %s: %w", path, pErr)
			}
			task.preview = p
		}

		q.order = append(q.order, task.ID)
		q.tasks[task.ID] = task
		added = append(added, *task)
	}
	return added, duplicates, nil
}

// Tasks returns a snapshot of the queue in insertion order.
func (q *Queue) Tasks() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Task, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, *q.tasks[id])
	}
	return out
}

// Task returns a snapshot of a single task.
func (q *Queue) Task(id string) (Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *t, nil
}

// Remove drops a task and releases its preview. A task whose transfer is
// running cannot be removed.
func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if t.Status == StatusUploading {
		return ErrTransferInFlight
	}

	q.releaseLocked(t)
	delete(q.tasks, id)
	for i, v := range q.order {
		if v == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return nil
}

// Replace swaps the file behind an existing slot for a different one,
// releasing the old preview. The task returns to pending with progress and
// error cleared.
func (q *Queue) Replace(id, path string) (Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	if t.Status == StatusUploading {
		return Task{}, ErrTransferInFlight
	}

	info, err := os.Stat(path)
	if err != nil {
		return Task{}, fmt.Errorf("stat %s: %w", path, err)
	}

	name := filepath.Base(path)
	file := LocalFile{Path: path, Name: name, Size: info.Size(), ContentType: DetectContentType(name)}

	var preview *Preview
	if isImage(file.ContentType) {
		preview, err = newPreview(path)
		if err != nil {
			return Task{}, fmt.Errorf("open preview for %s: %w", path, err)
		}
	}

	q.releaseLocked(t)
	t.File = file
	t.preview = preview
	t.Status = StatusPending
	t.Progress = 0
	t.ErrorMessage = ""
	return *t, nil
}

// Close tears the queue down and releases every preview. Refused while any
// transfer is running.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.tasks {
		if t.Status == StatusUploading {
			return ErrTransferInFlight
		}
	}
	for _, t := range q.tasks {
		q.releaseLocked(t)
	}
	q.tasks = make(map[string]*Task)
	q.order = nil
	q.closed = true
	return nil
}

func (q *Queue) hasNameLocked(name string) bool {
	for _, t := range q.tasks {
		if t.File.Name == name {
			return true
		}
	}
	return false
}

func (q *Queue) releaseLocked(t *Task) {
	if t.preview != nil {
		t.preview.Release()
	}
}

// markUploading moves a task into uploading. Only pending and error tasks
// may start a transfer; a second concurrent transfer for the same task is
// refused.
func (q *Queue) markUploading(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	switch t.Status {
	case StatusPending, StatusError:
		t.Status = StatusUploading
		t.Progress = 0
		t.ErrorMessage = ""
		return nil
	case StatusUploading:
		return ErrTransferInFlight
	default:
		return fmt.Errorf("task %s already finished", id)
	}
}

// setProgress records transfer progress. The value is clamped below 100:
// full progress is reserved for a confirmed success.
func (q *Queue) setProgress(id string, pct int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tasks[id]
	if !ok || t.Status != StatusUploading {
		return
	}
	if pct > 99 {
		pct = 99
	}
	if pct > t.Progress {
		t.Progress = pct
	}
}

func (q *Queue) markSuccess(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.tasks[id]; ok && t.Status == StatusUploading {
		t.Status = StatusSuccess
		t.Progress = 100
	}
}

func (q *Queue) markError(id, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.tasks[id]; ok && t.Status == StatusUploading {
		t.Status = StatusError
		t.ErrorMessage = msg
	}
}
