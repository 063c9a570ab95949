package uploader

import (
	"os"
	"sync"
	"sync/atomic"
)

// Preview is the local preview resource held for an image task: an open
// handle on the source file. It must be released exactly once, when the
// task is removed, replaced, or the queue is torn down, otherwise handles
// leak across repeated open/close cycles of the upload dialog.
type Preview struct {
	f        *os.File
	once     sync.Once
	released atomic.Bool
}

func newPreview(path string) (*Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Preview{f: f}, nil
}

// Release closes the underlying handle. Safe to call more than once; only
// the first call does anything.
func (p *Preview) Release() {
	p.once.Do(func() {
		p.released.Store(true)
		_ = p.f.Close()
	})
}

// Released reports whether the resource has been freed.
func (p *Preview) Released() bool {
	return p.released.Load()
}
