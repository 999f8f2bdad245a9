package testutil

import (
	"bytes"
	"errors"
	"strings"
	"sync"
)

// Recorder is an output sink that keeps every character it receives.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
// The engine itself writes from a single goroutine; the mutex lets tests
// inspect output written by a watcher or CLI goroutine.
type Recorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// WriteByte implements io.ByteWriter.
func (r *Recorder) WriteByte(c byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.WriteByte(c)
}

// String returns everything written so far.
func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

// Bytes returns a copy of everything written so far.
func (r *Recorder) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bytes.Clone(r.buf.Bytes())
}

// Len returns the number of characters written so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Len()
}

// Lines splits the output on CRLF. A trailing terminator does not produce a
// final empty line.
func (r *Recorder) Lines() []string {
	out := strings.TrimSuffix(r.String(), "\r\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\r\n")
}

// Reset discards everything written so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.Reset()
}

// ErrSinkClosed is returned by FailingSink once its budget is spent.
var ErrSinkClosed = errors.New("sink closed")

// FailingSink accepts Budget characters and then fails every write.
type FailingSink struct {
	Budget int
	Recorder
}

// WriteByte implements io.ByteWriter.
func (s *FailingSink) WriteByte(c byte) error {
	if s.Len() >= s.Budget {
		return ErrSinkClosed
	}
	return s.Recorder.WriteByte(c)
}
