package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrStreamingUnsupported = errors.New("response writer does not support flushing")

// Writer encodes increments as event-stream lines. Headers are sent on the
// first write so callers can still answer with a plain error status when the
// upstream fails before producing anything.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}
	return &Writer{w: w, flusher: flusher}, nil
}

func (s *Writer) Started() bool {
	return s.started
}

func (s *Writer) start() {
	if s.started {
		return
	}
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	s.w.WriteHeader(http.StatusOK)
	s.started = true
}

// WriteDelta sends one content increment.
func (s *Writer) WriteDelta(content string) error {
	payload, err := json.Marshal(chunk{Choices: []choice{{Delta: delta{Content: &content}}}})
	if err != nil {
		return fmt.Errorf("encoding delta: %w", err)
	}
	return s.writeLine(string(payload))
}

// Done sends the terminating sentinel.
func (s *Writer) Done() error {
	return s.writeLine(doneSentinel)
}

func (s *Writer) writeLine(payload string) error {
	s.start()
	if _, err := fmt.Fprintf(s.w, "%s%s\n\n", dataPrefix, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
