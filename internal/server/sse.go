package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrStreamingUnsupported is returned when the underlying ResponseWriter
// cannot flush, which SSE requires.
var ErrStreamingUnsupported = errors.New("streaming not supported")

// SSEWriter streams Server-Sent Events to one client. The batch stream
// endpoint uses it to report per-resume progress while the evaluation
// runs.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares w for event streaming and sets the SSE response
// headers.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent marshals data as JSON and sends it as a named event. The
// frame is assembled first and written once, so a failed write never
// leaves a partial event on the wire.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	var frame bytes.Buffer
	fmt.Fprintf(&frame, "event: %s\n", event)
	fmt.Fprintf(&frame, "data: %s\n\n", payload)

	if _, err := s.w.Write(frame.Bytes()); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event. Write failures are ignored; if the
// client is gone there is nobody left to tell.
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends the terminal complete event with the final payload.
func (s *SSEWriter) WriteComplete(data any) {
	s.WriteEvent("complete", data) //nolint:errcheck
}
