package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StreamEvents handles GET /events[?key=...].
// It streams storage changes as Server-Sent Events until the client goes
// away. Repeating ?key= narrows the stream to those keys.
func (s *Server) StreamEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The stream outlives the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	changes, cancel := s.events.Subscribe(r.URL.Query()["key"]...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		s.log.WarnContext(r.Context(), "event stream cannot flush", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			data, err := json.Marshal(c)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: storage\ndata: %s\n\n", data)
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
