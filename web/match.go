package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// MatchEvent is the payload the patota backend posts when a match changes server-side
// (another admin advanced it from the app, a score came in, etc)
type MatchEvent struct {
	GroupID string `json:"groupId"`
	MatchID string `json:"matchId"`
	Event   string `json:"event"`
}

// MatchWebhookHandler HTTP endpoint that receives match change events from the patota
// backend, used to announce server-side changes to the Discord channel without polling
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Kicks off a status re-fetch and posts the fresh summary to the channel
func (s *Server) MatchWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var event MatchEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("failed to decode webhook:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if s.groupID != "" && event.GroupID != s.groupID {
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Printf("match event group=%s match=%s event=%s\n", event.GroupID, event.MatchID, event.Event)

	// Re-fetch asynchronously so the backend's webhook delivery does not wait on us
	go func(e MatchEvent) {
		res, err := s.api.Status(context.Background())
		if err != nil {
			log.Println("status refresh failed:", err)
			return
		}
		if s.announce != nil {
			s.announce("Match updated (" + e.Event + ")\n" + res)
		}
	}(event)

	w.WriteHeader(http.StatusOK)
}
