package dialogue

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// handleWebSocket carries the exchange protocol over one socket: the client
// sends {"type":"start"} or {"type":"submit","text":...}, the server pushes
// the same event frames as the SSE endpoints. Messages are handled strictly
// sequentially, matching the one-exchange-at-a-time orchestrator contract.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	orch, _, err := h.current()
	if err != nil {
		utilsError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[dialogue] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := func(event Event) {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("[dialogue] websocket write failed: %v", err)
		}
	}
	sink := func(chunk string) {
		send(Event{Event: "delta", Content: chunk})
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[dialogue] websocket read failed: %v", err)
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			send(Event{Event: "error", Error: "invalid message"})
			continue
		}

		switch msg.Type {
		case "start":
			if err := orch.Start(r.Context(), sink); err != nil {
				send(Event{Event: "error", Error: err.Error()})
			}
		case "submit":
			if err := orch.Submit(r.Context(), msg.Text, sink); err != nil {
				send(Event{Event: "error", Error: err.Error()})
			}
		default:
			send(Event{Event: "error", Error: "unknown message type"})
			continue
		}

		snapshot := orch.Snapshot()
		payload, err := json.Marshal(snapshot)
		if err != nil {
			send(Event{Event: "error", Error: "failed to encode snapshot"})
			continue
		}
		send(Event{Event: "snapshot", Content: string(payload)})
	}
}

func utilsError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
