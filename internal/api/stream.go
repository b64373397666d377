package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	EnableCompression: true,
}

// subscribeMessage is the first frame a client sends after connecting.
type subscribeMessage struct {
	Symbols   []string `json:"symbols"`
	Timeframe string   `json:"timeframe"`
}

// streamFrame is one pushed update on the websocket.
type streamFrame struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
	TS     string `json:"ts"`
}

// handleStream upgrades to websocket, reads one subscribe message and
// pushes fresh level summaries for the subscribed symbols on every tick.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", slog.Any("err", err))
		return
	}
	defer conn.Close()

	s.prom.StreamClients.Inc()
	defer s.prom.StreamClients.Dec()

	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return
	}
	var sub subscribeMessage
	if err := json.Unmarshal(raw, &sub); err != nil || len(sub.Symbols) == 0 {
		conn.WriteJSON(streamFrame{
			Type:  "error",
			Error: "expected subscribe message with symbols",
			TS:    time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if sub.Timeframe == "" {
		sub.Timeframe = "H1"
	}
	conn.SetReadDeadline(time.Time{})

	s.log.Info("ws client subscribed",
		slog.Any("symbols", sub.Symbols),
		slog.String("timeframe", sub.Timeframe))

	// Drain further client frames so pings and close frames are handled.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()

	// First push immediately rather than waiting one interval.
	ctx := r.Context()
	if err := s.pushSummaries(ctx, conn, sub); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.pushSummaries(ctx, conn, sub); err != nil {
				return
			}
		}
	}
}

func (s *Server) pushSummaries(ctx context.Context, conn *websocket.Conn, sub subscribeMessage) error {
	for _, symbol := range sub.Symbols {
		summary, err := s.svc.Analyze(ctx, symbol, sub.Timeframe)
		frame := streamFrame{
			Type:   "summary",
			Symbol: symbol,
			TS:     time.Now().UTC().Format(time.RFC3339),
		}
		if err != nil {
			frame.Type = "error"
			frame.Error = err.Error()
		} else {
			frame.Data = summary
		}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(frame); err != nil {
			return err
		}
	}
	return nil
}
