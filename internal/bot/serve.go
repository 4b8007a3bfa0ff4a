package bot

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/headsup/internal/game"
)

// Server exposes deciders over the websocket protocol spoken by Remote. Each
// connection is one match and gets a fresh decider.
type Server struct {
	newDecider func() game.Decider
	upgrader   websocket.Upgrader
	logger     *log.Logger
}

// NewServer creates a handler serving deciders made by newDecider.
func NewServer(newDecider func() game.Decider, logger *log.Logger) *Server {
	return &Server{
		newDecider: newDecider,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.WithPrefix("server"),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	d := s.newDecider()
	defer Close(d)
	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("Harness connected")

	for {
		var req remoteRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Read failed", "error", err)
			}
			logger.Info("Harness disconnected")
			return
		}
		if req.Type != "decide" {
			logger.Warn("Ignoring message", "type", req.Type)
			continue
		}

		var reply botReply
		action, mem, err := d.Decide(r.Context(), req.State, req.Memory)
		if err != nil {
			// A reply without an action makes the harness fold.
			logger.Warn("Decider failed", "error", err)
		} else {
			reply = botReply{Action: &action, Memory: mem}
		}
		if err := conn.WriteJSON(remoteReply{ID: req.ID, botReply: reply}); err != nil {
			logger.Warn("Write failed", "error", err)
			return
		}
	}
}
