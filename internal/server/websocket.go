package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/phuslu/log"

	"friday/internal/recorder"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWebSocket answers each {"message"} frame with the same JSON the
// HTTP endpoint returns, until the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	log.Info().Str("remote", r.RemoteAddr).Msg("websocket client connected")

	for {
		var req messageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		var out any
		if req.Message == nil {
			out = errorResponse{Error: "No message provided"}
		} else {
			out = s.answer(r.Context(), *req.Message, recorder.ChannelWebSocket)
		}
		if err := conn.WriteJSON(out); err != nil {
			log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}
