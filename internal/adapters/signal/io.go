package signal

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/meetnexa/meetnexa/internal/domain"
	"github.com/meetnexa/meetnexa/internal/protocol"
)

func (ctl *Controller) writePump(ctx context.Context, cancel context.CancelFunc, c *wsConn) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Cfg.WriteTimeout)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, id domain.ConnID, c *wsConn) {
	defer func() {
		cancel()
		// Disconnect always wins over any in-flight action from this connection.
		ctl.Coord.Disconnect(id)
		c.Close()
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("connection closed")
	}()

	c.conn.SetReadLimit(ctl.Cfg.ReadLimit)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
				}
				return
			}
			ctl.dispatch(id, data)
		}
	}
}

// dispatch routes one decoded client event into the coordinator. Unknown
// or malformed events are rejected here and never reach the registries.
func (ctl *Controller) dispatch(id domain.ConnID, data []byte) {
	ev, err := protocol.DecodeInbound(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("rejected event")
		return
	}

	switch e := ev.(type) {
	case protocol.Join:
		if err := ctl.Coord.Join(id, e.RoomCode, e.DisplayName, e.ContactHint, e.IsHost); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("join rejected")
		}
	case protocol.Offer:
		ctl.Coord.RelayDirected(protocol.TypeOffer, id, domain.ConnID(e.Target), &e.SDP, nil)
	case protocol.Answer:
		ctl.Coord.RelayDirected(protocol.TypeAnswer, id, domain.ConnID(e.Target), &e.SDP, nil)
	case protocol.ICECandidate:
		ctl.Coord.RelayDirected(protocol.TypeICECandidate, id, domain.ConnID(e.Target), nil, &e.Candidate)
	case protocol.Chat:
		ctl.Coord.RelayChat(id, e.Body)
	case protocol.MediaState:
		ctl.Coord.RelayMediaState(id, e.MediaState)
	case protocol.StartMeeting:
		ctl.Coord.StartMeeting(id)
	case protocol.Admit:
		ctl.Coord.Admit(id, domain.ConnID(e.Target))
	case protocol.Leave:
		ctl.Coord.Leave(id)
	}
}
