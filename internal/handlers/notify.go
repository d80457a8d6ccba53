package handlers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/thereayou/socialnet/internal/services"
	ws "github.com/thereayou/socialnet/internal/websocket"
)

// notifier pushes live events to everyone whose stream shows the author's
// posts. Delivery is best effort and never fails the request.
type notifier struct {
	hub   *ws.Hub
	graph *services.SocialGraph
}

func (n notifier) publish(ctx context.Context, authorID uint, msgType ws.MessageType, actorID uint, data interface{}) {
	if n.hub == nil {
		return
	}

	audience, err := n.graph.VisibleAuthors(ctx, authorID)
	if err != nil {
		log.Warn().Err(err).Uint("author_id", authorID).Msg("resolve live event audience")
		return
	}

	n.send(audience, msgType, actorID, data)
}

// send delivers an event to the given users only.
func (n notifier) send(userIDs []uint, msgType ws.MessageType, actorID uint, data interface{}) {
	if n.hub == nil {
		return
	}
	if err := n.hub.Publish(userIDs, msgType, actorID, data); err != nil {
		log.Warn().Err(err).Str("type", string(msgType)).Msg("publish live event")
	}
}
