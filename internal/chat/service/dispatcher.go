package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"kisaanchat/internal/common"
	"kisaanchat/internal/dbmongo"
)

// fallbackReply is persisted when the reply engine fails, so the farmer
// always hears back.
const fallbackReply = "Sorry, I am having trouble responding right now. " +
	"Please try again in a few minutes, or call your local Krishi Vigyan Kendra for urgent help."

const replyTimeout = 30 * time.Second

// ReplyDispatcher produces the automated agent's answer to each farmer
// message off the request path. A failure here never reaches the farmer
// as an error: the fallback apology is persisted instead.
type ReplyDispatcher struct {
	svc    *chatService
	engine ReplyEngine
	logger zerolog.Logger
	wg     sync.WaitGroup
}

func newReplyDispatcher(svc *chatService, engine ReplyEngine, logger zerolog.Logger) *ReplyDispatcher {
	return &ReplyDispatcher{
		svc:    svc,
		engine: engine,
		logger: logger,
	}
}

// Dispatch schedules a reply to one farmer message. The work detaches from
// the caller's cancellation so an already-answered request or a dropped
// connection does not lose the reply.
func (d *ReplyDispatcher) Dispatch(ctx context.Context, conv *dbmongo.Conversation, farmerMsg *dbmongo.Message) {
	detached := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(detached, replyTimeout)
		defer cancel()
		d.reply(ctx, conv, farmerMsg)
	}()
}

// Wait blocks until every in-flight reply finishes. Used on shutdown.
func (d *ReplyDispatcher) Wait() {
	d.wg.Wait()
}

func (d *ReplyDispatcher) reply(ctx context.Context, conv *dbmongo.Conversation, farmerMsg *dbmongo.Message) {
	userRoom := common.UserRoom(conv.FarmerID)
	d.svc.broadcaster.Broadcast(userRoom, "ai_typing", map[string]any{"isTyping": true})
	defer d.svc.broadcaster.Broadcast(userRoom, "ai_typing", map[string]any{"isTyping": false})

	farmer, err := d.svc.users.FindByID(ctx, conv.FarmerID)
	if err != nil {
		d.logger.Error().Err(err).
			Str("farmer_id", conv.FarmerID).
			Msg("failed to load farmer for automated reply")
		farmer = &dbmongo.User{Name: "farmer"}
	}

	text, err := d.engine.Draft(ctx, farmerMsg, farmer)
	if err != nil {
		d.logger.Error().Err(err).
			Str("conversation_id", conv.ID.Hex()).
			Msg("reply engine failed, sending fallback")
		text = fallbackReply
	}

	reply := &dbmongo.Message{
		ConversationID: conv.ID,
		SenderID:       common.AIAgentID,
		SenderType:     common.SenderAIAgent,
		MessageType:    common.MessageText,
		Content:        text,
		Status:         common.StatusSent,
	}

	if err := d.svc.persistAndFanOut(ctx, conv, reply, 1); err != nil {
		d.logger.Error().Err(err).
			Str("conversation_id", conv.ID.Hex()).
			Msg("failed to persist automated reply")
		return
	}

	d.svc.broadcaster.Broadcast(common.AdminMonitoringRoom, "ai_response_sent", map[string]any{
		"conversationId": conv.ID.Hex(),
		"farmerId":       conv.FarmerID,
		"messageId":      reply.ID.Hex(),
		"timestamp":      reply.CreatedAt,
	})
}
