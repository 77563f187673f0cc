// Package gateway is the realtime edge of the chat service: it
// authenticates connections, tracks rooms, reassembles chunked uploads
// and dispatches inbound events to the message router.
package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"kisaanchat/internal/chat/service"
	"kisaanchat/internal/common"
	"kisaanchat/internal/config"
)

// Gateway owns the connection lifecycle from handshake to teardown.
type Gateway struct {
	cfg      config.Gateway
	auth     *Authenticator
	registry *Registry
	uploads  *Reassembler
	chat     service.ChatService
	logger   zerolog.Logger

	typingMu sync.Mutex
	typing   map[string]string // connID -> conversationID currently typing in
}

func NewGateway(
	cfg config.Gateway,
	auth *Authenticator,
	registry *Registry,
	uploads *Reassembler,
	chat service.ChatService,
	logger zerolog.Logger,
) *Gateway {
	return &Gateway{
		cfg:      cfg,
		auth:     auth,
		registry: registry,
		uploads:  uploads,
		chat:     chat,
		logger:   logger,
		typing:   make(map[string]string),
	}
}

// Registry exposes the room registry, which doubles as the router's
// broadcaster.
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// Connect authenticates a token and registers the resulting connection.
// This is the single entry point for every transport.
func (g *Gateway) Connect(ctx context.Context, token string) (*Connection, error) {
	principal, err := g.auth.Authenticate(ctx, token)
	if err != nil {
		g.logger.Warn().Err(err).Msg("connection rejected")
		return nil, err
	}

	conn := newConnection(principal, g.cfg.SendBufferSize)
	g.registry.Register(conn)
	return conn, nil
}

// Disconnect tears a connection down: room membership, in-flight uploads
// and typing state all go. Running it twice is a no-op the second time.
func (g *Gateway) Disconnect(conn *Connection) {
	g.typingMu.Lock()
	convID, wasTyping := g.typing[conn.ID]
	delete(g.typing, conn.ID)
	g.typingMu.Unlock()

	if wasTyping {
		g.broadcastTyping(conn, convID, false)
	}

	if dropped := g.uploads.CancelOwned(conn.ID); dropped > 0 {
		g.logger.Info().
			Str("connection_id", conn.ID).
			Int("uploads_cancelled", dropped).
			Msg("cancelled uploads on disconnect")
	}

	g.registry.Deregister(conn.ID)
	conn.Close()
}

// HandleFrame dispatches one inbound frame. Handler errors are reported
// back on the connection, never returned; a malformed frame must not take
// the session down.
func (g *Gateway) HandleFrame(ctx context.Context, conn *Connection, raw []byte) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		conn.Enqueue(evtError, errorPayload{Kind: "validation", Message: "malformed frame"})
		return
	}

	var err error
	switch f.Event {
	case evtJoinConversation:
		err = g.handleJoin(ctx, conn, f.Data)
	case evtSendMessage:
		err = g.handleSendMessage(ctx, conn, f.Data)
	case evtUploadChunk:
		err = g.handleUploadChunk(ctx, conn, f.Data)
	case evtCancelUpload:
		err = g.handleCancelUpload(conn, f.Data)
	case evtTypingStart:
		err = g.handleTyping(conn, f.Data, true)
	case evtTypingStop:
		err = g.handleTyping(conn, f.Data, false)
	case evtMarkRead:
		err = g.handleMarkRead(ctx, conn, f.Data)
	case evtSendProactive:
		err = g.handleProactive(ctx, conn, f.Data)
	case evtBroadcastEmerg:
		err = g.handleEmergency(ctx, conn, f.Data)
	case evtAdminMonitorAll:
		err = g.handleMonitorAll(conn)
	case evtGetOnlineUsers:
		err = g.handleOnlineUsers(conn)
	case evtPing:
		conn.Enqueue(evtPong, map[string]any{"timestamp": time.Now().UTC()})
	default:
		err = errors.New("unknown event")
	}

	if err != nil {
		g.logger.Debug().Err(err).
			Str("event", f.Event).
			Str("connection_id", conn.ID).
			Msg("event handler failed")
		conn.Enqueue(evtError, errorPayload{
			Kind:    errorKind(err),
			Message: err.Error(),
			Event:   f.Event,
		})
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return "validation"
	case errors.Is(err, ErrOwnership):
		return "ownership"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, ErrUnknownSession):
		return "unknown_session"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrBadChunk):
		return "validation"
	default:
		return "internal"
	}
}

// conversationFarmer decides whose conversation an event targets. Farmers
// always act on their own; agents on the farmer they serve; admins must
// name one.
func conversationFarmer(conn *Connection, requested string) (string, error) {
	switch conn.Principal.Kind {
	case KindFarmer:
		return conn.Principal.UserID, nil
	case KindAgent:
		return conn.Principal.FarmerID, nil
	case KindAdmin:
		if requested == "" {
			return "", errors.New("farmerId is required")
		}
		return requested, nil
	}
	return "", ErrForbidden
}

func (g *Gateway) handleJoin(ctx context.Context, conn *Connection, data json.RawMessage) error {
	var p joinConversationPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("malformed join payload")
		}
	}

	farmerID, err := conversationFarmer(conn, p.FarmerID)
	if err != nil {
		return err
	}

	conv, created, err := g.chat.GetOrCreateConversation(ctx, farmerID)
	if err != nil {
		return err
	}

	if err := g.registry.Join(conn.ID, common.ConversationRoom(conv.ID.Hex())); err != nil {
		return err
	}

	conn.Enqueue(evtConversationJoined, map[string]any{
		"conversation": conv,
		"created":      created,
	})

	messages, total, err := g.chat.MessageHistory(ctx, conv.ID.Hex(), 1, 50)
	if err != nil {
		return err
	}
	conn.Enqueue(evtMessageHistory, map[string]any{
		"conversationId": conv.ID.Hex(),
		"messages":       messages,
		"total":          total,
	})
	return nil
}

func (g *Gateway) handleSendMessage(ctx context.Context, conn *Connection, data json.RawMessage) error {
	var p sendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("malformed message payload")
	}

	// Joining first is what authorizes sending: membership in the
	// conversation room was ownership-checked at join time.
	if !g.registry.InRoom(conn.ID, common.ConversationRoom(p.ConversationID)) {
		return ErrOwnership
	}

	_, err := g.chat.SendMessage(ctx, service.SendMessageInput{
		ConversationID: p.ConversationID,
		SenderID:       conn.Principal.UserID,
		SenderType:     senderType(conn.Principal.Kind),
		MessageType:    common.MessageType(p.MessageType),
		Content:        p.Content,
		ImageURL:       p.ImageURL,
		VoiceURL:       p.VoiceURL,
		VoiceDuration:  p.VoiceDuration,
		VoiceSize:      p.VoiceSize,
		VideoURL:       p.VideoURL,
		VideoDuration:  p.VideoDuration,
		VideoSize:      p.VideoSize,
		VideoThumbnail: p.VideoThumbnail,
	})
	return err
}

func senderType(kind PrincipalKind) common.SenderType {
	switch kind {
	case KindAdmin:
		return common.SenderAdmin
	case KindAgent:
		return common.SenderAIAgent
	default:
		return common.SenderFarmer
	}
}

func (g *Gateway) handleUploadChunk(ctx context.Context, conn *Connection, data json.RawMessage) error {
	var p uploadChunkPayload
	if err := json.Unmarshal(data, &p); err != nil {
		conn.Enqueue(evtUploadError, errorPayload{Message: "malformed chunk payload"})
		return nil
	}

	payload, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		conn.Enqueue(evtUploadError, map[string]any{
			"uploadId": p.UploadID,
			"message":  "chunk data is not valid base64",
		})
		return nil
	}

	progress, result, err := g.uploads.AddChunk(ctx, conn.ID, conn.Principal.UserID, ChunkInput{
		UploadID:   p.UploadID,
		ChunkIndex: p.ChunkIndex,
		Total:      p.TotalChunks,
		Payload:    payload,
		MimeType:   p.MimeType,
	})
	if err != nil {
		conn.Enqueue(evtUploadError, map[string]any{
			"uploadId": p.UploadID,
			"message":  err.Error(),
		})
		return nil
	}

	if result != nil {
		conn.Enqueue(evtUploadComplete, result)
		if p.ConversationID != "" {
			if err := g.sendMediaMessage(ctx, conn, p, result); err != nil {
				conn.Enqueue(evtError, errorPayload{
					Kind:    errorKind(err),
					Message: err.Error(),
					Event:   evtUploadChunk,
				})
			}
		}
		return nil
	}
	conn.Enqueue(evtUploadProgress, progress)
	return nil
}

// sendMediaMessage pushes a completed upload into the conversation as the
// matching media message, so clients need not follow up with send_message.
func (g *Gateway) sendMediaMessage(ctx context.Context, conn *Connection, p uploadChunkPayload, result *Result) error {
	if !g.registry.InRoom(conn.ID, common.ConversationRoom(p.ConversationID)) {
		return ErrOwnership
	}

	fileType, ok := common.DetectFileType(p.MimeType)
	if !ok {
		return errors.New("unsupported media type")
	}

	in := service.SendMessageInput{
		ConversationID: p.ConversationID,
		SenderID:       conn.Principal.UserID,
		SenderType:     senderType(conn.Principal.Kind),
		MessageType:    fileType.MessageType(),
	}
	switch fileType.MessageType() {
	case common.MessageImage:
		in.ImageURL = result.URL
	case common.MessageVoice:
		in.VoiceURL = result.URL
		in.VoiceDuration = p.Duration
		in.VoiceSize = result.Size
	case common.MessageVideo:
		in.VideoURL = result.URL
		in.VideoDuration = p.Duration
		in.VideoSize = result.Size
		in.VideoThumbnail = p.Thumbnail
	}

	_, err := g.chat.SendMessage(ctx, in)
	return err
}

func (g *Gateway) handleCancelUpload(conn *Connection, data json.RawMessage) error {
	var p cancelUploadPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("malformed cancel payload")
	}

	if err := g.uploads.Cancel(conn.ID, p.UploadID); err != nil {
		return err
	}
	conn.Enqueue(evtUploadCancelled, map[string]any{"uploadId": p.UploadID})
	return nil
}

func (g *Gateway) handleTyping(conn *Connection, data json.RawMessage, isTyping bool) error {
	var p typingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("malformed typing payload")
	}
	if p.ConversationID == "" {
		return errors.New("conversationId is required")
	}

	g.typingMu.Lock()
	if isTyping {
		g.typing[conn.ID] = p.ConversationID
	} else {
		delete(g.typing, conn.ID)
	}
	g.typingMu.Unlock()

	g.broadcastTyping(conn, p.ConversationID, isTyping)
	return nil
}

// broadcastTyping routes indicator events by principal kind: the agent's
// indicator goes to the farmer it serves, a farmer's only to admin
// monitoring.
func (g *Gateway) broadcastTyping(conn *Connection, conversationID string, isTyping bool) {
	if conn.Principal.Kind == KindAgent {
		g.registry.Broadcast(common.UserRoom(conn.Principal.FarmerID), "ai_typing", map[string]any{
			"isTyping": isTyping,
		})
		return
	}

	g.registry.Broadcast(common.AdminMonitoringRoom, evtFarmerTyping, map[string]any{
		"conversationId": conversationID,
		"userId":         conn.Principal.UserID,
		"isTyping":       isTyping,
	})
}

func (g *Gateway) handleMarkRead(ctx context.Context, conn *Connection, data json.RawMessage) error {
	var p markReadPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("malformed mark-read payload")
	}

	if !g.registry.InRoom(conn.ID, common.ConversationRoom(p.ConversationID)) {
		return ErrOwnership
	}

	if err := g.chat.MarkRead(ctx, p.ConversationID); err != nil {
		return err
	}
	conn.Enqueue(evtMessagesRead, map[string]any{"conversationId": p.ConversationID})
	return nil
}

func (g *Gateway) handleProactive(ctx context.Context, conn *Connection, data json.RawMessage) error {
	if conn.Principal.Kind == KindFarmer {
		return ErrForbidden
	}

	var p proactivePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("malformed proactive payload")
	}

	// Alerts target a farmer, not a conversation id; the conversation is
	// resolved (or created) here, same as the REST path.
	farmerID, err := conversationFarmer(conn, p.FarmerID)
	if err != nil {
		return err
	}

	conv, _, err := g.chat.GetOrCreateConversation(ctx, farmerID)
	if err != nil {
		return err
	}

	_, err = g.chat.SendProactive(ctx, conv.ID.Hex(), p.Content,
		common.AlertType(p.AlertType), common.MessageType(p.MessageType))
	return err
}

func (g *Gateway) handleEmergency(ctx context.Context, conn *Connection, data json.RawMessage) error {
	if conn.Principal.Kind != KindAdmin {
		return ErrForbidden
	}

	var p emergencyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("malformed emergency payload")
	}

	report, err := g.chat.BroadcastEmergency(ctx, p.Content, common.AlertType(p.AlertType))
	if err != nil {
		return err
	}
	conn.Enqueue(evtEmergencyReport, report)
	return nil
}

func (g *Gateway) handleMonitorAll(conn *Connection) error {
	if conn.Principal.Kind != KindAdmin {
		return ErrForbidden
	}

	if err := g.registry.Join(conn.ID, common.AdminMonitoringRoom); err != nil {
		return err
	}
	conn.Enqueue(evtMonitoringStarted, g.Stats())
	return nil
}

// GatewayStats extends the registry snapshot with upload activity.
type GatewayStats struct {
	Stats
	OpenUploads int `json:"openUploads"`
}

func (g *Gateway) Stats() GatewayStats {
	return GatewayStats{
		Stats:       g.registry.Snapshot(),
		OpenUploads: g.uploads.SessionCount(),
	}
}

func (g *Gateway) handleOnlineUsers(conn *Connection) error {
	if conn.Principal.Kind != KindAdmin {
		return ErrForbidden
	}

	conn.Enqueue(evtOnlineUsers, map[string]any{
		"farmers": g.registry.OnlineFarmers(),
		"stats":   g.Stats(),
	})
	return nil
}
