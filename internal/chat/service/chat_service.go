// Package service holds the message router: the single path through which
// every chat message is validated, persisted and fanned out. Both the REST
// controllers and the realtime gateway call it directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"kisaanchat/internal/chat/repository"
	"kisaanchat/internal/common"
	"kisaanchat/internal/dbmongo"
	"kisaanchat/internal/user"
)

// ErrValidation marks malformed inbound payloads: surfaced to the caller
// only, nothing is persisted or broadcast.
var ErrValidation = errors.New("validation error")

// Broadcaster fans an event out to every connection in a room. Delivery is
// fire-and-forget; the room registry implements this.
type Broadcaster interface {
	Broadcast(room, event string, payload any)
}

// ReplyEngine drafts the automated agent's reply text. It may fail; the
// dispatcher recovers with a fallback apology.
type ReplyEngine interface {
	Draft(ctx context.Context, msg *dbmongo.Message, farmer *dbmongo.User) (string, error)
}

// SendMessageInput carries one inbound message through validation.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	SenderType     common.SenderType
	MessageType    common.MessageType
	Content        string

	ImageURL       string
	VoiceURL       string
	VoiceDuration  int
	VoiceSize      int64
	VideoURL       string
	VideoDuration  int
	VideoSize      int64
	VideoThumbnail string
}

// EmergencyReport summarises a broadcast fan-out. Failures never abort the
// remaining conversations; they are counted here instead.
type EmergencyReport struct {
	Total     int      `json:"total"`
	Delivered int      `json:"delivered"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// ChatService defines the router interface exposed to the handler and
// gateway layers.
type ChatService interface {
	GetOrCreateConversation(ctx context.Context, farmerID string) (*dbmongo.Conversation, bool, error)
	SendMessage(ctx context.Context, in SendMessageInput) (*dbmongo.Message, error)
	MessageHistory(ctx context.Context, conversationID string, page, limit int) ([]*dbmongo.Message, int64, error)
	ListConversations(ctx context.Context, page, limit int) ([]*dbmongo.Conversation, int64, error)
	MarkRead(ctx context.Context, conversationID string) error
	SendProactive(ctx context.Context, conversationID, content string, alertType common.AlertType, messageType common.MessageType) (*dbmongo.Message, error)
	BroadcastEmergency(ctx context.Context, content string, alertType common.AlertType) (*EmergencyReport, error)
	Dispatcher() *ReplyDispatcher
}

type chatService struct {
	repo        repository.ChatRepository
	users       user.UserRepository
	broadcaster Broadcaster
	dispatcher  *ReplyDispatcher
	logger      zerolog.Logger
}

// NewChatService wires the router and its reply dispatcher.
func NewChatService(
	repo repository.ChatRepository,
	users user.UserRepository,
	broadcaster Broadcaster,
	engine ReplyEngine,
	logger zerolog.Logger,
) ChatService {
	s := &chatService{
		repo:        repo,
		users:       users,
		broadcaster: broadcaster,
		logger:      logger,
	}
	s.dispatcher = newReplyDispatcher(s, engine, logger)
	return s
}

func (s *chatService) Dispatcher() *ReplyDispatcher {
	return s.dispatcher
}

// GetOrCreateConversation resolves the farmer's conversation, creating it
// on first contact. Creation also persists and broadcasts the agent's
// welcome message, so a brand new conversation starts with unread count 1.
func (s *chatService) GetOrCreateConversation(ctx context.Context, farmerID string) (*dbmongo.Conversation, bool, error) {
	farmer, err := s.users.FindByID(ctx, farmerID)
	if err != nil {
		return nil, false, err
	}

	conv, err := s.repo.FindConversationByFarmer(ctx, farmerID)
	if err == nil {
		return conv, false, nil
	}
	if !errors.Is(err, repository.ErrConversationNotFound) {
		return nil, false, err
	}

	conv, err = s.repo.CreateConversation(ctx, farmerID)
	if err != nil {
		return nil, false, err
	}

	if _, err := s.SendProactive(ctx, conv.ID.Hex(), welcomeContent(farmer.Name), common.AlertWelcome, common.MessageText); err != nil {
		return nil, false, fmt.Errorf("failed to send welcome message: %w", err)
	}

	conv, err = s.repo.FindConversationByID(ctx, conv.ID.Hex())
	if err != nil {
		return nil, false, err
	}
	return conv, true, nil
}

// SendMessage validates, persists and broadcasts one message, then, for
// farmer-authored messages, schedules the automated reply off the request
// path. A farmer sending against a conversation id that no longer resolves
// falls back to their own conversation, creating it on first contact.
// Broadcast order within a conversation follows persistence order.
func (s *chatService) SendMessage(ctx context.Context, in SendMessageInput) (*dbmongo.Message, error) {
	if err := validateSend(&in); err != nil {
		return nil, err
	}

	conv, err := s.repo.FindConversationByID(ctx, in.ConversationID)
	if errors.Is(err, repository.ErrConversationNotFound) && in.SenderType == common.SenderFarmer {
		conv, _, err = s.GetOrCreateConversation(ctx, in.SenderID)
	}
	if err != nil {
		return nil, err
	}

	msg := &dbmongo.Message{
		ConversationID: conv.ID,
		SenderID:       in.SenderID,
		SenderType:     in.SenderType,
		MessageType:    in.MessageType,
		Content:        in.Content,
		ImageURL:       in.ImageURL,
		VoiceURL:       in.VoiceURL,
		VoiceDuration:  in.VoiceDuration,
		VoiceSize:      in.VoiceSize,
		VideoURL:       in.VideoURL,
		VideoDuration:  in.VideoDuration,
		VideoSize:      in.VideoSize,
		VideoThumbnail: in.VideoThumbnail,
		Status:         common.StatusSent,
	}

	if err := s.persistAndFanOut(ctx, conv, msg, 0); err != nil {
		return nil, err
	}

	if in.SenderType == common.SenderFarmer {
		s.dispatcher.Dispatch(ctx, conv, msg)
	}

	return msg, nil
}

func (s *chatService) MessageHistory(ctx context.Context, conversationID string, page, limit int) ([]*dbmongo.Message, int64, error) {
	return s.repo.FetchHistory(ctx, conversationID, page, limit)
}

// ListConversations pages through active conversations, most recently
// active first. Admin monitoring only.
func (s *chatService) ListConversations(ctx context.Context, page, limit int) ([]*dbmongo.Conversation, int64, error) {
	return s.repo.ListActiveConversations(ctx, page, limit)
}

// MarkRead flips unread agent messages to read and resets the counter.
// Idempotent: a second call finds nothing unread and changes nothing.
func (s *chatService) MarkRead(ctx context.Context, conversationID string) error {
	if err := s.repo.MarkMessagesRead(ctx, conversationID); err != nil {
		return err
	}
	return s.repo.UpdateConversation(ctx, conversationID, repository.ConversationPatch{ResetUnread: true})
}

// SendProactive persists an agent-authored alert and delivers it to the
// farmer's personal room as well as the conversation room.
func (s *chatService) SendProactive(ctx context.Context, conversationID, content string, alertType common.AlertType, messageType common.MessageType) (*dbmongo.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if !alertType.IsValid() {
		return nil, fmt.Errorf("%w: unknown alert type %q", ErrValidation, alertType)
	}
	if messageType == "" {
		messageType = common.MessageSystemAlert
	}

	conv, err := s.repo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &dbmongo.Message{
		ConversationID: conv.ID,
		SenderID:       common.AIAgentID,
		SenderType:     common.SenderAIAgent,
		MessageType:    messageType,
		Content:        content,
		IsProactive:    true,
		AlertType:      alertType,
		Status:         common.StatusSent,
	}

	if err := s.persistAndFanOut(ctx, conv, msg, 1); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(common.UserRoom(conv.FarmerID), "proactive_alert", map[string]any{
		"message":   msg,
		"alertType": alertType,
	})

	return msg, nil
}

// BroadcastEmergency fans one proactive alert out to every active
// conversation. Each farmer is attempted independently; one failing
// persistence never aborts the rest.
func (s *chatService) BroadcastEmergency(ctx context.Context, content string, alertType common.AlertType) (*EmergencyReport, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if alertType == "" {
		alertType = common.AlertEmergency
	}

	report := &EmergencyReport{}
	page := 1
	const pageSize = 100

	for {
		conversations, _, err := s.repo.ListActiveConversations(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		if len(conversations) == 0 {
			break
		}

		for _, conv := range conversations {
			report.Total++

			msg := &dbmongo.Message{
				ConversationID: conv.ID,
				SenderID:       common.AIAgentID,
				SenderType:     common.SenderAIAgent,
				MessageType:    common.MessageSystemAlert,
				Content:        content,
				IsProactive:    true,
				AlertType:      alertType,
				Status:         common.StatusSent,
			}

			if err := s.persistAndFanOut(ctx, conv, msg, 1); err != nil {
				report.Failed++
				report.Errors = append(report.Errors, fmt.Sprintf("farmer %s: %v", conv.FarmerID, err))
				s.logger.Error().Err(err).
					Str("farmer_id", conv.FarmerID).
					Msg("emergency broadcast failed for conversation")
				continue
			}

			report.Delivered++
			s.broadcaster.Broadcast(common.UserRoom(conv.FarmerID), "emergency_alert", map[string]any{
				"message":   msg,
				"alertType": alertType,
				"timestamp": time.Now().UTC(),
			})
		}

		if len(conversations) < pageSize {
			break
		}
		page++
	}

	return report, nil
}

// persistAndFanOut is the shared persist-then-broadcast path. unreadDelta
// is 1 for agent-authored messages the farmer has not seen yet. No lock is
// held here; ordering within a conversation follows persistence completion.
func (s *chatService) persistAndFanOut(ctx context.Context, conv *dbmongo.Conversation, msg *dbmongo.Message, unreadDelta int) error {
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		return err
	}

	now := time.Now().UTC()
	patch := repository.ConversationPatch{
		LastMessageID: &msg.ID,
		LastActivity:  &now,
		IncUnread:     unreadDelta,
		IncTotal:      1,
	}
	if err := s.repo.UpdateConversation(ctx, conv.ID.Hex(), patch); err != nil {
		return err
	}

	s.broadcaster.Broadcast(common.ConversationRoom(conv.ID.Hex()), "new_message", map[string]any{
		"message": msg,
		"from":    msg.SenderType,
	})
	return nil
}

func validateSend(in *SendMessageInput) error {
	if in.ConversationID == "" {
		return fmt.Errorf("%w: conversation ID cannot be empty", ErrValidation)
	}
	if in.SenderID == "" {
		return fmt.Errorf("%w: sender ID cannot be empty", ErrValidation)
	}
	if in.MessageType == "" {
		in.MessageType = common.MessageText
	}
	if !in.MessageType.IsValid() {
		return fmt.Errorf("%w: unknown message type %q", ErrValidation, in.MessageType)
	}

	switch in.MessageType {
	case common.MessageText, common.MessageSystemAlert, common.MessageWeatherAlert, common.MessageSchemeAlert:
		if in.Content == "" {
			return fmt.Errorf("%w: text content is required", ErrValidation)
		}
	case common.MessageImage:
		if in.ImageURL == "" {
			return fmt.Errorf("%w: image URL is required", ErrValidation)
		}
		if in.Content == "" {
			in.Content = "Image shared"
		}
	case common.MessageVoice:
		if in.VoiceURL == "" || in.VoiceDuration <= 0 {
			return fmt.Errorf("%w: voice URL and duration are required", ErrValidation)
		}
		if in.Content == "" {
			in.Content = fmt.Sprintf("Voice message (%ds)", in.VoiceDuration)
		}
	case common.MessageVideo:
		if in.VideoURL == "" || in.VideoDuration <= 0 {
			return fmt.Errorf("%w: video URL and duration are required", ErrValidation)
		}
		if in.Content == "" {
			in.Content = fmt.Sprintf("Video message (%ds)", in.VideoDuration)
		}
	}
	return nil
}

func welcomeContent(farmerName string) string {
	return fmt.Sprintf(`Hello %s! I'm your Agricultural Assistant. I can help you with:

- Crop problem solutions
- Weather updates and advice
- Pest and disease identification
- Government scheme information
- Market prices and selling advice

You can send me text messages, photos of your crops, voice messages or
videos showing your farm conditions. Feel free to ask me any
farming-related questions!`, farmerName)
}
