// Package repository implements the message store on MongoDB:
// conversations and their append-only messages.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kisaanchat/internal/common"
	"kisaanchat/internal/dbmongo"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationPatch describes the counter/reference updates applied after
// a message is appended. Zero values leave the field untouched.
type ConversationPatch struct {
	LastMessageID *primitive.ObjectID
	LastActivity  *time.Time
	IncUnread     int
	ResetUnread   bool
	IncTotal      int64
}

type ChatRepository interface {
	FindConversationByFarmer(ctx context.Context, farmerID string) (*dbmongo.Conversation, error)
	FindConversationByID(ctx context.Context, conversationID string) (*dbmongo.Conversation, error)
	CreateConversation(ctx context.Context, farmerID string) (*dbmongo.Conversation, error)
	UpdateConversation(ctx context.Context, conversationID string, patch ConversationPatch) error
	ListActiveConversations(ctx context.Context, page, limit int) ([]*dbmongo.Conversation, int64, error)

	AppendMessage(ctx context.Context, msg *dbmongo.Message) error
	FetchHistory(ctx context.Context, conversationID string, page, limit int) ([]*dbmongo.Message, int64, error)
	MarkMessagesRead(ctx context.Context, conversationID string) error
}

type chatRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewChatRepository(mongoClient *dbmongo.MongoClient) ChatRepository {
	return &chatRepo{
		conversations: mongoClient.Database.Collection(dbmongo.CollectionConversations),
		messages:      mongoClient.Database.Collection(dbmongo.CollectionMessages),
	}
}

func (r *chatRepo) FindConversationByFarmer(ctx context.Context, farmerID string) (*dbmongo.Conversation, error) {
	var conv dbmongo.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"farmer_id": farmerID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("conversation lookup failed: %w", err)
	}
	return &conv, nil
}

func (r *chatRepo) FindConversationByID(ctx context.Context, conversationID string) (*dbmongo.Conversation, error) {
	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrConversationNotFound, conversationID)
	}

	var conv dbmongo.Conversation
	err = r.conversations.FindOne(ctx, bson.M{"_id": objectID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("conversation lookup failed: %w", err)
	}
	return &conv, nil
}

func (r *chatRepo) CreateConversation(ctx context.Context, farmerID string) (*dbmongo.Conversation, error) {
	now := time.Now().UTC()
	conv := &dbmongo.Conversation{
		FarmerID:     farmerID,
		AIAgentID:    common.AIAgentID,
		LastActivity: now,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.conversations.InsertOne(ctx, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	conv.ID = res.InsertedID.(primitive.ObjectID)
	return conv, nil
}

func (r *chatRepo) UpdateConversation(ctx context.Context, conversationID string, patch ConversationPatch) error {
	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrConversationNotFound, conversationID)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.LastMessageID != nil {
		set["last_message_id"] = *patch.LastMessageID
	}
	if patch.LastActivity != nil {
		set["last_activity"] = *patch.LastActivity
	}
	if patch.ResetUnread {
		set["unread_count"] = 0
	}

	update := bson.M{"$set": set}
	inc := bson.M{}
	if patch.IncUnread != 0 && !patch.ResetUnread {
		inc["unread_count"] = patch.IncUnread
	}
	if patch.IncTotal != 0 {
		inc["total_messages"] = patch.IncTotal
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}

	res, err := r.conversations.UpdateByID(ctx, objectID, update)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func (r *chatRepo) ListActiveConversations(ctx context.Context, page, limit int) ([]*dbmongo.Conversation, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	filter := bson.M{"active": true}
	total, err := r.conversations.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count conversations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_activity", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.conversations.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []*dbmongo.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return conversations, total, nil
}

func (r *chatRepo) AppendMessage(ctx context.Context, msg *dbmongo.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	res, err := r.messages.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FetchHistory returns one page of messages in chronological order plus
// the total message count for the conversation.
func (r *chatRepo) FetchHistory(ctx context.Context, conversationID string, page, limit int) ([]*dbmongo.Message, int64, error) {
	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid id %q", ErrConversationNotFound, conversationID)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	filter := bson.M{"conversation_id": objectID}
	total, err := r.messages.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch history: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*dbmongo.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, fmt.Errorf("failed to decode messages: %w", err)
	}

	// Newest-first from the store; flip to chronological for clients.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, total, nil
}

// MarkMessagesRead flips every unread agent message to read. Running it
// twice is a no-op the second time.
func (r *chatRepo) MarkMessagesRead(ctx context.Context, conversationID string) error {
	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrConversationNotFound, conversationID)
	}

	now := time.Now().UTC()
	_, err = r.messages.UpdateMany(ctx,
		bson.M{
			"conversation_id": objectID,
			"sender_type":     common.SenderAIAgent,
			"status":          bson.M{"$ne": common.StatusRead},
		},
		bson.M{"$set": bson.M{
			"status":  common.StatusRead,
			"read_at": now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}

	return nil
}
