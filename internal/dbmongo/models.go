package dbmongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisaanchat/internal/common"
)

const (
	CollectionConversations = "conversations"
	CollectionMessages      = "messages"
	CollectionUsers         = "users"
)

// Conversation is the durable per-farmer thread with the AI agent.
// Exactly one exists per farmer; it is created lazily on first contact.
type Conversation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FarmerID      string              `bson:"farmer_id" json:"farmerId"`
	AIAgentID     string              `bson:"ai_agent_id" json:"aiAgentId"`
	LastMessageID *primitive.ObjectID `bson:"last_message_id,omitempty" json:"lastMessageId,omitempty"`
	LastActivity  time.Time           `bson:"last_activity" json:"lastActivity"`
	UnreadCount   int                 `bson:"unread_count" json:"unreadCount"`
	TotalMessages int64               `bson:"total_messages" json:"totalMessages"`
	Active        bool                `bson:"active" json:"active"`
	CreatedAt     time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updatedAt"`
}

// Message is append-only; only status/read_at change after persistence.
type Message struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID   `bson:"conversation_id" json:"conversationId"`
	SenderID       string               `bson:"sender_id" json:"senderId"`
	SenderType     common.SenderType    `bson:"sender_type" json:"senderType"`
	MessageType    common.MessageType   `bson:"message_type" json:"messageType"`
	Content        string               `bson:"content,omitempty" json:"content,omitempty"`
	ImageURL       string               `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	VoiceURL       string               `bson:"voice_url,omitempty" json:"voiceUrl,omitempty"`
	VoiceDuration  int                  `bson:"voice_duration,omitempty" json:"voiceDuration,omitempty"`
	VoiceSize      int64                `bson:"voice_size,omitempty" json:"voiceSize,omitempty"`
	VideoURL       string               `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	VideoDuration  int                  `bson:"video_duration,omitempty" json:"videoDuration,omitempty"`
	VideoSize      int64                `bson:"video_size,omitempty" json:"videoSize,omitempty"`
	VideoThumbnail string               `bson:"video_thumbnail,omitempty" json:"videoThumbnail,omitempty"`
	IsProactive    bool                 `bson:"is_proactive" json:"isProactive"`
	AlertType      common.AlertType     `bson:"alert_type,omitempty" json:"alertType,omitempty"`
	Status         common.MessageStatus `bson:"status" json:"status"`
	ReadAt         *time.Time           `bson:"read_at,omitempty" json:"readAt,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"createdAt"`
}

// User is a directory entry for a farmer or admin. Login/OTP issuance is
// owned by the auth service; the chat service only resolves principals.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Phone    string             `bson:"phone" json:"phone"`
	Role     string             `bson:"role" json:"role"` // farmer or admin
	Location string             `bson:"location,omitempty" json:"location,omitempty"`
}
