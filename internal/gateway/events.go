package gateway

import "encoding/json"

// frame is the wire envelope in both directions: an event name plus a
// JSON payload.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound is a frame before marshalling; Data may be any JSON-encodable
// value.
type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Inbound event names.
const (
	evtJoinConversation = "join_conversation"
	evtSendMessage      = "send_message"
	evtUploadChunk      = "upload_chunk"
	evtCancelUpload     = "cancel_upload"
	evtTypingStart      = "typing_start"
	evtTypingStop       = "typing_stop"
	evtMarkRead         = "mark_messages_read"
	evtSendProactive    = "send_proactive_message"
	evtBroadcastEmerg   = "broadcast_emergency"
	evtAdminMonitorAll  = "admin_monitor_all"
	evtGetOnlineUsers   = "get_online_users"
	evtPing             = "ping"
)

// Outbound event names.
const (
	evtConversationJoined = "conversation_joined"
	evtMessageHistory     = "message_history"
	evtUploadProgress     = "upload_progress"
	evtUploadComplete     = "upload_complete"
	evtUploadCancelled    = "upload_cancelled"
	evtUploadError        = "upload_error"
	evtFarmerTyping       = "farmer_typing"
	evtMessagesRead       = "messages_read"
	evtEmergencyReport    = "emergency_broadcast_complete"
	evtOnlineUsers        = "online_users"
	evtMonitoringStarted  = "monitoring_started"
	evtPong               = "pong"
	evtError              = "error"
)

type joinConversationPayload struct {
	FarmerID string `json:"farmerId,omitempty"`
}

type sendMessagePayload struct {
	ConversationID string `json:"conversationId"`
	MessageType    string `json:"messageType,omitempty"`
	Content        string `json:"content,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	VoiceURL       string `json:"voiceUrl,omitempty"`
	VoiceDuration  int    `json:"voiceDuration,omitempty"`
	VoiceSize      int64  `json:"voiceSize,omitempty"`
	VideoURL       string `json:"videoUrl,omitempty"`
	VideoDuration  int    `json:"videoDuration,omitempty"`
	VideoSize      int64  `json:"videoSize,omitempty"`
	VideoThumbnail string `json:"videoThumbnail,omitempty"`
}

type uploadChunkPayload struct {
	UploadID    string `json:"uploadId"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks"`
	Data        string `json:"data"` // base64-encoded chunk bytes
	MimeType    string `json:"mimeType"`

	// Optional: when set, the finished upload is sent into this
	// conversation as a media message without a separate send_message.
	ConversationID string `json:"conversationId,omitempty"`
	Duration       int    `json:"duration,omitempty"` // seconds, voice/video
	Thumbnail      string `json:"thumbnail,omitempty"`
}

type cancelUploadPayload struct {
	UploadID string `json:"uploadId"`
}

type typingPayload struct {
	ConversationID string `json:"conversationId"`
}

type markReadPayload struct {
	ConversationID string `json:"conversationId"`
}

type proactivePayload struct {
	FarmerID    string `json:"farmerId,omitempty"`
	Content     string `json:"content"`
	AlertType   string `json:"alertType"`
	MessageType string `json:"messageType,omitempty"`
}

type emergencyPayload struct {
	Content   string `json:"content"`
	AlertType string `json:"alertType,omitempty"`
}

type errorPayload struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Event   string `json:"event,omitempty"`
}
