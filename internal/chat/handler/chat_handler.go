// Package handler exposes the chat REST surface: conversation access for
// farmers, monitoring and alerting endpoints for admins, and agent token
// issuance for the automated assistant.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"kisaanchat/internal/chat/repository"
	"kisaanchat/internal/chat/service"
	"kisaanchat/internal/common"
	"kisaanchat/internal/config"
	"kisaanchat/internal/user"
)

type Handler struct {
	chat   service.ChatService
	conns  ConnectionStats
	auth   config.Auth
	logger zerolog.Logger
}

// ConnectionStats is the slice of the realtime gateway the REST surface
// needs for monitoring endpoints.
type ConnectionStats interface {
	OnlineFarmers() []string
}

func NewHandler(chat service.ChatService, conns ConnectionStats, auth config.Auth, logger zerolog.Logger) *Handler {
	return &Handler{
		chat:   chat,
		conns:  conns,
		auth:   auth,
		logger: logger,
	}
}

// Register mounts every route on the router. All chat routes sit behind
// the auth middleware.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)

	api.HandleFunc("/chat/conversation", h.getConversation).Methods(http.MethodGet)
	api.HandleFunc("/chat/messages/{conversationId}", h.getMessages).Methods(http.MethodGet)
	api.HandleFunc("/chat/send-message", h.sendMessage).Methods(http.MethodPost)
	api.HandleFunc("/chat/mark-read/{conversationId}", h.markRead).Methods(http.MethodPatch)

	api.HandleFunc("/chat/admin/conversations", adminOnly(h.listConversations)).Methods(http.MethodGet)
	api.HandleFunc("/chat/admin/proactive-message", adminOnly(h.sendProactive)).Methods(http.MethodPost)
	api.HandleFunc("/chat/admin/broadcast", adminOnly(h.broadcast)).Methods(http.MethodPost)
	api.HandleFunc("/chat/admin/online-users", adminOnly(h.onlineUsers)).Methods(http.MethodGet)

	api.HandleFunc("/bot/token", adminOnly(h.issueBotToken)).Methods(http.MethodPost)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getConversation returns the caller's conversation, creating it on first
// contact. Admins must pass farmerId explicitly.
func (h *Handler) getConversation(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	farmerID := p.UserID
	if p.Role == "admin" {
		farmerID = r.URL.Query().Get("farmerId")
		if farmerID == "" {
			writeError(w, http.StatusBadRequest, "farmerId is required")
			return
		}
	}

	conv, created, err := h.chat.GetOrCreateConversation(r.Context(), farmerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"conversation": conv,
		"created":      created,
	})
}

func (h *Handler) getMessages(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	conversationID := mux.Vars(r)["conversationId"]
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 50)

	messages, total, err := h.chat.MessageHistory(r.Context(), conversationID, page, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	// Fetching history counts as reading it, for farmers. Admin peeks
	// must not clear the farmer's unread badge.
	if p.Role != "admin" {
		if err := h.chat.MarkRead(r.Context(), conversationID); err != nil {
			h.logger.Warn().Err(err).
				Str("conversation_id", conversationID).
				Msg("failed to mark history read")
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

type sendMessageRequest struct {
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

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	senderType := common.SenderFarmer
	if p.Role == "admin" {
		senderType = common.SenderAdmin
	}

	msg, err := h.chat.SendMessage(r.Context(), service.SendMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       p.UserID,
		SenderType:     senderType,
		MessageType:    common.MessageType(req.MessageType),
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		VoiceURL:       req.VoiceURL,
		VoiceDuration:  req.VoiceDuration,
		VoiceSize:      req.VoiceSize,
		VideoURL:       req.VideoURL,
		VideoDuration:  req.VideoDuration,
		VideoSize:      req.VideoSize,
		VideoThumbnail: req.VideoThumbnail,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	if err := h.chat.MarkRead(r.Context(), conversationID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversationId": conversationID, "read": true})
}

func (h *Handler) listConversations(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	conversations, total, err := h.chat.ListConversations(r.Context(), page, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": conversations,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

type proactiveRequest struct {
	FarmerID    string `json:"farmerId"`
	Content     string `json:"content"`
	AlertType   string `json:"alertType"`
	MessageType string `json:"messageType,omitempty"`
}

func (h *Handler) sendProactive(w http.ResponseWriter, r *http.Request) {
	var req proactiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.FarmerID == "" {
		writeError(w, http.StatusBadRequest, "farmerId is required")
		return
	}

	conv, _, err := h.chat.GetOrCreateConversation(r.Context(), req.FarmerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	msg, err := h.chat.SendProactive(r.Context(), conv.ID.Hex(), req.Content,
		common.AlertType(req.AlertType), common.MessageType(req.MessageType))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
}

type broadcastRequest struct {
	Content   string `json:"content"`
	AlertType string `json:"alertType,omitempty"`
}

func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	report, err := h.chat.BroadcastEmergency(r.Context(), req.Content, common.AlertType(req.AlertType))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) onlineUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"farmers": h.conns.OnlineFarmers()})
}

type botTokenRequest struct {
	FarmerID string `json:"farmerId"`
}

// issueBotToken mints a short-lived credential letting the automated
// agent connect on behalf of one farmer.
func (h *Handler) issueBotToken(w http.ResponseWriter, r *http.Request) {
	var req botTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.FarmerID == "" {
		writeError(w, http.StatusBadRequest, "farmerId is required")
		return
	}

	token, err := common.GenerateAgentToken(req.FarmerID, h.auth.AgentTokenTTL)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue agent token")
		writeError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"expiresIn": int(h.auth.AgentTokenTTL.Seconds()),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrConversationNotFound):
		writeError(w, http.StatusNotFound, "conversation not found")
	case errors.Is(err, user.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	default:
		h.logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
