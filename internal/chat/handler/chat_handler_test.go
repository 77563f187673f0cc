package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"kisaanchat/internal/chat/service"
	"kisaanchat/internal/common"
	"kisaanchat/internal/config"
	"kisaanchat/internal/dbmongo"
	"kisaanchat/internal/gateway/mocks"
)

type fakeStats struct {
	farmers []string
}

func (f *fakeStats) OnlineFarmers() []string { return f.farmers }

type handlerFixture struct {
	chat   *mocks.MockChatService
	router *mux.Router
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	common.SetJWTSecret("test-secret")
	ctrl := gomock.NewController(t)

	f := &handlerFixture{
		chat:   mocks.NewMockChatService(ctrl),
		router: mux.NewRouter(),
	}

	h := NewHandler(f.chat, &fakeStats{farmers: []string{"farmer-1"}},
		config.Auth{AgentTokenTTL: 5 * time.Minute}, zerolog.Nop())
	h.Register(f.router)
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path, role string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if role != "" {
		userID := "farmer-1"
		if role == "admin" {
			userID = "admin-1"
		}
		token, err := common.GenerateToken(userID, "Test", role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthNeedsNoAuth(t *testing.T) {
	f := newHandlerFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	f := newHandlerFixture(t)
	rec := f.do(t, http.MethodGet, "/api/chat/conversation", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetConversation_Farmer(t *testing.T) {
	f := newHandlerFixture(t)
	conv := &dbmongo.Conversation{ID: primitive.NewObjectID(), FarmerID: "farmer-1"}

	f.chat.EXPECT().GetOrCreateConversation(gomock.Any(), "farmer-1").Return(conv, true, nil)

	rec := f.do(t, http.MethodGet, "/api/chat/conversation", "farmer", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Created bool `json:"created"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Created)
}

func TestGetConversation_AdminNeedsFarmerID(t *testing.T) {
	f := newHandlerFixture(t)
	rec := f.do(t, http.MethodGet, "/api/chat/conversation", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessage(t *testing.T) {
	f := newHandlerFixture(t)
	convID := primitive.NewObjectID().Hex()

	f.chat.EXPECT().SendMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in service.SendMessageInput) (*dbmongo.Message, error) {
			assert.Equal(t, "farmer-1", in.SenderID)
			assert.Equal(t, common.SenderFarmer, in.SenderType)
			return &dbmongo.Message{Content: in.Content}, nil
		})

	rec := f.do(t, http.MethodPost, "/api/chat/send-message", "farmer", map[string]any{
		"conversationId": convID,
		"content":        "hello",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSendMessage_ValidationError(t *testing.T) {
	f := newHandlerFixture(t)

	f.chat.EXPECT().SendMessage(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: text content is required", service.ErrValidation))

	rec := f.do(t, http.MethodPost, "/api/chat/send-message", "farmer", map[string]any{
		"conversationId": "c1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMessages_FarmerReadClearsUnread(t *testing.T) {
	f := newHandlerFixture(t)

	f.chat.EXPECT().MessageHistory(gomock.Any(), "c1", 1, 50).
		Return([]*dbmongo.Message{{Content: "hi"}}, int64(1), nil)
	f.chat.EXPECT().MarkRead(gomock.Any(), "c1").Return(nil)

	rec := f.do(t, http.MethodGet, "/api/chat/messages/c1", "farmer", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMessages_AdminDoesNotMarkRead(t *testing.T) {
	f := newHandlerFixture(t)

	f.chat.EXPECT().MessageHistory(gomock.Any(), "c1", 1, 50).
		Return([]*dbmongo.Message{}, int64(0), nil)

	rec := f.do(t, http.MethodGet, "/api/chat/messages/c1", "admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMarkRead(t *testing.T) {
	f := newHandlerFixture(t)
	f.chat.EXPECT().MarkRead(gomock.Any(), "c1").Return(nil)

	rec := f.do(t, http.MethodPatch, "/api/chat/mark-read/c1", "farmer", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesRejectFarmers(t *testing.T) {
	f := newHandlerFixture(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/chat/admin/conversations"},
		{http.MethodPost, "/api/chat/admin/proactive-message"},
		{http.MethodPost, "/api/chat/admin/broadcast"},
		{http.MethodGet, "/api/chat/admin/online-users"},
		{http.MethodPost, "/api/bot/token"},
	}

	for _, p := range paths {
		t.Run(p.path, func(t *testing.T) {
			rec := f.do(t, p.method, p.path, "farmer", map[string]any{})
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestListConversations(t *testing.T) {
	f := newHandlerFixture(t)

	f.chat.EXPECT().ListConversations(gomock.Any(), 2, 10).
		Return([]*dbmongo.Conversation{{}}, int64(11), nil)

	rec := f.do(t, http.MethodGet, "/api/chat/admin/conversations?page=2&limit=10", "admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.Total)
	assert.Equal(t, 2, resp.Page)
}

func TestProactiveMessage(t *testing.T) {
	f := newHandlerFixture(t)
	conv := &dbmongo.Conversation{ID: primitive.NewObjectID(), FarmerID: "farmer-9"}

	f.chat.EXPECT().GetOrCreateConversation(gomock.Any(), "farmer-9").Return(conv, false, nil)
	f.chat.EXPECT().SendProactive(gomock.Any(), conv.ID.Hex(), "rain tomorrow",
		common.AlertWeather, common.MessageWeatherAlert).
		Return(&dbmongo.Message{}, nil)

	rec := f.do(t, http.MethodPost, "/api/chat/admin/proactive-message", "admin", map[string]any{
		"farmerId":    "farmer-9",
		"content":     "rain tomorrow",
		"alertType":   "weather",
		"messageType": "weather_alert",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBroadcast(t *testing.T) {
	f := newHandlerFixture(t)

	f.chat.EXPECT().BroadcastEmergency(gomock.Any(), "locust swarm approaching", common.AlertEmergency).
		Return(&service.EmergencyReport{Total: 10, Delivered: 9, Failed: 1}, nil)

	rec := f.do(t, http.MethodPost, "/api/chat/admin/broadcast", "admin", map[string]any{
		"content":   "locust swarm approaching",
		"alertType": "emergency",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var report service.EmergencyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 9, report.Delivered)
	assert.Equal(t, 1, report.Failed)
}

func TestOnlineUsers(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/chat/admin/online-users", "admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Farmers []string `json:"farmers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"farmer-1"}, resp.Farmers)
}

func TestIssueBotToken(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/bot/token", "admin", map[string]any{
		"farmerId": "farmer-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 300, resp.ExpiresIn)

	claims, err := common.ValidAgentToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", claims.FarmerID)
}

func TestIssueBotToken_RequiresFarmerID(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/bot/token", "admin", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
