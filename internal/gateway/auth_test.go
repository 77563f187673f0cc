package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	svcmocks "kisaanchat/internal/chat/service/mocks"
	"kisaanchat/internal/common"
	"kisaanchat/internal/dbmongo"
	"kisaanchat/internal/user"
)

func TestAuthenticate_FarmerToken(t *testing.T) {
	common.SetJWTSecret("test-secret")
	ctrl := gomock.NewController(t)
	users := svcmocks.NewMockUserRepository(ctrl)
	auth := NewAuthenticator(users)

	token, err := common.GenerateToken("farmer-1", "Ramesh", "farmer", time.Hour)
	require.NoError(t, err)

	users.EXPECT().FindByID(gomock.Any(), "farmer-1").
		Return(&dbmongo.User{Name: "Ramesh", Role: "farmer"}, nil)

	p, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, KindFarmer, p.Kind)
	assert.Equal(t, "farmer-1", p.UserID)
	assert.Equal(t, "Ramesh", p.Name)
}

func TestAuthenticate_AdminToken(t *testing.T) {
	common.SetJWTSecret("test-secret")
	ctrl := gomock.NewController(t)
	users := svcmocks.NewMockUserRepository(ctrl)
	auth := NewAuthenticator(users)

	token, err := common.GenerateToken("admin-1", "Priya", "admin", time.Hour)
	require.NoError(t, err)

	users.EXPECT().FindByID(gomock.Any(), "admin-1").
		Return(&dbmongo.User{Name: "Priya", Role: "admin"}, nil)

	p, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, KindAdmin, p.Kind)
}

func TestAuthenticate_AgentToken(t *testing.T) {
	common.SetJWTSecret("test-secret")
	ctrl := gomock.NewController(t)
	auth := NewAuthenticator(svcmocks.NewMockUserRepository(ctrl))

	token, err := common.GenerateAgentToken("farmer-1", 5*time.Minute)
	require.NoError(t, err)

	p, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, KindAgent, p.Kind)
	assert.Equal(t, common.AIAgentID, p.UserID)
	assert.Equal(t, "farmer-1", p.FarmerID)
}

func TestAuthenticate_Failures(t *testing.T) {
	common.SetJWTSecret("test-secret")
	ctrl := gomock.NewController(t)
	users := svcmocks.NewMockUserRepository(ctrl)
	auth := NewAuthenticator(users)

	t.Run("empty token", func(t *testing.T) {
		_, err := auth.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.Authenticate(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := common.GenerateToken("farmer-1", "Ramesh", "farmer", -time.Minute)
		require.NoError(t, err)
		_, err = auth.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		token, err := common.GenerateToken("ghost", "Ghost", "farmer", time.Hour)
		require.NoError(t, err)
		users.EXPECT().FindByID(gomock.Any(), "ghost").Return(nil, user.ErrUserNotFound)
		_, err = auth.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrAuthentication)
	})
}
