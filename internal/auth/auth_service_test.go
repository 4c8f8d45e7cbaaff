package auth

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportchat/internal/chat/repository/mocks"
	"supportchat/internal/common"
	"supportchat/internal/dbmysql"
)

func TestAuthService_Login(t *testing.T) {
	cfg := testConfig()

	hash, err := common.HashPassword("s3cret-pass")
	require.NoError(t, err)
	stored := &dbmysql.User{UserID: 42, Username: "alice", Email: "alice@example.com", PasswordHash: hash}

	t.Run("valid credentials return user and token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			ByIdentifier(gomock.Any(), "alice").
			Return(stored, nil).
			Times(1)

		user, token, err := NewAuthService(cfg, mockUsers).Login(context.Background(), "alice", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, uint64(42), user.UserID)

		claims, err := common.ValidToken([]byte(cfg.JWT.Secret), token)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			ByIdentifier(gomock.Any(), "alice").
			Return(stored, nil).
			Times(1)

		_, _, err := NewAuthService(cfg, mockUsers).Login(context.Background(), "alice", "wrong")
		assert.True(t, common.IsAuth(err))
	})

	t.Run("unknown identifier gets the same error as a bad password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			ByIdentifier(gomock.Any(), "nobody").
			Return(nil, common.ErrNotFound).
			Times(1)

		_, _, err := NewAuthService(cfg, mockUsers).Login(context.Background(), "nobody", "s3cret-pass")
		assert.True(t, common.IsAuth(err))
		assert.NotContains(t, err.Error(), "not found", "existence must not leak")
	})
}

func TestAuthService_Register(t *testing.T) {
	cfg := testConfig()

	t.Run("new account is persisted with a hashed password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *dbmysql.User) error {
				assert.Equal(t, "bob", user.Username)
				assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
				assert.NoError(t, common.CheckPassword("s3cret-pass", user.PasswordHash))
				user.UserID = 7
				return nil
			}).
			Times(1)

		user, token, err := NewAuthService(cfg, mockUsers).
			Register(context.Background(), "bob", "bob@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, uint64(7), user.UserID)
		assert.NotEmpty(t, token)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := NewAuthService(cfg, mocks.NewMockUserRepository(ctrl))

		_, _, err := svc.Register(context.Background(), "", "bob@example.com", "s3cret-pass")
		assert.True(t, common.IsValidation(err))

		_, _, err = svc.Register(context.Background(), "bob", "not-an-email", "s3cret-pass")
		assert.True(t, common.IsValidation(err))

		_, _, err = svc.Register(context.Background(), "bob", "bob@example.com", "short")
		assert.True(t, common.IsValidation(err))
	})
}
