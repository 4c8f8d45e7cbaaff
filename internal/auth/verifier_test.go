package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportchat/internal/chat/repository/mocks"
	"supportchat/internal/common"
	"supportchat/internal/config"
	"supportchat/internal/dbmysql"
)

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
}

func TestVerifier_Resolve(t *testing.T) {
	cfg := testConfig()

	t.Run("valid token resolves identity with role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			ByID(gomock.Any(), uint64(42)).
			Return(&dbmysql.User{
				UserID:   42,
				Username: "alice",
				Email:    "alice@example.com",
				RoleType: "authenticated",
				RoleName: "Authenticated",
			}, nil).
			Times(1)

		token, err := common.GenerateToken([]byte(cfg.JWT.Secret), 42)
		require.NoError(t, err)

		identity, err := NewVerifier(cfg, mockUsers).Resolve(context.Background(), token)

		require.NoError(t, err)
		assert.Equal(t, uint64(42), identity.ID)
		assert.Equal(t, "alice", identity.Username)
		assert.Equal(t, common.RoleUser, identity.Role)
		assert.False(t, identity.IsSupport())
	})

	t.Run("support role rides on the identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			ByID(gomock.Any(), uint64(1)).
			Return(&dbmysql.User{UserID: 1, Username: "agent", RoleType: "support", RoleName: "Support"}, nil).
			Times(1)

		token, err := common.GenerateToken([]byte(cfg.JWT.Secret), 1)
		require.NoError(t, err)

		identity, err := NewVerifier(cfg, mockUsers).Resolve(context.Background(), token)

		require.NoError(t, err)
		assert.True(t, identity.IsSupport())
	})

	t.Run("empty credential", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, err := NewVerifier(cfg, mocks.NewMockUserRepository(ctrl)).Resolve(context.Background(), "")
		assert.True(t, common.IsAuth(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, err := NewVerifier(cfg, mocks.NewMockUserRepository(ctrl)).Resolve(context.Background(), "not.a.token")
		assert.True(t, common.IsAuth(err))
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		token, err := common.GenerateToken([]byte("other-secret"), 42)
		require.NoError(t, err)

		_, err = NewVerifier(cfg, mocks.NewMockUserRepository(ctrl)).Resolve(context.Background(), token)
		assert.True(t, common.IsAuth(err))
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			ByID(gomock.Any(), uint64(42)).
			Return(nil, common.ErrNotFound).
			Times(1)

		token, err := common.GenerateToken([]byte(cfg.JWT.Secret), 42)
		require.NoError(t, err)

		_, err = NewVerifier(cfg, mockUsers).Resolve(context.Background(), token)
		assert.True(t, common.IsAuth(err))
	})
}

func TestMiddleware(t *testing.T) {
	cfg := testConfig()

	newHandler := func(users *mocks.MockUserRepository) http.Handler {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			require.True(t, ok, "the handler must see the injected identity")
			assert.Equal(t, uint64(42), identity.ID)
			w.WriteHeader(http.StatusOK)
		})
		return Middleware(NewVerifier(cfg, users))(next)
	}

	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockUsers.EXPECT().
			ByID(gomock.Any(), uint64(42)).
			Return(&dbmysql.User{UserID: 42, Username: "alice"}, nil).
			Times(1)

		token, err := common.GenerateToken([]byte(cfg.JWT.Secret), 42)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		newHandler(mockUsers).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		newHandler(mocks.NewMockUserRepository(ctrl)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		newHandler(mocks.NewMockUserRepository(ctrl)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
