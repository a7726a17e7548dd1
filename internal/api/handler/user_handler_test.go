package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayhub/internal/api/middleware"
	"stayhub/internal/app/service"
	"stayhub/internal/common"
	"stayhub/internal/common/security"
	"stayhub/internal/domain/model"
	"stayhub/internal/domain/repository"
	"stayhub/internal/platform/media"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestRouter(userRepo *repository.MockUserRepository, roomRepo *repository.MockRoomRepository, mediaClient *media.MockClient) chi.Router {
	userService := service.NewUserService(userRepo)
	roomService := service.NewRoomService(roomRepo, userRepo, mediaClient)
	mediaService := service.NewMediaService(userRepo, roomRepo, mediaClient)
	h := NewUserHandler(userService, roomService, mediaService)

	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	r.Route("/user", func(u chi.Router) {
		h.RegisterRoutes(u, passthrough, passthrough)
	})
	return r
}

const signUpBody = `{
	"email": "ada@example.com",
	"username": "ada",
	"name": "Lovelace",
	"firstname": "Ada",
	"description": "Mathematician",
	"password": "difference-engine"
}`

func TestSignUpHandler(t *testing.T) {
	t.Run("returns id, token and account without credentials", func(t *testing.T) {
		userRepo := &repository.MockUserRepository{}
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, common.ErrNotFound)
		userRepo.On("FindByUsername", mock.Anything, "ada").Return(nil, common.ErrNotFound)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		r := newUserTestRouter(userRepo, &repository.MockRoomRepository{}, &media.MockClient{})
		req := httptest.NewRequest(http.MethodPost, "/user/sign_up", strings.NewReader(signUpBody))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var fields map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
		assert.NotEmpty(t, fields["id"])
		assert.Len(t, fields["token"], security.CredentialLength)
		assert.NotContains(t, fields, "hash")
		assert.NotContains(t, fields, "salt")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		userRepo := &repository.MockUserRepository{}
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").
			Return(&model.User{ID: "user-0"}, nil)

		r := newUserTestRouter(userRepo, &repository.MockRoomRepository{}, &media.MockClient{})
		req := httptest.NewRequest(http.MethodPost, "/user/sign_up", strings.NewReader(signUpBody))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp common.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("missing parameters", func(t *testing.T) {
		r := newUserTestRouter(&repository.MockUserRepository{}, &repository.MockRoomRepository{}, &media.MockClient{})
		req := httptest.NewRequest(http.MethodPost, "/user/sign_up", strings.NewReader(`{"email":"a@b.c"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogInHandler(t *testing.T) {
	salt, _ := security.NewSalt()
	user := &model.User{
		ID:      "user-1",
		Account: model.Account{Email: "ada@example.com", Username: "ada"},
		Token:   "stored-token",
		Salt:    salt,
		Hash:    security.HashPassword("difference-engine", salt),
	}

	t.Run("correct password returns stored token", func(t *testing.T) {
		userRepo := &repository.MockUserRepository{}
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		r := newUserTestRouter(userRepo, &repository.MockRoomRepository{}, &media.MockClient{})
		body := `{"email":"ada@example.com","password":"difference-engine"}`
		req := httptest.NewRequest(http.MethodPost, "/user/log_in", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var fields map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
		assert.Equal(t, "stored-token", fields["token"])
		assert.Equal(t, "ada", fields["username"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		userRepo := &repository.MockUserRepository{}
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		r := newUserTestRouter(userRepo, &repository.MockRoomRepository{}, &media.MockClient{})
		body := `{"email":"ada@example.com","password":"guess"}`
		req := httptest.NewRequest(http.MethodPost, "/user/log_in", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdatePasswordHandler(t *testing.T) {
	salt, _ := security.NewSalt()
	user := &model.User{
		ID:   "user-1",
		Salt: salt,
		Hash: security.HashPassword("old-password", salt),
	}

	t.Run("wrong previous password", func(t *testing.T) {
		r := newUserTestRouter(&repository.MockUserRepository{}, &repository.MockRoomRepository{}, &media.MockClient{})
		body := `{"previous_password":"wrong","new_password":"next"}`
		req := httptest.NewRequest(http.MethodPut, "/user/update_password", strings.NewReader(body))
		req = req.WithContext(middleware.ContextWithUser(req.Context(), user))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rotation confirmed", func(t *testing.T) {
		userRepo := &repository.MockUserRepository{}
		defer userRepo.AssertExpectations(t)
		userRepo.On("UpdateCredentials", mock.Anything, "user-1",
			mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

		r := newUserTestRouter(userRepo, &repository.MockRoomRepository{}, &media.MockClient{})
		body := `{"previous_password":"old-password","new_password":"new-password"}`
		req := httptest.NewRequest(http.MethodPut, "/user/update_password", strings.NewReader(body))
		req = req.WithContext(middleware.ContextWithUser(req.Context(), user))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestProfileHandler(t *testing.T) {
	user := &model.User{
		ID:      "user-1",
		Account: model.Account{Username: "ada", Email: "ada@example.com"},
		Rooms:   []string{"room-1"},
		Salt:    "secret-salt",
		Hash:    "secret-hash",
		Token:   "secret-token",
	}

	userRepo := &repository.MockUserRepository{}
	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil)

	r := newUserTestRouter(userRepo, &repository.MockRoomRepository{}, &media.MockClient{})
	req := httptest.NewRequest(http.MethodGet, "/user/user-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "secret-salt")
	assert.NotContains(t, body, "secret-hash")
	assert.NotContains(t, body, "secret-token")

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, []interface{}{"room-1"}, fields["rooms"])
}
