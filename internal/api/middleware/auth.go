package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"stayhub/internal/common"
	"stayhub/internal/domain/model"
	"stayhub/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	userCtxKey contextKey = "user"
	roomCtxKey contextKey = "room"
)

// Authenticator resolves the bearer token to exactly one user by exact
// token match against storage. There is no expiry and no session store:
// the stored token is the sole credential, valid until a password change
// rotates it.
func Authenticator(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := users.FindByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				common.RespondWithError(w, http.StatusInternalServerError, "Failed to authenticate request")
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoomOwner confirms the authenticated caller owns the room named in the
// request path. Ownership is re-resolved from storage on every call rather
// than trusted from a cached identity.
func RoomOwner(rooms repository.RoomRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			roomID := chi.URLParam(r, "id")
			if roomID == "" {
				common.RespondWithError(w, http.StatusBadRequest, "Missing id")
				return
			}

			room, err := rooms.FindByID(r.Context(), roomID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusNotFound, "Room not found")
					return
				}
				common.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve room")
				return
			}

			if room.UserID != user.ID {
				common.RespondWithError(w, http.StatusForbidden, "Forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), roomCtxKey, room)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Self gates user-scoped routes: the path id must be the caller's own id.
func Self(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			common.RespondWithError(w, http.StatusBadRequest, "Missing id")
			return
		}
		if id != user.ID {
			common.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}

func RoomFromContext(ctx context.Context) (*model.Room, bool) {
	room, ok := ctx.Value(roomCtxKey).(*model.Room)
	return room, ok
}

// ContextWithUser and ContextWithRoom are used by handler tests to seed the
// request context the way the middlewares would.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

func ContextWithRoom(ctx context.Context, room *model.Room) context.Context {
	return context.WithValue(ctx, roomCtxKey, room)
}
