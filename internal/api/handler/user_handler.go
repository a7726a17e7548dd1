package handler

import (
	"encoding/json"
	"net/http"

	"stayhub/internal/api/middleware"
	"stayhub/internal/app/service"
	"stayhub/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService  *service.UserService
	roomService  *service.RoomService
	mediaService *service.MediaService
}

func NewUserHandler(us *service.UserService, rs *service.RoomService, ms *service.MediaService) *UserHandler {
	return &UserHandler{userService: us, roomService: rs, mediaService: ms}
}

func (h *UserHandler) RegisterRoutes(r chi.Router, auth, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/sign_up", h.signUp)
	r.With(limit).Post("/log_in", h.logIn)
	r.Get("/rooms/{id}", h.listRooms)
	r.Get("/{id}", h.profile)

	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Put("/update", h.update)
		protected.Put("/update_password", h.updatePassword)

		protected.Group(func(self chi.Router) {
			self.Use(middleware.Self)
			self.Put("/upload_picture/{id}", h.uploadPicture)
			self.Put("/delete_picture/{id}", h.deletePicture)
		})
	})
}

func (h *UserHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.userService.SignUp(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) logIn(w http.ResponseWriter, r *http.Request) {
	var req service.LogInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.userService.LogIn(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rooms)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) updatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req service.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), user, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Password updated"})
}

func (h *UserHandler) uploadPicture(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filename, data, contentType, err := readPicture(w, r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing file")
		return
	}

	updated, err := h.mediaService.SetProfilePhoto(r.Context(), user, filename, data, contentType)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) deletePicture(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.mediaService.RemoveProfilePhoto(r.Context(), user); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Profile photo removed"})
}
