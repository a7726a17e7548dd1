package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"stayhub/internal/api/middleware"
	"stayhub/internal/app/service"
	"stayhub/internal/common"
	"stayhub/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type RoomHandler struct {
	roomService  *service.RoomService
	mediaService *service.MediaService
}

func NewRoomHandler(rs *service.RoomService, ms *service.MediaService) *RoomHandler {
	return &RoomHandler{roomService: rs, mediaService: ms}
}

func (h *RoomHandler) RegisterRoutes(r chi.Router, auth, owner func(http.Handler) http.Handler) {
	r.Get("/rooms", h.list)
	r.Get("/rooms/{id}", h.get)

	r.Route("/room", func(rm chi.Router) {
		rm.Use(auth)
		rm.Post("/publish", h.publish)

		rm.Group(func(owned chi.Router) {
			owned.Use(owner)
			owned.Put("/update/{id}", h.update)
			owned.Put("/upload_picture/{id}", h.uploadPicture)
			owned.Put("/delete_picture/{id}", h.deletePicture)
			owned.Delete("/delete/{id}", h.delete)
		})
	})
}

func (h *RoomHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.RoomFilter{
		Title: q.Get("title"),
		Sort:  q.Get("sort"),
	}
	if v, err := strconv.ParseFloat(q.Get("priceMin"), 64); err == nil {
		filter.PriceMin = &v
	}
	if v, err := strconv.ParseFloat(q.Get("priceMax"), 64); err == nil {
		filter.PriceMax = &v
	}

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page > 0 && limit <= 0 {
		limit = 10
	}
	if limit > 0 && page <= 0 {
		page = 1
	}
	filter.Page = page
	filter.Limit = limit

	resp, err := h.roomService.List(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *RoomHandler) get(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) publish(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req service.PublishRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	room, err := h.roomService.Publish(r.Context(), user, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) update(w http.ResponseWriter, r *http.Request) {
	room, ok := middleware.RoomFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req service.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.roomService.Update(r.Context(), room, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *RoomHandler) delete(w http.ResponseWriter, r *http.Request) {
	room, ok := middleware.RoomFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.roomService.Delete(r.Context(), room); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Room deleted"})
}

func (h *RoomHandler) uploadPicture(w http.ResponseWriter, r *http.Request) {
	room, ok := middleware.RoomFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	filename, data, contentType, err := readPicture(w, r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing file")
		return
	}

	updated, err := h.mediaService.AddRoomPhoto(r.Context(), room, filename, data, contentType)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

type deletePictureRequest struct {
	PhotoID string `json:"photo_id"`
}

func (h *RoomHandler) deletePicture(w http.ResponseWriter, r *http.Request) {
	room, ok := middleware.RoomFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req deletePictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhotoID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Missing photo_id")
		return
	}

	if err := h.mediaService.RemoveRoomPhoto(r.Context(), room, req.PhotoID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Photo removed"})
}
