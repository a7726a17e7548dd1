package service

import (
	"context"
	"fmt"
	"log"

	"stayhub/internal/common"
	"stayhub/internal/domain/model"
	"stayhub/internal/domain/repository"
	"stayhub/internal/platform/media"

	"github.com/google/uuid"
)

type RoomService struct {
	roomRepo repository.RoomRepository
	userRepo repository.UserRepository
	media    media.Client
}

func NewRoomService(roomRepo repository.RoomRepository, userRepo repository.UserRepository, mediaClient media.Client) *RoomService {
	return &RoomService{roomRepo: roomRepo, userRepo: userRepo, media: mediaClient}
}

type LocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type PublishRoomRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       *float64         `json:"price"`
	Location    *LocationRequest `json:"location"`
}

func (s *RoomService) Publish(ctx context.Context, caller *model.User, req PublishRoomRequest) (*model.Room, error) {
	if req.Title == "" || req.Description == "" || req.Price == nil ||
		req.Location == nil || req.Location.Lat == nil || req.Location.Lng == nil {
		return nil, common.Errorf("missing parameters: %w", common.ErrBadRequest)
	}

	room := &model.Room{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Location:    [2]float64{*req.Location.Lat, *req.Location.Lng},
		Photos:      []model.Photo{},
		UserID:      caller.ID,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to publish room: %w", err)
	}
	return room, nil
}

// ListRoomsResponse reports the total match count before pagination next to
// the requested page of summaries.
type ListRoomsResponse struct {
	Count int                 `json:"count"`
	Rooms []model.RoomSummary `json:"rooms"`
}

func (s *RoomService) List(ctx context.Context, filter repository.RoomFilter) (*ListRoomsResponse, error) {
	rooms, count, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListRoomsResponse{Count: count, Rooms: rooms}, nil
}

func (s *RoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, common.Errorf("missing id: %w", common.ErrBadRequest)
	}
	return s.roomRepo.FindByIDWithOwner(ctx, id)
}

func (s *RoomService) ListByUser(ctx context.Context, userID string) ([]model.Room, error) {
	if userID == "" {
		return nil, common.Errorf("missing id: %w", common.ErrBadRequest)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.roomRepo.ListByUser(ctx, userID)
}

type UpdateRoomRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *float64         `json:"price,omitempty"`
	Location    *LocationRequest `json:"location,omitempty"`
}

// Update mutates the fields supplied in the request. Latitude and longitude
// are independently updatable: sending only location.lat leaves the stored
// longitude untouched.
func (s *RoomService) Update(ctx context.Context, room *model.Room, req UpdateRoomRequest) (*model.Room, error) {
	if req.Title == nil && req.Description == nil && req.Price == nil && req.Location == nil {
		return nil, common.Errorf("missing parameters: %w", common.ErrBadRequest)
	}

	if req.Title != nil {
		room.Title = *req.Title
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Location != nil {
		if req.Location.Lat != nil {
			room.Location[0] = *req.Location.Lat
		}
		if req.Location.Lng != nil {
			room.Location[1] = *req.Location.Lng
		}
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return room, nil
}

// Delete removes the listing. Remote photo objects are scrubbed first,
// best-effort: a media host failure is logged but does not keep the room
// alive locally.
func (s *RoomService) Delete(ctx context.Context, room *model.Room) error {
	for _, photo := range room.Photos {
		if err := s.media.Delete(ctx, photo.ExternalID); err != nil {
			log.Printf("WARN: failed to remove photo %s of room %s: %v", photo.ExternalID, room.ID, err)
		}
	}
	if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}
