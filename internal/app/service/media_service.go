package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"stayhub/internal/common"
	"stayhub/internal/domain/model"
	"stayhub/internal/domain/repository"
	"stayhub/internal/platform/media"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MediaService attaches photos stored on the external media host to rooms
// and user profiles. Remote calls are synchronous; local state is only
// touched after the host accepted the object.
type MediaService struct {
	userRepo repository.UserRepository
	roomRepo repository.RoomRepository
	media    media.Client
}

func NewMediaService(userRepo repository.UserRepository, roomRepo repository.RoomRepository, mediaClient media.Client) *MediaService {
	return &MediaService{userRepo: userRepo, roomRepo: roomRepo, media: mediaClient}
}

func (s *MediaService) AddRoomPhoto(ctx context.Context, room *model.Room, filename string, data []byte, contentType string) (*model.Room, error) {
	if len(data) == 0 {
		return nil, common.Errorf("missing file: %w", common.ErrBadRequest)
	}
	if len(room.Photos) >= model.MaxRoomPhotos {
		return nil, common.Errorf("room already has %d photos: %w", model.MaxRoomPhotos, common.ErrBadRequest)
	}

	key := storageKey("rooms/"+room.UserID+"/"+room.ID, filename)
	url, err := s.media.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	photo := model.Photo{URL: url, ExternalID: key}
	if err := s.roomRepo.AddPhoto(ctx, room.ID, photo); err != nil {
		return nil, fmt.Errorf("failed to store photo reference: %w", err)
	}

	return s.roomRepo.FindByID(ctx, room.ID)
}

func (s *MediaService) RemoveRoomPhoto(ctx context.Context, room *model.Room, externalID string) error {
	found := false
	for _, photo := range room.Photos {
		if photo.ExternalID == externalID {
			found = true
			break
		}
	}
	if !found {
		return common.Errorf("no photo with this id on the room: %w", common.ErrNotFound)
	}

	if err := s.media.Delete(ctx, externalID); err != nil {
		return err
	}
	if err := s.roomRepo.RemovePhoto(ctx, room.ID, externalID); err != nil {
		return fmt.Errorf("failed to remove photo reference: %w", err)
	}
	return nil
}

// SetProfilePhoto uploads or replaces the caller's profile photo. A user
// keeps at most one: replacing reuses the existing storage key so the host
// never accumulates stale avatars.
func (s *MediaService) SetProfilePhoto(ctx context.Context, user *model.User, filename string, data []byte, contentType string) (*model.User, error) {
	if len(data) == 0 {
		return nil, common.Errorf("missing file: %w", common.ErrBadRequest)
	}

	var key string
	if user.Account.Photo != nil {
		key = user.Account.Photo.ExternalID
	} else {
		key = storageKey("users/"+user.ID, filename)
	}

	url, err := s.media.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	photo := &model.Photo{URL: url, ExternalID: key}
	if err := s.userRepo.UpdatePhoto(ctx, user.ID, photo); err != nil {
		return nil, fmt.Errorf("failed to store photo reference: %w", err)
	}
	user.Account.Photo = photo
	return user, nil
}

func (s *MediaService) RemoveProfilePhoto(ctx context.Context, user *model.User) error {
	if user.Account.Photo == nil {
		return common.Errorf("no profile photo set: %w", common.ErrBadRequest)
	}

	if err := s.media.Delete(ctx, user.Account.Photo.ExternalID); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePhoto(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("failed to clear photo reference: %w", err)
	}
	user.Account.Photo = nil
	return nil
}

// storageKey builds the media host object key for an upload. The filename
// is slugified so arbitrary client input never reaches the key; a uuid
// keeps keys unique under the prefix.
func storageKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := slug.Make(strings.TrimSuffix(path.Base(filename), ext))
	if name == "" {
		name = "photo"
	}
	return fmt.Sprintf("%s/%s-%s%s", prefix, name, uuid.NewString(), ext)
}
