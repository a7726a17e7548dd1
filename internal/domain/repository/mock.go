package repository

import (
	"context"

	"stayhub/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateAccount(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCredentials(ctx context.Context, id, salt, hash, token string) error {
	args := m.Called(ctx, id, salt, hash, token)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePhoto(ctx context.Context, id string, photo *model.Photo) error {
	args := m.Called(ctx, id, photo)
	return args.Error(0)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	args := m.Called(ctx, id)
	if room, ok := args.Get(0).(*model.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomRepository) FindByIDWithOwner(ctx context.Context, id string) (*model.Room, error) {
	args := m.Called(ctx, id)
	if room, ok := args.Get(0).(*model.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, filter RoomFilter) ([]model.RoomSummary, int, error) {
	args := m.Called(ctx, filter)
	if summaries, ok := args.Get(0).([]model.RoomSummary); ok {
		return summaries, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockRoomRepository) ListByUser(ctx context.Context, userID string) ([]model.Room, error) {
	args := m.Called(ctx, userID)
	if rooms, ok := args.Get(0).([]model.Room); ok {
		return rooms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *model.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) AddPhoto(ctx context.Context, roomID string, photo model.Photo) error {
	args := m.Called(ctx, roomID, photo)
	return args.Error(0)
}

func (m *MockRoomRepository) RemovePhoto(ctx context.Context, roomID, externalID string) error {
	args := m.Called(ctx, roomID, externalID)
	return args.Error(0)
}
