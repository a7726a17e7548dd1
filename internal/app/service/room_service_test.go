package service

import (
	"context"
	"testing"

	"stayhub/internal/common"
	"stayhub/internal/domain/model"
	"stayhub/internal/domain/repository"
	"stayhub/internal/platform/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func testRoom(ownerID string) *model.Room {
	return &model.Room{
		ID:          "room-1",
		Title:       "Canal view studio",
		Description: "Small studio with a view on the canal",
		Price:       80,
		Location:    [2]float64{48.8606, 2.3376},
		Photos:      []model.Photo{},
		UserID:      ownerID,
	}
}

func TestPublish(t *testing.T) {
	caller := testUser("x")

	t.Run("missing parameters", func(t *testing.T) {
		svc := NewRoomService(&repository.MockRoomRepository{}, &repository.MockUserRepository{}, &media.MockClient{})

		cases := []PublishRoomRequest{
			{},
			{Title: "t", Description: "d", Price: floatPtr(80)},
			{Title: "t", Description: "d", Price: floatPtr(80), Location: &LocationRequest{Lat: floatPtr(48.8)}},
			{Title: "t", Price: floatPtr(80), Location: &LocationRequest{Lat: floatPtr(48.8), Lng: floatPtr(2.3)}},
		}
		for _, req := range cases {
			_, err := svc.Publish(context.Background(), caller, req)
			assert.ErrorIs(t, err, common.ErrBadRequest)
		}
	})

	t.Run("creates room owned by caller", func(t *testing.T) {
		roomRepo := &repository.MockRoomRepository{}
		defer roomRepo.AssertExpectations(t)

		var created *model.Room
		roomRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Room")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.Room)
			}).Return(nil)

		svc := NewRoomService(roomRepo, &repository.MockUserRepository{}, &media.MockClient{})
		room, err := svc.Publish(context.Background(), caller, PublishRoomRequest{
			Title:       "Canal view studio",
			Description: "Small studio",
			Price:       floatPtr(80),
			Location:    &LocationRequest{Lat: floatPtr(48.8606), Lng: floatPtr(2.3376)},
		})
		require.NoError(t, err)

		assert.Equal(t, caller.ID, room.UserID)
		assert.Equal(t, [2]float64{48.8606, 2.3376}, room.Location)
		assert.Empty(t, room.Photos)
		assert.Equal(t, created, room)
	})
}

func TestListRooms(t *testing.T) {
	roomRepo := &repository.MockRoomRepository{}
	defer roomRepo.AssertExpectations(t)

	filter := repository.RoomFilter{Title: "studio", Page: 2, Limit: 10, Sort: "price-asc"}
	summaries := []model.RoomSummary{{ID: "room-11"}, {ID: "room-12"}}
	roomRepo.On("List", mock.Anything, filter).Return(summaries, 25, nil)

	svc := NewRoomService(roomRepo, &repository.MockUserRepository{}, &media.MockClient{})
	resp, err := svc.List(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, 25, resp.Count, "count reports total matches before pagination")
	assert.Equal(t, summaries, resp.Rooms)
}

func TestListByUser(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		userRepo := &repository.MockUserRepository{}
		userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, common.ErrNotFound)

		svc := NewRoomService(&repository.MockRoomRepository{}, userRepo, &media.MockClient{})
		_, err := svc.ListByUser(context.Background(), "ghost")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("returns owner rooms", func(t *testing.T) {
		user := testUser("x")
		userRepo := &repository.MockUserRepository{}
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		roomRepo := &repository.MockRoomRepository{}
		roomRepo.On("ListByUser", mock.Anything, user.ID).Return([]model.Room{*testRoom(user.ID)}, nil)

		svc := NewRoomService(roomRepo, userRepo, &media.MockClient{})
		rooms, err := svc.ListByUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Len(t, rooms, 1)
	})
}

func TestUpdateRoom(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("no fields supplied", func(t *testing.T) {
		svc := NewRoomService(&repository.MockRoomRepository{}, &repository.MockUserRepository{}, &media.MockClient{})
		_, err := svc.Update(context.Background(), testRoom("user-1"), UpdateRoomRequest{})
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})

	t.Run("updating only latitude keeps longitude", func(t *testing.T) {
		room := testRoom("user-1")
		prevLng := room.Location[1]

		roomRepo := &repository.MockRoomRepository{}
		defer roomRepo.AssertExpectations(t)
		roomRepo.On("Update", mock.Anything, room).Return(nil)

		svc := NewRoomService(roomRepo, &repository.MockUserRepository{}, &media.MockClient{})
		updated, err := svc.Update(context.Background(), room, UpdateRoomRequest{
			Location: &LocationRequest{Lat: floatPtr(51.5)},
		})
		require.NoError(t, err)
		assert.Equal(t, 51.5, updated.Location[0])
		assert.Equal(t, prevLng, updated.Location[1])
	})

	t.Run("partial field update", func(t *testing.T) {
		room := testRoom("user-1")
		prevDescription := room.Description

		roomRepo := &repository.MockRoomRepository{}
		roomRepo.On("Update", mock.Anything, room).Return(nil)

		svc := NewRoomService(roomRepo, &repository.MockUserRepository{}, &media.MockClient{})
		updated, err := svc.Update(context.Background(), room, UpdateRoomRequest{
			Title: strPtr("Bright canal studio"),
			Price: floatPtr(95),
		})
		require.NoError(t, err)
		assert.Equal(t, "Bright canal studio", updated.Title)
		assert.Equal(t, 95.0, updated.Price)
		assert.Equal(t, prevDescription, updated.Description)
	})
}

func TestDeleteRoom(t *testing.T) {
	t.Run("scrubs remote photos then deletes row", func(t *testing.T) {
		room := testRoom("user-1")
		room.Photos = []model.Photo{
			{URL: "http://media/p1", ExternalID: "rooms/user-1/room-1/p1"},
			{URL: "http://media/p2", ExternalID: "rooms/user-1/room-1/p2"},
		}

		mediaClient := &media.MockClient{}
		defer mediaClient.AssertExpectations(t)
		mediaClient.On("Delete", mock.Anything, "rooms/user-1/room-1/p1").Return(nil)
		mediaClient.On("Delete", mock.Anything, "rooms/user-1/room-1/p2").Return(nil)

		roomRepo := &repository.MockRoomRepository{}
		defer roomRepo.AssertExpectations(t)
		roomRepo.On("Delete", mock.Anything, room.ID).Return(nil)

		svc := NewRoomService(roomRepo, &repository.MockUserRepository{}, mediaClient)
		require.NoError(t, svc.Delete(context.Background(), room))
	})

	t.Run("media host failure does not keep the room", func(t *testing.T) {
		room := testRoom("user-1")
		room.Photos = []model.Photo{{URL: "http://media/p1", ExternalID: "k1"}}

		mediaClient := &media.MockClient{}
		mediaClient.On("Delete", mock.Anything, "k1").Return(common.ErrUpstreamFailure)

		roomRepo := &repository.MockRoomRepository{}
		defer roomRepo.AssertExpectations(t)
		roomRepo.On("Delete", mock.Anything, room.ID).Return(nil)

		svc := NewRoomService(roomRepo, &repository.MockUserRepository{}, mediaClient)
		require.NoError(t, svc.Delete(context.Background(), room))
	})
}
