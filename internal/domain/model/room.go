package model

import (
	"time"
)

// MaxRoomPhotos caps the number of photos attached to a single room.
const MaxRoomPhotos = 5

// Room is a published listing. Location is [latitude, longitude],
// order-significant. UserID is the owner and is immutable after creation.
type Room struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Location    [2]float64     `json:"location"`
	Photos      []Photo        `json:"photos"`
	UserID      string         `json:"user"`
	Owner       *PublicProfile `json:"owner,omitempty"` // populated on detail fetches
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// RoomSummary is the collection-list view of a room. It deliberately
// omits the description to keep list payloads small.
type RoomSummary struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Price    float64    `json:"price"`
	Location [2]float64 `json:"location"`
	Photos   []Photo    `json:"photos"`
	UserID   string     `json:"user"`
}

func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:       r.ID,
		Title:    r.Title,
		Price:    r.Price,
		Location: r.Location,
		Photos:   r.Photos,
		UserID:   r.UserID,
	}
}
