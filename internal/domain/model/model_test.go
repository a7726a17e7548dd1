package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPublicProfile(t *testing.T) {
	u := &User{
		ID: "user-1",
		Account: Account{
			Username:  "ada",
			Email:     "ada@example.com",
			Name:      "Lovelace",
			FirstName: "Ada",
			Photo:     &Photo{URL: "http://media/a", ExternalID: "users/user-1/a.png"},
		},
		Rooms: []string{"room-1"},
		Token: "secret-token",
		Salt:  "secret-salt",
		Hash:  "secret-hash",
	}

	p := u.PublicProfile()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, u.Account, p.Account)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")
	assert.NotContains(t, string(raw), "secret-salt")
	assert.NotContains(t, string(raw), "secret-hash")
	assert.NotContains(t, string(raw), "rooms")
}

func TestRoomSummary(t *testing.T) {
	r := &Room{
		ID:          "room-1",
		Title:       "Sea view",
		Description: "Top floor, two beds",
		Price:       120,
		Location:    [2]float64{43.7, 7.25},
		Photos:      []Photo{{URL: "http://media/1", ExternalID: "k1"}},
		UserID:      "user-1",
	}

	s := r.Summary()
	assert.Equal(t, r.ID, s.ID)
	assert.Equal(t, r.Location, s.Location)
	assert.Equal(t, r.Photos, s.Photos)
	assert.Equal(t, r.UserID, s.UserID)

	var fields map[string]interface{}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "description")
}
