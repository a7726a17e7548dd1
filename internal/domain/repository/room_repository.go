package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stayhub/internal/common"
	"stayhub/internal/domain/model"
)

// RoomFilter carries the search parameters of the listing endpoint.
// PriceMin and PriceMax are inclusive and independently optional. Page and
// Limit paginate after the total match count is taken; Limit <= 0 disables
// pagination.
type RoomFilter struct {
	Title    string
	PriceMin *float64
	PriceMax *float64
	Sort     string // "price-asc" or "price-desc"
	Page     int
	Limit    int
}

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindByIDWithOwner(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]model.RoomSummary, int, error)
	ListByUser(ctx context.Context, userID string) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
	AddPhoto(ctx context.Context, roomID string, photo model.Photo) error
	RemovePhoto(ctx context.Context, roomID, externalID string) error
}

type pgRoomRepository struct {
	db *sql.DB
}

func NewPgRoomRepository(db *sql.DB) RoomRepository {
	return &pgRoomRepository{db: db}
}

func (r *pgRoomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `INSERT INTO rooms (id, title, description, price, lat, lng, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		room.ID, room.Title, room.Description, room.Price,
		room.Location[0], room.Location[1], room.UserID,
	)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	query := `SELECT id, title, description, price, lat, lng, user_id, created_at, updated_at
	          FROM rooms WHERE id = $1`
	room := &model.Room{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.Title, &room.Description, &room.Price,
		&room.Location[0], &room.Location[1], &room.UserID,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoomRepository.FindByID: %w", err)
	}

	photos, err := r.photosByRoomID(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	room.Photos = photos
	return room, nil
}

func (r *pgRoomRepository) FindByIDWithOwner(ctx context.Context, id string) (*model.Room, error) {
	query := `SELECT r.id, r.title, r.description, r.price, r.lat, r.lng, r.user_id,
	                 r.created_at, r.updated_at,
	                 u.username, u.email, u.name, u.firstname, u.description,
	                 u.photo_url, u.photo_id
	          FROM rooms r
	          JOIN users u ON r.user_id = u.id
	          WHERE r.id = $1`

	room := &model.Room{}
	var owner model.User
	var photoURL, photoID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.Title, &room.Description, &room.Price,
		&room.Location[0], &room.Location[1], &room.UserID,
		&room.CreatedAt, &room.UpdatedAt,
		&owner.Account.Username, &owner.Account.Email, &owner.Account.Name,
		&owner.Account.FirstName, &owner.Account.Description,
		&photoURL, &photoID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoomRepository.FindByIDWithOwner: %w", err)
	}
	owner.ID = room.UserID
	if photoURL.Valid && photoID.Valid {
		owner.Account.Photo = &model.Photo{URL: photoURL.String, ExternalID: photoID.String}
	}
	profile := owner.PublicProfile()
	room.Owner = &profile

	photos, err := r.photosByRoomID(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	room.Photos = photos
	return room, nil
}

// List builds the search query dynamically and counts total matches before
// applying pagination, so the response can report the pre-pagination count.
func (r *pgRoomRepository) List(ctx context.Context, filter RoomFilter) ([]model.RoomSummary, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Title != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argID))
		args = append(args, "%"+filter.Title+"%")
		argID++
	}
	if filter.PriceMin != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argID))
		args = append(args, *filter.PriceMin)
		argID++
	}
	if filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argID))
		args = append(args, *filter.PriceMax)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM rooms" + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgRoomRepository.List count: %w", err)
	}

	var query strings.Builder
	query.WriteString("SELECT id, title, price, lat, lng, user_id FROM rooms")
	query.WriteString(whereClause)

	switch filter.Sort {
	case "price-asc":
		query.WriteString(" ORDER BY price ASC, created_at ASC")
	case "price-desc":
		query.WriteString(" ORDER BY price DESC, created_at ASC")
	default:
		query.WriteString(" ORDER BY created_at ASC")
	}

	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
		args = append(args, filter.Limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgRoomRepository.List query: %w", err)
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Title, &room.Price, &room.Location[0], &room.Location[1], &room.UserID); err != nil {
			return nil, 0, fmt.Errorf("pgRoomRepository.List scan: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgRoomRepository.List rows.Err: %w", err)
	}

	summaries := make([]model.RoomSummary, 0, len(rooms))
	for i := range rooms {
		photos, err := r.photosByRoomID(ctx, rooms[i].ID)
		if err != nil {
			return nil, 0, err
		}
		rooms[i].Photos = photos
		summaries = append(summaries, rooms[i].Summary())
	}
	return summaries, total, nil
}

func (r *pgRoomRepository) ListByUser(ctx context.Context, userID string) ([]model.Room, error) {
	query := `SELECT id, title, description, price, lat, lng, user_id, created_at, updated_at
	          FROM rooms WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgRoomRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(
			&room.ID, &room.Title, &room.Description, &room.Price,
			&room.Location[0], &room.Location[1], &room.UserID,
			&room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgRoomRepository.ListByUser scan: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRoomRepository.ListByUser rows.Err: %w", err)
	}

	for i := range rooms {
		photos, err := r.photosByRoomID(ctx, rooms[i].ID)
		if err != nil {
			return nil, err
		}
		rooms[i].Photos = photos
	}
	return rooms, nil
}

func (r *pgRoomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `UPDATE rooms SET title = $1, description = $2, price = $3, lat = $4, lng = $5,
	                 updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query,
		room.Title, room.Description, room.Price,
		room.Location[0], room.Location[1], room.ID,
	)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the room and its photo rows in one transaction, so a
// half-deleted listing is never observable.
func (r *pgRoomRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Delete begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM room_photos WHERE room_id = $1`, id); err != nil {
		return fmt.Errorf("pgRoomRepository.Delete photos: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Delete room: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgRoomRepository.Delete commit: %w", err)
	}
	return nil
}

// AddPhoto appends the photo after the room's highest occupied position.
// Removals leave gaps, so the next position is taken from MAX(position),
// never from the row count; the unique (room_id, position) constraint
// rejects the loser of a concurrent append.
func (r *pgRoomRepository) AddPhoto(ctx context.Context, roomID string, photo model.Photo) error {
	query := `INSERT INTO room_photos (external_id, room_id, url, position)
	          SELECT $1, $2, $3, COALESCE(MAX(position), 0) + 1
	          FROM room_photos WHERE room_id = $2`
	_, err := r.db.ExecContext(ctx, query, photo.ExternalID, roomID, photo.URL)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.AddPhoto: %w", err)
	}
	return nil
}

func (r *pgRoomRepository) RemovePhoto(ctx context.Context, roomID, externalID string) error {
	query := `DELETE FROM room_photos WHERE room_id = $1 AND external_id = $2`
	res, err := r.db.ExecContext(ctx, query, roomID, externalID)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.RemovePhoto: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgRoomRepository) photosByRoomID(ctx context.Context, roomID string) ([]model.Photo, error) {
	query := `SELECT url, external_id FROM room_photos WHERE room_id = $1 ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("pgRoomRepository.photosByRoomID query: %w", err)
	}
	defer rows.Close()

	photos := []model.Photo{}
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.URL, &p.ExternalID); err != nil {
			return nil, fmt.Errorf("pgRoomRepository.photosByRoomID scan: %w", err)
		}
		photos = append(photos, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRoomRepository.photosByRoomID rows.Err: %w", err)
	}
	return photos, nil
}
