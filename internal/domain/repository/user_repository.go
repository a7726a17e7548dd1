package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stayhub/internal/common"
	"stayhub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByToken(ctx context.Context, token string) (*model.User, error)
	UpdateAccount(ctx context.Context, user *model.User) error
	UpdateCredentials(ctx context.Context, id, salt, hash, token string) error
	UpdatePhoto(ctx context.Context, id string, photo *model.Photo) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, name, firstname, description, photo_url, photo_id, token, salt, hash, created_at, updated_at`

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, name, firstname, description, token, salt, hash)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Account.Username, user.Account.Email, user.Account.Name,
		user.Account.FirstName, user.Account.Description, user.Token, user.Salt, user.Hash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *pgUserRepository) FindByToken(ctx context.Context, token string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE token = $1`, token)
}

func (r *pgUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	var photoURL, photoID sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Account.Username, &user.Account.Email, &user.Account.Name,
		&user.Account.FirstName, &user.Account.Description, &photoURL, &photoID,
		&user.Token, &user.Salt, &user.Hash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findOne: %w", err)
	}
	if photoURL.Valid && photoID.Valid {
		user.Account.Photo = &model.Photo{URL: photoURL.String, ExternalID: photoID.String}
	}

	rooms, err := r.roomIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Rooms = rooms
	return user, nil
}

// roomIDs returns the ids of the rooms owned by a user in the order they
// were published. The owner's room list is derived from rooms.user_id, so
// it cannot drift from the room rows themselves.
func (r *pgUserRepository) roomIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM rooms WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.roomIDs query: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgUserRepository.roomIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.roomIDs rows.Err: %w", err)
	}
	return ids, nil
}

func (r *pgUserRepository) UpdateAccount(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET username = $1, email = $2, name = $3, firstname = $4,
	                 description = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query,
		user.Account.Username, user.Account.Email, user.Account.Name,
		user.Account.FirstName, user.Account.Description, user.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("username or email already taken: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.UpdateAccount: %w", err)
	}
	return nil
}

func (r *pgUserRepository) UpdateCredentials(ctx context.Context, id, salt, hash, token string) error {
	query := `UPDATE users SET salt = $1, hash = $2, token = $3, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, salt, hash, token, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateCredentials: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) UpdatePhoto(ctx context.Context, id string, photo *model.Photo) error {
	var url, externalID sql.NullString
	if photo != nil {
		url = sql.NullString{String: photo.URL, Valid: true}
		externalID = sql.NullString{String: photo.ExternalID, Valid: true}
	}
	query := `UPDATE users SET photo_url = $1, photo_id = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, url, externalID, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdatePhoto: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
