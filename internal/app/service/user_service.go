package service

import (
	"context"
	"errors"
	"fmt"

	"stayhub/internal/common"
	"stayhub/internal/common/security"
	"stayhub/internal/domain/model"
	"stayhub/internal/domain/repository"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	FirstName   string `json:"firstname"`
	Description string `json:"description"`
	Password    string `json:"password"`
}

type SignUpResponse struct {
	ID      string        `json:"id"`
	Token   string        `json:"token"`
	Account model.Account `json:"account"`
}

type LogInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogInResponse mirrors the flat profile shape of the sign-in endpoint.
type LogInResponse struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	FirstName   string `json:"firstname"`
	Description string `json:"description"`
}

func (s *UserService) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	if req.Email == "" || req.Username == "" || req.Name == "" ||
		req.FirstName == "" || req.Description == "" || req.Password == "" {
		return nil, common.Errorf("missing parameters: %w", common.ErrBadRequest)
	}

	// Pre-checks give specific conflict messages; the unique constraints on
	// users.email and users.username remain the backstop against races.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.Errorf("there is already an account with this email: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, common.Errorf("this username is not available: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	salt, err := security.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to derive salt: %w", err)
	}
	token, err := security.NewToken()
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	user := &model.User{
		ID: uuid.NewString(),
		Account: model.Account{
			Email:       req.Email,
			Username:    req.Username,
			Name:        req.Name,
			FirstName:   req.FirstName,
			Description: req.Description,
		},
		Rooms: []string{},
		Token: token,
		Salt:  salt,
		Hash:  security.HashPassword(req.Password, salt),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &SignUpResponse{ID: user.ID, Token: user.Token, Account: user.Account}, nil
}

func (s *UserService) LogIn(ctx context.Context, req LogInRequest) (*LogInResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("missing parameters: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same answer as a bad password, to avoid account probing.
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.Verify(req.Password, user.Salt, user.Hash) {
		return nil, common.ErrUnauthorized
	}

	return &LogInResponse{
		ID:          user.ID,
		Token:       user.Token,
		Email:       user.Account.Email,
		Username:    user.Account.Username,
		Name:        user.Account.Name,
		FirstName:   user.Account.FirstName,
		Description: user.Account.Description,
	}, nil
}

type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty"`
	Username    *string `json:"username,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (s *UserService) UpdateProfile(ctx context.Context, caller *model.User, req UpdateProfileRequest) (*model.User, error) {
	if req.Email == nil && req.Username == nil && req.Name == nil && req.Description == nil {
		return nil, common.Errorf("missing parameters: %w", common.ErrBadRequest)
	}

	if req.Email != nil && *req.Email != caller.Account.Email {
		if other, err := s.userRepo.FindByEmail(ctx, *req.Email); err == nil && other.ID != caller.ID {
			return nil, common.Errorf("there is already an account with this email: %w", common.ErrConflict)
		} else if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("checking email: %w", err)
		}
		caller.Account.Email = *req.Email
	}
	if req.Username != nil && *req.Username != caller.Account.Username {
		if other, err := s.userRepo.FindByUsername(ctx, *req.Username); err == nil && other.ID != caller.ID {
			return nil, common.Errorf("this username is not available: %w", common.ErrConflict)
		} else if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("checking username: %w", err)
		}
		caller.Account.Username = *req.Username
	}
	if req.Name != nil {
		caller.Account.Name = *req.Name
	}
	if req.Description != nil {
		caller.Account.Description = *req.Description
	}

	if err := s.userRepo.UpdateAccount(ctx, caller); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return caller, nil
}

type UpdatePasswordRequest struct {
	PreviousPassword string `json:"previous_password"`
	NewPassword      string `json:"new_password"`
}

// UpdatePassword rotates salt, hash and token. Rotating the token is the
// only way an issued token is ever invalidated.
func (s *UserService) UpdatePassword(ctx context.Context, caller *model.User, req UpdatePasswordRequest) error {
	if req.PreviousPassword == "" || req.NewPassword == "" {
		return common.Errorf("missing parameters: %w", common.ErrBadRequest)
	}
	if !security.Verify(req.PreviousPassword, caller.Salt, caller.Hash) {
		return common.ErrUnauthorized
	}
	if security.HashPassword(req.NewPassword, caller.Salt) == caller.Hash {
		return common.Errorf("new password must be different from the previous one: %w", common.ErrBadRequest)
	}

	salt, err := security.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to derive salt: %w", err)
	}
	token, err := security.NewToken()
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	hash := security.HashPassword(req.NewPassword, salt)

	if err := s.userRepo.UpdateCredentials(ctx, caller.ID, salt, hash, token); err != nil {
		return fmt.Errorf("failed to update credentials: %w", err)
	}
	return nil
}

// ProfileResponse is the public view of a user: account fields plus the
// ids of the rooms they own, never credential material.
type ProfileResponse struct {
	ID      string        `json:"id"`
	Account model.Account `json:"account"`
	Rooms   []string      `json:"rooms"`
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*ProfileResponse, error) {
	if id == "" {
		return nil, common.Errorf("missing id: %w", common.ErrBadRequest)
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{ID: user.ID, Account: user.Account, Rooms: user.Rooms}, nil
}
