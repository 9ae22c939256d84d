package service

import (
	"context"
	"database/sql"

	"ledger/app/entity"
	"ledger/app/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes the caller's display name and email. A caller may
// only update their own account.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID, fullName, email string) error {
	if callerID != targetID {
		return ErrNotOwner
	}
	return s.userRepo.UpdateProfile(ctx, callerID, nullString(fullName), email)
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
