package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"ledger/app/repository"
	"ledger/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

const updateProfileQuery = `(?s)UPDATE users SET\s+full_name = \?,\s+email = \?,\s+updated_at = NOW\(\)\s+WHERE id = \?`

func newUserService(db *sql.DB) *service.UserService {
	return service.NewUserService(repository.NewUserRepository(db))
}

func TestUserService_Profile(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	svc := newUserService(db)

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("user-1").
		WillReturnRows(userRow("user-1", "user@example.com", "hash"))

	user, err := svc.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("expected user@example.com, got %s", user.Email)
	}
}

func TestUserService_Profile_NotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	svc := newUserService(db)

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := svc.Profile(context.Background(), "ghost")
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	svc := newUserService(db)

	mock.ExpectExec(updateProfileQuery).
		WithArgs(sql.NullString{String: "New Name", Valid: true}, "new@example.com", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.UpdateProfile(context.Background(), "user-1", "user-1", "New Name", "new@example.com"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserService_UpdateProfile_NotOwner(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	svc := newUserService(db)

	err := svc.UpdateProfile(context.Background(), "user-1", "user-2", "New Name", "new@example.com")
	if !errors.Is(err, service.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
