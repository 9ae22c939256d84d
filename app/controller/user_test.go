package controller_test

import (
	"database/sql"
	"net/http"
	"testing"

	"ledger/app/controller"
	"ledger/app/repository"
	"ledger/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
)

const (
	findUserByIDQuery  = `(?s)SELECT id, email, password_hash, full_name, balance, status, created_at, updated_at\s+FROM users WHERE id = \?`
	updateProfileQuery = `(?s)UPDATE users SET\s+full_name = \?,\s+email = \?,\s+updated_at = NOW\(\)\s+WHERE id = \?`
	selectBalanceQuery = `SELECT balance FROM users WHERE id = \?`
)

func newUserController(db *sql.DB) *controller.UserController {
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	ledgerService := service.NewLedgerService(db, repository.NewTransferRepository(db), userRepo)
	return controller.NewUserController(userService, ledgerService)
}

func TestUserController_Me(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	ctrl := newUserController(db)
	e := echo.New()

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("user-1").
		WillReturnRows(userRow("user-1", "user@example.com", "hash"))

	req, rec := newJSONRequest(http.MethodGet, "/v1/users/me", "")
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := ctrl.Me(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	if body["email"] != "user@example.com" {
		t.Fatalf("expected email in response, got %v", body)
	}
	if _, present := body["password_hash"]; present {
		t.Fatalf("password hash must never leave the service, got %v", body)
	}
}

func TestUserController_Me_NotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	ctrl := newUserController(db)
	e := echo.New()

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	req, rec := newJSONRequest(http.MethodGet, "/v1/users/me", "")
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "ghost")

	if err := ctrl.Me(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserController_Update(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	ctrl := newUserController(db)
	e := echo.New()

	mock.ExpectExec(updateProfileQuery).
		WithArgs(sql.NullString{String: "New Name", Valid: true}, "new@example.com", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, rec := newJSONRequest(http.MethodPut, "/v1/users/update",
		`{"user_id":"user-1","name":"New Name","email":"new@example.com"}`)
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := ctrl.Update(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserController_Update_NotOwner(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	ctrl := newUserController(db)
	e := echo.New()

	req, rec := newJSONRequest(http.MethodPut, "/v1/users/update",
		`{"user_id":"user-2","name":"New Name","email":"new@example.com"}`)
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := ctrl.Update(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserController_Deposit(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	ctrl := newUserController(db)
	e := echo.New()

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("user-1").
		WillReturnRows(userRow("user-1", "user@example.com", "hash"))
	mock.ExpectBegin()
	mock.ExpectExec(creditQuery).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectBalanceQuery).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("150.00"))
	mock.ExpectCommit()

	req, rec := newJSONRequest(http.MethodPost, "/v1/users/deposit",
		`{"email":"user@example.com","amount":"150"}`)
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := ctrl.Deposit(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeJSON(t, rec); body["balance"] != "150" {
		t.Fatalf("expected balance 150, got %v", body)
	}
}

func TestUserController_Deposit_EmailMismatch(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	ctrl := newUserController(db)
	e := echo.New()

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("user-1").
		WillReturnRows(userRow("user-1", "user@example.com", "hash"))

	req, rec := newJSONRequest(http.MethodPost, "/v1/users/deposit",
		`{"email":"other@example.com","amount":"150"}`)
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := ctrl.Deposit(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
