package service

import (
	"context"
	"testing"

	"skill-matrix/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateCategories(t *testing.T) {
	cases := []struct {
		name       string
		categories []model.CategoryInput
		wantErr    bool
	}{
		{"empty", nil, true},
		{"no primary", []model.CategoryInput{{CategoryID: 1}, {CategoryID: 2}}, true},
		{"two primaries", []model.CategoryInput{{CategoryID: 1, IsPrimary: true}, {CategoryID: 2, IsPrimary: true}}, true},
		{"one primary", []model.CategoryInput{{CategoryID: 1, IsPrimary: true}, {CategoryID: 2}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateCategories(tc.categories)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "email", "password_hash", "role_id"}).
			AddRow(7, "alice@corp.test", string(hash), 1))

	_, err = svc.Login(context.Background(), "alice@corp.test", "wrong")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectQuery("SELECT .* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id"}))

	_, err := svc.Login(context.Background(), "ghost@corp.test", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogin_Success(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "employee_name", "email", "password_hash", "role_id", "designation_id"}).
			AddRow(7, "Alice", "alice@corp.test", string(hash), 1, 2))
	mock.ExpectQuery("SELECT .* FROM `roles`").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "role_name"}).AddRow(1, "Employee"))
	mock.ExpectQuery("SELECT .* FROM `designations`").
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "designation_name"}).AddRow(2, "Software Engineer"))

	user, err := svc.Login(context.Background(), "alice@corp.test", "right")
	require.NoError(t, err)
	assert.Equal(t, 7, user.EmployeeID)
	assert.Equal(t, "Employee", user.Role)
	assert.Equal(t, "Software Engineer", user.DesignationName)
}

func TestRegister_RejectsBadPrimaryCount(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		EmployeeName:  "Alice",
		Email:         "alice@corp.test",
		Password:      "secret",
		RoleID:        1,
		DesignationID: 2,
		Categories: []model.CategoryInput{
			{CategoryID: 1, IsPrimary: true},
			{CategoryID: 2, IsPrimary: true},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db)

	mock.ExpectQuery("SELECT count.* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		EmployeeName:  "Alice",
		Email:         "alice@corp.test",
		Password:      "secret",
		RoleID:        1,
		DesignationID: 2,
		Categories:    []model.CategoryInput{{CategoryID: 1, IsPrimary: true}},
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestEmployees_ForbiddenForPlainEmployee(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAuthService(db)

	_, err := svc.Employees(context.Background(), model.Caller{EmployeeID: 7, Role: model.RoleEmployee})
	assert.ErrorIs(t, err, ErrForbidden)
}
