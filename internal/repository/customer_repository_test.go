package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-triage/internal/domain"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCustomerRepository_GetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewCustomerRepository(mock)
	now := time.Now()

	mock.ExpectQuery("FROM customers WHERE email").
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "created_at"}).
			AddRow(int64(7), "a@x.com", "A", now))

	customer, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), customer.ID)
	assert.Equal(t, "A", customer.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_GetByEmailNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCustomerRepository(mock)

	mock.ExpectQuery("FROM customers WHERE email").
		WithArgs("nobody@x.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerRepository_CreateIfAbsent(t *testing.T) {
	mock := newMock(t)
	repo := NewCustomerRepository(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs("a@x.com", "A").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	customer := &domain.Customer{Email: "a@x.com", Name: "A"}
	created, err := repo.CreateIfAbsent(context.Background(), customer)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(3), customer.ID)
	assert.Equal(t, now, customer.CreatedAt)
}

func TestCustomerRepository_CreateIfAbsentLostRace(t *testing.T) {
	for name, raceErr := range map[string]error{
		"on conflict returns no row": pgx.ErrNoRows,
		"unique violation":           &pgconn.PgError{Code: pgUniqueViolation},
	} {
		t.Run(name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewCustomerRepository(mock)

			mock.ExpectQuery("INSERT INTO customers").
				WithArgs("a@x.com", "A").
				WillReturnError(raceErr)

			created, err := repo.CreateIfAbsent(context.Background(), &domain.Customer{Email: "a@x.com", Name: "A"})
			require.NoError(t, err)
			assert.False(t, created)
		})
	}
}

func TestCustomerRepository_CreateIfAbsentStorageFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewCustomerRepository(mock)

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs("a@x.com", "A").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateIfAbsent(context.Background(), &domain.Customer{Email: "a@x.com", Name: "A"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageFailure))
}
