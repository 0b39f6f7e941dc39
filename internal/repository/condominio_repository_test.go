package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/condo-service/internal/domain"
)

func newCondoRepoWithMock(t *testing.T) (CondominioRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewCondominioRepository(mock), mock
}

func TestCondominioRepositoryCreateAndGet(t *testing.T) {
	repo, mock := newCondoRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO condominios (name)")).
		WithArgs("Residencial Aurora").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM condominios WHERE id=$1")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(int64(5), "Residencial Aurora", now, now))

	condo := &domain.Condominio{Name: "Residencial Aurora"}
	require.NoError(t, repo.Create(context.Background(), condo))
	assert.Equal(t, int64(5), condo.ID)

	got, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Residencial Aurora", got.Name)
}

func TestCondominioRepositoryUpdateMissing(t *testing.T) {
	repo, mock := newCondoRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE condominios SET name=$1")).
		WithArgs("Novo", int64(8)).
		WillReturnError(pgx.ErrNoRows)

	err := repo.Update(context.Background(), &domain.Condominio{ID: 8, Name: "Novo"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCondominioRepositoryListAndDelete(t *testing.T) {
	repo, mock := newCondoRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM condominios ORDER BY id")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(int64(1), "A", now, now).
			AddRow(int64(2), "B", now, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM condominios WHERE id=$1")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	require.NoError(t, repo.Delete(context.Background(), 2))
}
