package repository

import (
	"context"

	"github.com/spec-kit/condo-service/internal/domain"
)

// CondominioRepository manages condominio persistence.
type CondominioRepository interface {
	Create(ctx context.Context, condo *domain.Condominio) error
	Update(ctx context.Context, condo *domain.Condominio) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Condominio, error)
	List(ctx context.Context) ([]domain.Condominio, error)
}

type condominioRepository struct {
	db DBTX
}

// NewCondominioRepository builds the repository.
func NewCondominioRepository(db DBTX) CondominioRepository {
	return &condominioRepository{db: db}
}

func (r *condominioRepository) Create(ctx context.Context, condo *domain.Condominio) error {
	const query = `
        INSERT INTO condominios (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`
	return mapError(r.db.QueryRow(ctx, query, condo.Name).Scan(&condo.ID, &condo.CreatedAt, &condo.UpdatedAt))
}

func (r *condominioRepository) Update(ctx context.Context, condo *domain.Condominio) error {
	const query = `
        UPDATE condominios SET name=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	return mapError(r.db.QueryRow(ctx, query, condo.Name, condo.ID).Scan(&condo.UpdatedAt))
}

func (r *condominioRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM condominios WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *condominioRepository) GetByID(ctx context.Context, id int64) (*domain.Condominio, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM condominios WHERE id=$1`
	var condo domain.Condominio
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&condo.ID,
		&condo.Name,
		&condo.CreatedAt,
		&condo.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &condo, nil
}

func (r *condominioRepository) List(ctx context.Context) ([]domain.Condominio, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM condominios ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Condominio, 0)
	for rows.Next() {
		var condo domain.Condominio
		if err := rows.Scan(&condo.ID, &condo.Name, &condo.CreatedAt, &condo.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, condo)
	}
	return result, rows.Err()
}
