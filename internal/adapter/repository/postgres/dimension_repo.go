package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
)

const queryListDimensions = `
	SELECT code, required, active, allowed_values
	FROM dimension_definitions
	WHERE company_id = $1
	ORDER BY code`

// DimensionRepository implements usecase.DimensionReader.
type DimensionRepository struct {
	db querier
}

// NewDimensionRepository creates a new DimensionRepository.
func NewDimensionRepository(pool *pgxpool.Pool) *DimensionRepository {
	return &DimensionRepository{db: pool}
}

// ListDimensions returns the dimension definitions of a company.
func (r *DimensionRepository) ListDimensions(ctx context.Context, companyID string) ([]domain.DimensionDefinition, error) {
	rows, err := r.db.Query(ctx, queryListDimensions, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := []domain.DimensionDefinition{}
	for rows.Next() {
		var d domain.DimensionDefinition
		if err := rows.Scan(&d.Code, &d.Required, &d.Active, &d.AllowedValues); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}

	return defs, rows.Err()
}
