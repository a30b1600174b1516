package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"exhibit/storefront/internal/domain"
)

type QuotationRepository interface {
	SaveQuotation(ctx context.Context, q *domain.QuotationRequest) error
}

type quotationRepository struct {
	db *pgxpool.Pool
}

func NewQuotationRepository(db *pgxpool.Pool) QuotationRepository {
	return &quotationRepository{
		db: db,
	}
}

// EnsureSchema creates the quotation log table if it does not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	query := `
	CREATE TABLE IF NOT EXISTS quotation_requests (
		id TEXT PRIMARY KEY,
		company JSONB NOT NULL,
		items JSONB NOT NULL,
		total_items INT NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create quotation_requests table: %w", err)
	}
	return nil
}

func (r *quotationRepository) SaveQuotation(ctx context.Context, q *domain.QuotationRequest) error {
	query := `
	INSERT INTO quotation_requests (id, company, items, total_items, total_price, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id)
	DO UPDATE SET company = $2, items = $3, total_items = $4, total_price = $5`
	_, err := r.db.Exec(ctx, query, q.ID, q.Company, q.Items, q.TotalItems, q.TotalPrice, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save quotation request: %w", err)
	}

	return nil
}
