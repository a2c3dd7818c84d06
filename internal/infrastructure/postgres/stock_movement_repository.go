package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, company_id, product_id, variation_sku, type, quantity,
	previous_stock, new_stock, reason, reference_id, notes, performed_by, created_at`

// StockMovementRepo implementación de StockMovementRepository sobre
// PostgreSQL. La tabla es append-only: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento en el libro.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.ProductID, m.VariationSKU, m.Type, m.Quantity,
		m.PreviousStock, m.NewStock, m.Reason, nullIfEmpty(m.ReferenceID),
		nullIfEmpty(m.Notes), m.PerformedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List historial de movimientos visible para el scope, más recientes primero.
func (r *StockMovementRepo) List(scope access.Scope, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !scope.All() {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, scope.CompanyID())
	}
	if f.ProductID != "" {
		n++
		where += fmt.Sprintf(` AND product_id = $%d`, n)
		args = append(args, f.ProductID)
	}
	if f.Type != "" {
		n++
		where += fmt.Sprintf(` AND type = $%d`, n)
		args = append(args, f.Type)
	}
	if f.StartDate != "" {
		n++
		where += fmt.Sprintf(` AND created_at >= $%d::timestamptz`, n)
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		n++
		where += fmt.Sprintf(` AND created_at <= $%d::timestamptz`, n)
		args = append(args, f.EndDate)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM stock_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `SELECT ` + movementColumns + ` FROM stock_movements` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var referenceID, notes *string
		err := rows.Scan(
			&m.ID, &m.CompanyID, &m.ProductID, &m.VariationSKU, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reason, &referenceID,
			&notes, &m.PerformedBy, &m.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		if referenceID != nil {
			m.ReferenceID = *referenceID
		}
		if notes != nil {
			m.Notes = *notes
		}
		movements = append(movements, &m)
	}
	return movements, total, rows.Err()
}
