package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo historial de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

const stockMoveColumns = `id, reference, product_id, from_location_id, to_location_id, quantity, move_type, status,
	user_id, document_type, document_id, created_at`

func scanStockMove(row pgxScanner) (*entity.StockMove, error) {
	var m entity.StockMove
	var from, to *string
	var moveType, docType string
	if err := row.Scan(&m.ID, &m.Reference, &m.ProductID, &from, &to, &m.Quantity, &moveType, &m.Status,
		&m.UserID, &docType, &m.DocumentID, &m.CreatedAt); err != nil {
		return nil, err
	}
	if from != nil {
		m.FromLocationID = *from
	}
	if to != nil {
		m.ToLocationID = *to
	}
	m.MoveType = entity.MoveType(moveType)
	m.DocumentType = entity.DocumentType(docType)
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create registra un movimiento.
func (r *StockMoveRepo) Create(ctx context.Context, m *entity.StockMove) error {
	query := `
		INSERT INTO stock_moves (` + stockMoveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Reference, m.ProductID, nullable(m.FromLocationID), nullable(m.ToLocationID),
		m.Quantity, string(m.MoveType), m.Status, m.UserID, string(m.DocumentType), m.DocumentID, m.CreatedAt,
	)
	if err != nil {
		return writeErr(err, "create stock move", "movimiento "+m.ID)
	}
	return nil
}

// List lista movimientos filtrados, más recientes primero.
func (r *StockMoveRepo) List(ctx context.Context, f repository.MoveFilter) ([]*entity.StockMove, error) {
	query := `SELECT ` + stockMoveColumns + ` FROM stock_moves WHERE true`
	args := []any{}
	pos := 1
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.LocationID != "" {
		query += fmt.Sprintf(" AND (from_location_id = $%d OR to_location_id = $%d)", pos, pos)
		args = append(args, f.LocationID)
		pos++
	}
	if f.MoveType != "" {
		query += fmt.Sprintf(" AND move_type = $%d", pos)
		args = append(args, string(f.MoveType))
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d", pos)
	args = append(args, f.Limit)

	return r.query(ctx, query, args...)
}

// ListByDocument lista los movimientos generados por un documento.
func (r *StockMoveRepo) ListByDocument(ctx context.Context, docType entity.DocumentType, documentID string) ([]*entity.StockMove, error) {
	query := `SELECT ` + stockMoveColumns + ` FROM stock_moves WHERE document_type = $1 AND document_id = $2 ORDER BY created_at`
	return r.query(ctx, query, string(docType), documentID)
}

func (r *StockMoveRepo) query(ctx context.Context, query string, args ...any) ([]*entity.StockMove, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		m, err := scanStockMove(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
