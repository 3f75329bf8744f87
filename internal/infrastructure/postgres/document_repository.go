package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos de operación y sus líneas sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, type, reference, status, location_id, from_location_id, to_location_id,
	partner_name, notes, reason, user_id, scheduled_date, validated_at, created_at, updated_at`

const lineColumns = `id, document_id, line_no, product_id, quantity, done_qty, system_qty, counted_qty, difference`

func scanDocument(row pgxScanner) (*entity.Document, error) {
	var d entity.Document
	var docType, status string
	var loc, from, to *string
	if err := row.Scan(&d.ID, &docType, &d.Reference, &status, &loc, &from, &to,
		&d.PartnerName, &d.Notes, &d.Reason, &d.UserID, &d.ScheduledDate, &d.ValidatedAt,
		&d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Type = entity.DocumentType(docType)
	d.Status = entity.DocumentStatus(status)
	if loc != nil {
		d.LocationID = *loc
	}
	if from != nil {
		d.FromLocationID = *from
	}
	if to != nil {
		d.ToLocationID = *to
	}
	return &d, nil
}

// Create inserta el documento y sus líneas. Debe ejecutarse dentro de una transacción.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		d.ID, string(d.Type), d.Reference, string(d.Status),
		nullable(d.LocationID), nullable(d.FromLocationID), nullable(d.ToLocationID),
		d.PartnerName, d.Notes, d.Reason, d.UserID, d.ScheduledDate, d.ValidatedAt,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return writeErr(err, "create document", "referencia "+d.Reference)
	}

	lineQuery := `INSERT INTO document_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, l := range d.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, d.ID, l.LineNo, l.ProductID, l.Quantity, l.DoneQty, l.SystemQty, l.CountedQty, l.Difference,
		); err != nil {
			return writeErr(err, "create document line", "línea "+l.ID)
		}
	}
	return nil
}

func (r *DocumentRepo) get(ctx context.Context, query string, docType entity.DocumentType, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, id, string(docType)))
	if err != nil {
		return nil, notFound(err, "get document", "documento "+id)
	}
	lines, err := r.lines(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Lines = lines[d.ID]
	return d, nil
}

// GetByID obtiene el documento con sus líneas.
func (r *DocumentRepo) GetByID(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 AND type = $2`, docType, id)
}

// GetForUpdate obtiene el documento bloqueando su fila hasta el fin de la transacción.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 AND type = $2 FOR UPDATE`, docType, id)
}

// Update persiste estado y fechas del documento y los campos de ejecución de sus líneas.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE documents SET status = $2, validated_at = $3, updated_at = $4 WHERE id = $1`,
		d.ID, string(d.Status), d.ValidatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("documento %s: %w", d.ID, domain.ErrNotFound)
	}
	for _, l := range d.Lines {
		if _, err := r.q.Exec(ctx,
			`UPDATE document_lines SET done_qty = $2, system_qty = $3, difference = $4 WHERE id = $1`,
			l.ID, l.DoneQty, l.SystemQty, l.Difference,
		); err != nil {
			return fmt.Errorf("update document line: %w", err)
		}
	}
	return nil
}

// List lista documentos del tipo con filtros de estado y ubicación, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	where := ` WHERE type = $1`
	args := []any{string(f.Type)}
	pos := 2
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, string(f.Status))
		pos++
	}
	if f.LocationID != "" {
		where += fmt.Sprintf(" AND (location_id = $%d OR from_location_id = $%d OR to_location_id = $%d)", pos, pos, pos)
		args = append(args, f.LocationID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM documents`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := `SELECT ` + documentColumns + ` FROM documents` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, reference DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	var list []*entity.Document
	var ids []string
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	if len(ids) == 0 {
		return list, total, nil
	}

	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, d := range list {
		d.Lines = lines[d.ID]
	}
	return list, total, nil
}

// lines carga las líneas de varios documentos en una sola consulta.
func (r *DocumentRepo) lines(ctx context.Context, ids []string) (map[string][]entity.DocumentLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+lineColumns+` FROM document_lines WHERE document_id = ANY($1) ORDER BY document_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.DocumentLine, len(ids))
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.LineNo, &l.ProductID, &l.Quantity, &l.DoneQty,
			&l.SystemQty, &l.CountedQty, &l.Difference); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		out[l.DocumentID] = append(out[l.DocumentID], l)
	}
	return out, rows.Err()
}
