package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación en memoria de DocumentRepository.
type DocumentRepo struct{ b *binding }

// Create inserta el documento; referencia repetida → ErrDuplicate.
func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	return r.b.write("documents.create", func(st *state) error {
		for _, existing := range st.documents {
			if existing.Reference == doc.Reference {
				return fmt.Errorf("referencia %s: %w", doc.Reference, domain.ErrDuplicate)
			}
		}
		st.documents[doc.ID] = doc.Clone()
		return nil
	})
}

func (r *DocumentRepo) get(docType entity.DocumentType, id string) (*entity.Document, error) {
	var out *entity.Document
	r.b.read(func(st *state) {
		if d, ok := st.documents[id]; ok && d.Type == docType {
			out = d.Clone()
		}
	})
	if out == nil {
		return nil, fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
	}
	return out, nil
}

// GetByID obtiene el documento con sus líneas.
func (r *DocumentRepo) GetByID(_ context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	return r.get(docType, id)
}

// GetForUpdate equivale a GetByID: la transacción ya tiene acceso exclusivo al estado.
func (r *DocumentRepo) GetForUpdate(_ context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	return r.get(docType, id)
}

// Update reemplaza el documento.
func (r *DocumentRepo) Update(_ context.Context, doc *entity.Document) error {
	return r.b.write("documents.update", func(st *state) error {
		if _, ok := st.documents[doc.ID]; !ok {
			return fmt.Errorf("documento %s: %w", doc.ID, domain.ErrNotFound)
		}
		st.documents[doc.ID] = doc.Clone()
		return nil
	})
}

// List filtra documentos del tipo, más recientes primero.
func (r *DocumentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	var out []*entity.Document
	r.b.read(func(st *state) {
		for _, d := range st.documents {
			if d.Type != f.Type {
				continue
			}
			if f.Status != "" && d.Status != f.Status {
				continue
			}
			if f.LocationID != "" && d.LocationID != f.LocationID &&
				d.FromLocationID != f.LocationID && d.ToLocationID != f.LocationID {
				continue
			}
			out = append(out, d.Clone())
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Reference > out[j].Reference
	})
	return page(out, f.Offset, f.Limit), len(out), nil
}
