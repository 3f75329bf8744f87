package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.LocationRepository  = (*LocationRepo)(nil)
)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct{ b *binding }

// Create inserta el producto; SKU repetido → ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.b.write("products.create", func(st *state) error {
		for _, existing := range st.products {
			if existing.SKU == p.SKU {
				return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
			}
		}
		c := *p
		st.products[p.ID] = &c
		return nil
	})
}

// GetByID obtiene un producto (activo o no).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.b.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			c := *p
			out = &c
		}
	})
	if out == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return out, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.b.read(func(st *state) {
		for _, p := range st.products {
			if p.SKU == sku {
				c := *p
				out = &c
				return
			}
		}
	})
	if out == nil {
		return nil, fmt.Errorf("sku %s: %w", sku, domain.ErrNotFound)
	}
	return out, nil
}

// Update reemplaza el producto; SKU tomado por otro → ErrDuplicate.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.b.write("products.update", func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
		}
		for _, existing := range st.products {
			if existing.ID != p.ID && existing.SKU == p.SKU {
				return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
			}
		}
		c := *p
		st.products[p.ID] = &c
		return nil
	})
}

// List lista productos activos filtrados, ordenados por nombre, con el total sin paginar.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	search := strings.ToLower(f.Search)
	var all []*entity.Product
	r.b.read(func(st *state) {
		for _, p := range st.products {
			if !p.IsActive {
				continue
			}
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) {
				continue
			}
			c := *p
			all = append(all, &c)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].SKU < all[j].SKU
	})
	return page(all, f.Offset, f.Limit), len(all), nil
}

// ListActive devuelve todos los productos activos.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	out, _, err := r.List(ctx, repository.ProductFilter{})
	return out, err
}

// Deactivate hace la baja lógica.
func (r *ProductRepo) Deactivate(_ context.Context, id string) error {
	return r.b.write("products.deactivate", func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		c := *p
		c.IsActive = false
		c.UpdatedAt = r.b.now()
		st.products[id] = &c
		return nil
	})
}

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct{ b *binding }

// Categories devuelve el repositorio de categorías sobre el estado confirmado.
func (s *Store) Categories() *CategoryRepo {
	return &CategoryRepo{b: &binding{store: s}}
}

// Create inserta la categoría; nombre repetido → ErrDuplicate.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.b.write("categories.create", func(st *state) error {
		for _, existing := range st.categories {
			if existing.Name == c.Name {
				return fmt.Errorf("categoría %s: %w", c.Name, domain.ErrDuplicate)
			}
		}
		cp := *c
		st.categories[c.ID] = &cp
		return nil
	})
}

// GetByName obtiene una categoría por nombre.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.b.read(func(st *state) {
		for _, c := range st.categories {
			if c.Name == name {
				cp := *c
				out = &cp
				return
			}
		}
	})
	if out == nil {
		return nil, fmt.Errorf("categoría %s: %w", name, domain.ErrNotFound)
	}
	return out, nil
}

// ListWithProductCount lista categorías por nombre con sus productos activos.
func (r *CategoryRepo) ListWithProductCount(_ context.Context) ([]*entity.CategorySummary, error) {
	var out []*entity.CategorySummary
	r.b.read(func(st *state) {
		counts := make(map[string]int)
		for _, p := range st.products {
			if p.IsActive && p.Category != "" {
				counts[p.Category]++
			}
		}
		for _, c := range st.categories {
			out = append(out, &entity.CategorySummary{Category: *c, ProductCount: counts[c.Name]})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// WarehouseRepo implementación en memoria de WarehouseRepository.
type WarehouseRepo struct{ b *binding }

// Warehouses devuelve el repositorio de bodegas sobre el estado confirmado.
func (s *Store) Warehouses() *WarehouseRepo {
	return &WarehouseRepo{b: &binding{store: s}}
}

// Create inserta la bodega; código repetido → ErrDuplicate.
func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.b.write("warehouses.create", func(st *state) error {
		for _, existing := range st.warehouses {
			if existing.Code == w.Code {
				return fmt.Errorf("bodega %s: %w", w.Code, domain.ErrDuplicate)
			}
		}
		c := *w
		st.warehouses[w.ID] = &c
		return nil
	})
}

// GetByID obtiene una bodega.
func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.b.read(func(st *state) {
		if w, ok := st.warehouses[id]; ok {
			c := *w
			out = &c
		}
	})
	if out == nil {
		return nil, fmt.Errorf("bodega %s: %w", id, domain.ErrNotFound)
	}
	return out, nil
}

// GetByCode obtiene una bodega por código.
func (r *WarehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.b.read(func(st *state) {
		for _, w := range st.warehouses {
			if w.Code == code {
				c := *w
				out = &c
				return
			}
		}
	})
	if out == nil {
		return nil, fmt.Errorf("bodega %s: %w", code, domain.ErrNotFound)
	}
	return out, nil
}

// ListActive lista bodegas activas por nombre.
func (r *WarehouseRepo) ListActive(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	r.b.read(func(st *state) {
		for _, w := range st.warehouses {
			if w.IsActive {
				c := *w
				out = append(out, &c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LocationRepo implementación en memoria de LocationRepository.
type LocationRepo struct{ b *binding }

// Create inserta la ubicación; código repetido en la misma bodega → ErrDuplicate.
func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.b.write("locations.create", func(st *state) error {
		if _, ok := st.warehouses[l.WarehouseID]; !ok {
			return fmt.Errorf("bodega %s: %w", l.WarehouseID, domain.ErrNotFound)
		}
		for _, existing := range st.locations {
			if existing.WarehouseID == l.WarehouseID && existing.Code == l.Code {
				return fmt.Errorf("ubicación %s: %w", l.Code, domain.ErrDuplicate)
			}
		}
		c := *l
		st.locations[l.ID] = &c
		return nil
	})
}

// GetByID obtiene una ubicación.
func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	r.b.read(func(st *state) {
		if l, ok := st.locations[id]; ok {
			c := *l
			out = &c
		}
	})
	if out == nil {
		return nil, fmt.Errorf("ubicación %s: %w", id, domain.ErrNotFound)
	}
	return out, nil
}

// GetByWarehouseAndCode obtiene una ubicación por bodega y código.
func (r *LocationRepo) GetByWarehouseAndCode(_ context.Context, warehouseID, code string) (*entity.Location, error) {
	var out *entity.Location
	r.b.read(func(st *state) {
		for _, l := range st.locations {
			if l.WarehouseID == warehouseID && l.Code == code {
				c := *l
				out = &c
				return
			}
		}
	})
	if out == nil {
		return nil, fmt.Errorf("ubicación %s: %w", code, domain.ErrNotFound)
	}
	return out, nil
}

// ListActive lista ubicaciones activas, opcionalmente de una bodega.
func (r *LocationRepo) ListActive(_ context.Context, warehouseID string) ([]*entity.Location, error) {
	var out []*entity.Location
	r.b.read(func(st *state) {
		for _, l := range st.locations {
			if !l.IsActive || (warehouseID != "" && l.WarehouseID != warehouseID) {
				continue
			}
			c := *l
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
