package products

import (
	"context"
)

// Service wraps catalog business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns catalog entries matching the filters, catalog order.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, error) {
	return s.repo.List(ctx, filters)
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new product.
func (s *Service) Create(ctx context.Context, form ProductForm) (Product, error) {
	p := productFromForm(form)
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	return p, nil
}

// Update overwrites an existing product.
func (s *Service) Update(ctx context.Context, id int64, form ProductForm) error {
	return s.repo.Update(ctx, id, productFromForm(form))
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Categories lists distinct category values for the product form.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func productFromForm(form ProductForm) Product {
	return Product{
		Name:        form.Name,
		Description: form.Description,
		Category:    form.Category,
		Price:       form.Price.Float64(),
		Stock:       form.Stock,
		ImageURL:    form.ImageURL,
	}
}
