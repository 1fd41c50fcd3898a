package repository

import (
	"context"
	"strings"

	"storefront/models"
)

func (s *MemoryStore) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return detached(p), nil
}

func (s *MemoryStore) ListProducts(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	return sortedByID(s.data.products, func(p *models.Product) bool {
		return matchesProduct(p, filter, search)
	}), nil
}

// matchesProduct applies every non-empty criterion of f. search must already
// be lower-cased.
func matchesProduct(p *models.Product, f models.ProductFilter, search string) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.SubCategory != "" && p.SubCategory != f.SubCategory {
		return false
	}
	if f.Featured && !p.IsFeatured {
		return false
	}
	if f.NewItems && !p.IsNew {
		return false
	}
	if search != "" {
		for _, field := range []string{p.Name, p.Description, p.Category, p.SubCategory} {
			if strings.Contains(strings.ToLower(field), search) {
				return true
			}
		}
		return false
	}
	return true
}

func (s *MemoryStore) CreateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.next.product++
	p := detach(*product)
	p.ID = s.data.next.product
	p.CreatedAt = s.stamp()
	s.data.products[p.ID] = p
	return detached(p), nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&p)
	s.data.products[id] = p
	return detached(p), nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.products[id]; !ok {
		return false, nil
	}
	delete(s.data.products, id)
	return true, nil
}

func (s *MemoryStore) GetReview(_ context.Context, id uint) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return detached(r), nil
}

func (s *MemoryStore) ListReviewsByProduct(_ context.Context, productID uint) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedByID(s.data.reviews, func(r *models.Review) bool {
		return r.ProductID == productID
	}), nil
}

func (s *MemoryStore) CreateReview(_ context.Context, review *models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.next.review++
	r := detach(*review)
	r.ID = s.data.next.review
	r.CreatedAt = s.stamp()
	s.data.reviews[r.ID] = r
	return detached(r), nil
}

func (s *MemoryStore) DeleteReview(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.reviews[id]; !ok {
		return false, nil
	}
	delete(s.data.reviews, id)
	return true, nil
}
