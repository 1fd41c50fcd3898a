package services

import (
	"context"
	"strings"

	apperrors "storefront/common/errors"
	awspkg "storefront/pkg/aws"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

// ProductCache caches catalog listings. Implementations must not fail
// reads; a miss is reported as ok == false together with the key a fresh
// listing should be stored under.
type ProductCache interface {
	GetProducts(ctx context.Context, filter models.ProductFilter) (products []models.Product, key string, ok bool)
	SetProducts(key string, products []models.Product)
	Invalidate(ctx context.Context) error
}

type ProductService struct {
	store   repository.Store
	cache   ProductCache
	metrics Metrics
	logger  *zap.Logger
}

// NewProductService wires the catalog. cache may be nil.
func NewProductService(store repository.Store, cache ProductCache, metrics Metrics, logger *zap.Logger) *ProductService {
	return &ProductService{
		store:   store,
		cache:   cache,
		metrics: metricsOrNop(metrics),
		logger:  logger,
	}
}

// FilterFor reduces a query to the single criterion that applies. Category
// wins over subCategory, then featured, newItems and finally search.
func FilterFor(q models.ProductQuery) models.ProductFilter {
	switch {
	case q.Category != "":
		return models.ProductFilter{Category: q.Category}
	case q.SubCategory != "":
		return models.ProductFilter{SubCategory: q.SubCategory}
	case q.Featured == "true":
		return models.ProductFilter{Featured: true}
	case q.NewItems == "true":
		return models.ProductFilter{NewItems: true}
	case strings.TrimSpace(q.Search) != "":
		return models.ProductFilter{Search: strings.TrimSpace(q.Search)}
	}
	return models.ProductFilter{}
}

func (s *ProductService) List(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	filter := FilterFor(q)

	var key string
	if s.cache != nil {
		products, k, ok := s.cache.GetProducts(ctx, filter)
		if ok {
			s.record(awspkg.MetricCatalogCacheHits)
			return products, nil
		}
		key = k
		s.record(awspkg.MetricCatalogCacheMisses)
	}

	products, err := s.store.ListProducts(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if s.cache != nil {
		s.cache.SetProducts(key, products)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Product not found")
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product, err := s.store.CreateProduct(ctx, req.Product())
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidate(ctx)
	s.record(awspkg.MetricProductsCreated)
	s.logger.Info("product created", zap.Uint("product_id", product.ID), zap.String("category", product.Category))
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, req models.UpdateProductRequest) (*models.Product, error) {
	patch := req.Patch()
	if patch.Empty() {
		return s.Get(ctx, id)
	}

	product, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, notFoundAs(err, "Product not found")
	}

	s.invalidate(ctx)
	s.logger.Info("product updated", zap.Uint("product_id", id))
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	removed, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !removed {
		return apperrors.NotFound("Product not found")
	}

	s.invalidate(ctx)
	s.logger.Info("product deleted", zap.Uint("product_id", id))
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *ProductService) record(metric string) {
	emit(s.logger, func(ctx context.Context) error {
		return s.metrics.RecordCount(ctx, metric, nil)
	})
}
