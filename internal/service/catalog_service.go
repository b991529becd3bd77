package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/glowmart/storefront/internal/adapter/backend"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/repository"
)

// ErrStaleSearch marks a search response that came back after a newer query
// was issued for the same catalog; its result must be discarded, not rendered.
var ErrStaleSearch = errors.New("search result superseded by a newer query")

// ErrProductUnavailable rejects adding a product that is missing or not
// currently purchasable.
var ErrProductUnavailable = errors.New("product is not available for purchase")

const defaultProductCacheTTL = 5 * time.Minute

// CatalogBackend is the slice of the backend client the catalog needs.
type CatalogBackend interface {
	ListProducts(ctx context.Context, q backend.ProductQuery) (*backend.ProductPage, error)
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
}

type CatalogService interface {
	// GetProduct returns the product via the cache-aside product cache.
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	// GetPurchasableProduct is GetProduct plus the ACTIVE-status gate used by
	// add-to-cart.
	GetPurchasableProduct(ctx context.Context, productID string) (*entity.Product, error)
	Browse(ctx context.Context, q backend.ProductQuery) (*backend.ProductPage, error)
	// Search issues a sequenced catalog query; a response that was overtaken
	// by a newer Search call returns ErrStaleSearch.
	Search(ctx context.Context, q backend.ProductQuery) (*backend.ProductPage, error)
}

type catalogService struct {
	backend   CatalogBackend
	cache     repository.ProductCache
	cacheTTL  time.Duration
	log       logger.Logger
	searchSeq atomic.Uint64
}

func NewCatalogService(b CatalogBackend, cache repository.ProductCache, cacheTTL time.Duration, log logger.Logger) CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = defaultProductCacheTTL
	}
	return &catalogService{
		backend:  b,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	cached, cacheErr := s.cache.Get(ctx, productID)
	if cacheErr == nil && cached != nil {
		s.log.Debugf("Product %s found in cache", productID)
		return cached, nil
	}
	if cacheErr != nil && !errors.Is(cacheErr, repository.ErrNotFound) {
		s.log.Warnf("Error reading product %s from cache, fetching from backend: %v", productID, cacheErr)
	}

	product, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}
	if err := s.cache.Set(ctx, product, s.cacheTTL); err != nil {
		s.log.Warnf("Failed to cache product %s: %v", productID, err)
	}
	return product, nil
}

func (s *catalogService) GetPurchasableProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		s.log.Warnf("Product %s (%s) is not active, status: %s", product.Name, productID, product.Status)
		return nil, ErrProductUnavailable
	}
	return product, nil
}

func (s *catalogService) Browse(ctx context.Context, q backend.ProductQuery) (*backend.ProductPage, error) {
	page, err := s.backend.ListProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

func (s *catalogService) Search(ctx context.Context, q backend.ProductQuery) (*backend.ProductPage, error) {
	token := s.searchSeq.Add(1)

	page, err := s.backend.ListProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	// The user typed again before this response arrived; drop it.
	if token != s.searchSeq.Load() {
		s.log.Debugf("Dropping stale search result for query %q", q.Search)
		return nil, ErrStaleSearch
	}
	return page, nil
}
