package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/catalog"
	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
)

// CatalogService manages the item bank
type CatalogService struct {
	itemRepo     repository.ItemRepo
	catalogCache cache.CatalogCache
	logger       *zap.Logger
	now          func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(itemRepo repository.ItemRepo, catalogCache cache.CatalogCache, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		itemRepo:     itemRepo,
		catalogCache: catalogCache,
		logger:       logger,
		now:          time.Now,
	}
}

// List returns items, optionally restricted to one construct
func (s *CatalogService) List(ctx context.Context, construct model.Construct) ([]model.Item, error) {
	if construct != "" {
		return s.itemRepo.GetByConstruct(ctx, construct)
	}
	return s.itemRepo.GetAll(ctx)
}

// Get returns an item by ID
func (s *CatalogService) Get(ctx context.Context, itemID string) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Create adds a new item
func (s *CatalogService) Create(ctx context.Context, item model.Item) (*model.Item, error) {
	if err := catalog.ValidateItem(item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	existing, err := s.itemRepo.GetByID(ctx, item.ItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrItemExists
	}

	now := s.now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Version == 0 {
		item.Version = 1
	}
	if err := s.itemRepo.Upsert(ctx, &item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("item created", zap.String("itemId", item.ItemID), zap.String("construct", string(item.Construct)))
	return &item, nil
}

// Update replaces an existing item; the path ID wins over the body.
func (s *CatalogService) Update(ctx context.Context, itemID string, item model.Item) (*model.Item, error) {
	existing, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.ItemID = itemID
	if err := catalog.ValidateItem(item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now()
	item.Version = existing.Version + 1
	if err := s.itemRepo.Upsert(ctx, &item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("item updated", zap.String("itemId", itemID), zap.Int("version", item.Version))
	return &item, nil
}

// Delete removes an item
func (s *CatalogService) Delete(ctx context.Context, itemID string) error {
	deleted, err := s.itemRepo.Delete(ctx, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrItemNotFound
	}
	s.invalidate(ctx)
	s.logger.Info("item deleted", zap.String("itemId", itemID))
	return nil
}

// Import validates and upserts a whole item bank, returning the count written
func (s *CatalogService) Import(ctx context.Context, items []model.Item) (int, error) {
	if err := catalog.Validate(items); err != nil {
		if errors.Is(err, catalog.ErrInvalidCatalog) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		return 0, err
	}
	now := s.now()
	for i := range items {
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		items[i].UpdatedAt = now
	}

	n, err := s.itemRepo.UpsertMany(ctx, items)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	s.logger.Info("catalog imported", zap.Int("items", n))
	return n, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.catalogCache == nil {
		return
	}
	if err := s.catalogCache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
