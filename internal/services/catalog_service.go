package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"dinepos/internal/caching"
	"dinepos/internal/models"
	"dinepos/internal/repositories"
)

// ImageBucket is the object storage bucket holding menu item photos.
const ImageBucket = "menu-images"

const (
	menuCacheTTL     = 5 * time.Minute
	imageURLLifetime = 15 * time.Minute
)

// CatalogService is the menu surface: list/add/delete items, list
// categories, and attach item images.
type CatalogService interface {
	ListItems(ctx context.Context) ([]*models.MenuItem, error)
	GetItem(ctx context.Context, id int64) (*models.MenuItem, error)
	AddItem(ctx context.Context, item *models.MenuItem) error
	DeleteItem(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	AttachImage(ctx context.Context, itemID int64, reader io.Reader, size int64, contentType string) error
	ImageURL(ctx context.Context, itemID int64) (string, error)
	RefreshMenuCache(ctx context.Context) error
}

type catalogService struct {
	menuRepo     repositories.MenuItemRepository
	categoryRepo repositories.CategoryRepository
	minioSvc     MinioService
	cacheSvc     caching.CacheService
}

func NewCatalogService(menuRepo repositories.MenuItemRepository, categoryRepo repositories.CategoryRepository,
	minioSvc MinioService, cacheSvc caching.CacheService) CatalogService {
	return &catalogService{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
		minioSvc:     minioSvc,
		cacheSvc:     cacheSvc,
	}
}

// ListItems serves from the cache when it can. Cache failures are logged and
// the database answers instead.
func (s *catalogService) ListItems(ctx context.Context) ([]*models.MenuItem, error) {
	cached, err := s.cacheSvc.GetMenu(ctx)
	if err != nil {
		log.Printf("WARN: menu cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetMenu(ctx, items, menuCacheTTL); err != nil {
		log.Printf("WARN: menu cache write failed: %v", err)
	}
	return items, nil
}

func (s *catalogService) GetItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(ctx, id)
}

func (s *catalogService) AddItem(ctx context.Context, item *models.MenuItem) error {
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return err
	}
	if err := s.cacheSvc.InvalidateMenu(ctx); err != nil {
		log.Printf("WARN: menu cache invalidation failed: %v", err)
	}
	return nil
}

// DeleteItem removes the item and its stored photo. A missing id is not an
// error; existing order lines keep referencing the deleted item.
func (s *catalogService) DeleteItem(ctx context.Context, id int64) error {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}
	if item != nil && item.ImageObject != nil {
		if err := s.minioSvc.DeleteImage(ctx, ImageBucket, *item.ImageObject); err != nil {
			log.Printf("WARN: menu image cleanup failed for item %d: %v", id, err)
		}
	}
	if err := s.cacheSvc.InvalidateMenu(ctx); err != nil {
		log.Printf("WARN: menu cache invalidation failed: %v", err)
	}
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) AttachImage(ctx context.Context, itemID int64, reader io.Reader, size int64, contentType string) error {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("menu item %d not found", itemID)
	}

	objectName := fmt.Sprintf("items/%d", itemID)
	if err := s.minioSvc.UploadImage(ctx, ImageBucket, objectName, reader, size, contentType); err != nil {
		return fmt.Errorf("upload menu image: %w", err)
	}
	return s.menuRepo.SetImageObject(ctx, itemID, objectName)
}

func (s *catalogService) ImageURL(ctx context.Context, itemID int64) (string, error) {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return "", err
	}
	if item == nil || item.ImageObject == nil {
		return "", nil
	}
	return s.minioSvc.GetPresignedURL(ctx, ImageBucket, *item.ImageObject, imageURLLifetime)
}

// RefreshMenuCache re-reads the menu and rewrites the cache entry. Run by
// the background scheduler so busy shifts mostly hit Redis.
func (s *catalogService) RefreshMenuCache(ctx context.Context) error {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return err
	}
	return s.cacheSvc.SetMenu(ctx, items, menuCacheTTL)
}
