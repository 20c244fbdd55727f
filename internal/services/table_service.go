package services

import (
	"context"
	"log"
	"time"

	"dinepos/internal/caching"
	"dinepos/internal/models"
	"dinepos/internal/repositories"
)

const tablesCacheTTL = 10 * time.Minute

// TableService lists the seatable tables. Read-only; the floor plan changes
// out of band.
type TableService interface {
	ListTables(ctx context.Context) ([]*models.Table, error)
}

type tableService struct {
	tableRepo repositories.TableRepository
	cacheSvc  caching.CacheService
}

func NewTableService(tableRepo repositories.TableRepository, cacheSvc caching.CacheService) TableService {
	return &tableService{
		tableRepo: tableRepo,
		cacheSvc:  cacheSvc,
	}
}

func (s *tableService) ListTables(ctx context.Context) ([]*models.Table, error) {
	cached, err := s.cacheSvc.GetTables(ctx)
	if err != nil {
		log.Printf("WARN: table cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetTables(ctx, tables, tablesCacheTTL); err != nil {
		log.Printf("WARN: table cache write failed: %v", err)
	}
	return tables, nil
}
