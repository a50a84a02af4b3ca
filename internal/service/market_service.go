package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/cache"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

// Bounds for the index OHLCV window, in days
const (
	indexSeriesDays    = 30
	maxIndexSeriesDays = 365
)

// MarketService market reference reads with a redis cache in front. The
// cache is best effort: a cold or unavailable cache falls through to the
// database.
type MarketService interface {
	ListSectors(ctx context.Context) ([]*domain.SectorInfo, error)
	SectorDetail(ctx context.Context, sectorID int64) ([]*domain.SectorDetailRow, error)
	ListThemes(ctx context.Context) ([]*domain.ThemeInfo, error)
	ThemeDetail(ctx context.Context, themeID int64) ([]*domain.ThemeDetailRow, error)
	IndexSeries(ctx context.Context, indexID int64) (*domain.IndexSeries, error)
	AllIndexSeries(ctx context.Context, nDays int) ([]*domain.IndexSeries, error)
}

type marketService struct {
	marketRepo repository.MarketRepository
	cache      cache.Service
}

// NewMarketService creates a new MarketService
func NewMarketService(marketRepo repository.MarketRepository, cacheSvc cache.Service) MarketService {
	return &marketService{marketRepo: marketRepo, cache: cacheSvc}
}

func (s *marketService) ListSectors(ctx context.Context) ([]*domain.SectorInfo, error) {
	key := cache.PrefixSectors + "list"
	var cached []*domain.SectorInfo
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	sectors, err := s.marketRepo.ListSectors()
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, sectors, cache.TTLSectors)
	return sectors, nil
}

func (s *marketService) SectorDetail(ctx context.Context, sectorID int64) ([]*domain.SectorDetailRow, error) {
	rows, err := s.marketRepo.SectorDetail(sectorID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}
	return rows, nil
}

func (s *marketService) ListThemes(ctx context.Context) ([]*domain.ThemeInfo, error) {
	key := cache.PrefixThemes + "list"
	var cached []*domain.ThemeInfo
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	themes, err := s.marketRepo.ListThemes()
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, themes, cache.TTLThemes)
	return themes, nil
}

func (s *marketService) ThemeDetail(ctx context.Context, themeID int64) ([]*domain.ThemeDetailRow, error) {
	rows, err := s.marketRepo.ThemeDetail(themeID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}
	return rows, nil
}

func (s *marketService) IndexSeries(ctx context.Context, indexID int64) (*domain.IndexSeries, error) {
	since := time.Now().AddDate(0, 0, -indexSeriesDays)
	series, err := s.marketRepo.IndexSeries(indexID, since)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return series, nil
}

func (s *marketService) AllIndexSeries(ctx context.Context, nDays int) ([]*domain.IndexSeries, error) {
	if nDays <= 0 {
		nDays = indexSeriesDays
	}
	if nDays > maxIndexSeriesDays {
		return nil, common.ErrInvalidInput
	}

	key := fmt.Sprintf("%sall:%d", cache.PrefixIndex, nDays)
	var cached []*domain.IndexSeries
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	series, err := s.marketRepo.AllIndexSeries(nDays)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, series, cache.TTLIndex)
	return series, nil
}

func (s *marketService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil || !s.cache.IsAvailable() {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if err != cache.ErrMiss {
		logger.GetLogger().Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	return false
}

func (s *marketService) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		logger.GetLogger().Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
