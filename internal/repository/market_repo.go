package repository

import (
	"time"

	"github.com/stocknote/stocknote-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarketRepository read paths for the market reference tables plus the
// upserts the batch jobs use to refresh them
type MarketRepository interface {
	ListSectors() ([]*domain.SectorInfo, error)
	SectorDetail(sectorID int64) ([]*domain.SectorDetailRow, error)
	ListThemes() ([]*domain.ThemeInfo, error)
	ThemeDetail(themeID int64) ([]*domain.ThemeDetailRow, error)
	IndexSeries(indexID int64, since time.Time) (*domain.IndexSeries, error)
	AllIndexSeries(nDays int) ([]*domain.IndexSeries, error)

	UpsertSectors(sectors []*domain.SectorInfo) error
	UpsertThemes(themes []*domain.ThemeInfo) error
	UpsertStocks(stocks []*domain.StockInfo) error
	UpsertSectorRelations(rows []*domain.StockSectorRelation) error
	UpsertThemeRelations(rows []*domain.StockThemeRelation) error
	InsertIndexCandles(rows []*domain.IndexOhlcv) error
	FindStockByName(name string) (*domain.StockInfo, error)
	ListIndices() ([]*domain.IndexInfo, error)

	KiwoomInfo() (*domain.KiwoomAPIInfo, error)
	UpdateKiwoomToken(id int64, token string, expiresAt time.Time) error
}

type marketRepository struct {
	db *gorm.DB
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *gorm.DB) MarketRepository {
	return &marketRepository{db: db}
}

func (r *marketRepository) ListSectors() ([]*domain.SectorInfo, error) {
	var sectors []*domain.SectorInfo
	err := r.db.Order("change_rate DESC").Find(&sectors).Error
	return sectors, err
}

func (r *marketRepository) SectorDetail(sectorID int64) ([]*domain.SectorDetailRow, error) {
	var rows []*domain.SectorDetailRow
	err := r.db.Table("tb_relation_stock_sector AS r").
		Select(`r.stock_id, s.ticker, s.name, r.sector_id, sec.sector_name,
			r.current_price, r.diff_price, r.change_rate, r.volume,
			r.trading_value, r.crt_date AS created_at`).
		Joins("JOIN tb_stock_info s ON r.stock_id = s.id").
		Joins("JOIN tb_sector_info sec ON r.sector_id = sec.id").
		Where("r.sector_id = ?", sectorID).
		Scan(&rows).Error
	return rows, err
}

func (r *marketRepository) ListThemes() ([]*domain.ThemeInfo, error) {
	var themes []*domain.ThemeInfo
	err := r.db.Order("change_rate DESC").Find(&themes).Error
	return themes, err
}

func (r *marketRepository) ThemeDetail(themeID int64) ([]*domain.ThemeDetailRow, error) {
	var rows []*domain.ThemeDetailRow
	err := r.db.Table("tb_relation_stock_theme AS r").
		Select(`r.stock_id, s.ticker, s.name, r.theme_id, t.theme_name,
			r.current_price, r.diff_price, r.change_rate, r.volume,
			r.trading_value, r.description, r.crt_date AS created_at`).
		Joins("JOIN tb_stock_info s ON r.stock_id = s.id").
		Joins("JOIN tb_theme_info t ON r.theme_id = t.id").
		Where("r.theme_id = ?", themeID).
		Scan(&rows).Error
	return rows, err
}

func (r *marketRepository) IndexSeries(indexID int64, since time.Time) (*domain.IndexSeries, error) {
	var info domain.IndexInfo
	if err := r.db.First(&info, indexID).Error; err != nil {
		return nil, err
	}

	var candles []domain.IndexCandle
	err := r.db.Model(&domain.IndexOhlcv{}).
		Select("ymd, open, high, low, close, volume").
		Where("index_id = ?", indexID).
		Where("ymd >= ?", since).
		Order("ymd ASC").
		Scan(&candles).Error
	if err != nil {
		return nil, err
	}

	return &domain.IndexSeries{
		IndexID:     info.ID,
		Name:        info.Name,
		Description: info.Description,
		Ohlcv:       candles,
	}, nil
}

func (r *marketRepository) AllIndexSeries(nDays int) ([]*domain.IndexSeries, error) {
	indices, err := r.ListIndices()
	if err != nil {
		return nil, err
	}

	series := make([]*domain.IndexSeries, 0, len(indices))
	for _, info := range indices {
		var candles []domain.IndexCandle
		err := r.db.Model(&domain.IndexOhlcv{}).
			Select("ymd, open, high, low, close, volume").
			Where("index_id = ?", info.ID).
			Where("close IS NOT NULL").
			Order("ymd DESC").
			Limit(nDays).
			Scan(&candles).Error
		if err != nil {
			return nil, err
		}
		// reverse back to ascending date order
		for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
			candles[i], candles[j] = candles[j], candles[i]
		}
		series = append(series, &domain.IndexSeries{
			IndexID:     info.ID,
			Name:        info.Name,
			Description: info.Description,
			Ohlcv:       candles,
		})
	}
	return series, nil
}

func (r *marketRepository) ListIndices() ([]*domain.IndexInfo, error) {
	var indices []*domain.IndexInfo
	err := r.db.Order("id ASC").Find(&indices).Error
	return indices, err
}

func (r *marketRepository) UpsertSectors(sectors []*domain.SectorInfo) error {
	if len(sectors) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sector_code"}, {Name: "sector_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"change_rate", "up_ticker_count", "neutral_ticker_count",
			"down_ticker_count", "detail_url", "mod_date",
		}),
	}).Create(&sectors).Error
}

func (r *marketRepository) UpsertThemes(themes []*domain.ThemeInfo) error {
	if len(themes) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "theme_code"}, {Name: "theme_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"change_rate", "avg_change_rate_3days", "up_ticker_count",
			"neutral_ticker_count", "down_ticker_count", "detail_url", "mod_date",
		}),
	}).Create(&themes).Error
}

func (r *marketRepository) UpsertStocks(stocks []*domain.StockInfo) error {
	if len(stocks) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "market", "sector", "size", "company_class",
			"listed_count", "warning_status", "mod_date",
		}),
	}).Create(&stocks).Error
}

func (r *marketRepository) UpsertSectorRelations(rows []*domain.StockSectorRelation) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stock_id"}, {Name: "sector_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_price", "diff_price", "change_rate", "volume",
			"trading_value", "volume_yesterday", "mod_date",
		}),
	}).Create(&rows).Error
}

func (r *marketRepository) UpsertThemeRelations(rows []*domain.StockThemeRelation) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stock_id"}, {Name: "theme_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_price", "diff_price", "change_rate", "volume",
			"trading_value", "volume_yesterday", "description", "mod_date",
		}),
	}).Create(&rows).Error
}

func (r *marketRepository) InsertIndexCandles(rows []*domain.IndexOhlcv) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "index_id"}, {Name: "ymd"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"open", "high", "low", "close", "volume",
		}),
	}).Create(&rows).Error
}

func (r *marketRepository) FindStockByName(name string) (*domain.StockInfo, error) {
	var stock domain.StockInfo
	if err := r.db.Where("name = ?", name).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *marketRepository) KiwoomInfo() (*domain.KiwoomAPIInfo, error) {
	var info domain.KiwoomAPIInfo
	if err := r.db.First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *marketRepository) UpdateKiwoomToken(id int64, token string, expiresAt time.Time) error {
	return r.db.Model(&domain.KiwoomAPIInfo{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"valid_token":       token,
			"token_expire_date": expiresAt,
		}).Error
}
