package domain

import "time"

// StockInfo listed equity reference data, refreshed daily by the vendor batch
type StockInfo struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Ticker        string     `gorm:"uniqueIndex;not null" json:"ticker"`
	Name          string     `gorm:"uniqueIndex;not null" json:"name"`
	Market        string     `json:"market,omitempty"`
	Sector        string     `json:"sector,omitempty"`
	ListedDate    *time.Time `json:"listed_date,omitempty"`
	Size          string     `json:"size,omitempty"`
	CompanyClass  string     `gorm:"column:company_class" json:"company_class,omitempty"`
	ListedCount   int64      `json:"listed_count,omitempty"`
	WarningStatus string     `json:"warning_status,omitempty"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_stock_info table
func (StockInfo) TableName() string {
	return "tb_stock_info"
}

// SectorInfo one scraped sector row with daily movement aggregates
type SectorInfo struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SectorCode         string    `gorm:"not null;uniqueIndex:uq_sector_code_name,priority:1" json:"sector_code"`
	SectorName         string    `gorm:"not null;uniqueIndex:uq_sector_code_name,priority:2" json:"sector_name"`
	ChangeRate         float64   `gorm:"not null" json:"change_rate"`
	UpTickerCount      int       `gorm:"not null" json:"up_ticker_count"`
	NeutralTickerCount int       `gorm:"not null" json:"neutral_ticker_count"`
	DownTickerCount    int       `gorm:"not null" json:"down_ticker_count"`
	DetailURL          string    `gorm:"type:text;not null" json:"detail_url"`
	CreatedAt          time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt          time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_sector_info table
func (SectorInfo) TableName() string {
	return "tb_sector_info"
}

// ThemeInfo one scraped investment theme row
type ThemeInfo struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ThemeCode           string    `gorm:"not null;uniqueIndex:uq_theme_code_name,priority:1" json:"theme_code"`
	ThemeName           string    `gorm:"not null;uniqueIndex:uq_theme_code_name,priority:2" json:"theme_name"`
	ChangeRate          float64   `gorm:"not null" json:"change_rate"`
	AvgChangeRate3Days  float64   `gorm:"column:avg_change_rate_3days" json:"avg_change_rate_3days"`
	UpTickerCount       int       `gorm:"not null" json:"up_ticker_count"`
	NeutralTickerCount  int       `gorm:"not null" json:"neutral_ticker_count"`
	DownTickerCount     int       `gorm:"not null" json:"down_ticker_count"`
	DetailURL           string    `gorm:"type:text;not null" json:"detail_url"`
	Description         string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt           time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt           time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_theme_info table
func (ThemeInfo) TableName() string {
	return "tb_theme_info"
}

// IndexInfo a market index (KOSPI, KOSDAQ, ...)
type IndexInfo struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:text" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt   time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_index_info table
func (IndexInfo) TableName() string {
	return "tb_index_info"
}

// IndexOhlcv daily index candle, keyed by (index_id, ymd)
type IndexOhlcv struct {
	IndexID int64     `gorm:"column:index_id;primaryKey" json:"index_id"`
	Ymd     time.Time `gorm:"column:ymd;primaryKey" json:"ymd"`
	Open    float64   `json:"open"`
	High    float64   `json:"high"`
	Low     float64   `json:"low"`
	Close   float64   `json:"close"`
	Volume  int64     `json:"volume"`
}

// TableName matches the original tb_index_ohlcv table
func (IndexOhlcv) TableName() string {
	return "tb_index_ohlcv"
}

// StockSectorRelation per-sector constituent snapshot for a stock
type StockSectorRelation struct {
	StockID         int64     `gorm:"column:stock_id;primaryKey" json:"stock_id"`
	SectorID        int64     `gorm:"column:sector_id;primaryKey" json:"sector_id"`
	CurrentPrice    float64   `json:"current_price"`
	DiffPrice       float64   `json:"diff_price"`
	ChangeRate      float64   `json:"change_rate"`
	Volume          int64     `json:"volume"`
	TradingValue    float64   `json:"trading_value"`
	VolumeYesterday int64     `json:"volume_yesterday"`
	CreatedAt       time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt       time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_relation_stock_sector table
func (StockSectorRelation) TableName() string {
	return "tb_relation_stock_sector"
}

// StockThemeRelation per-theme constituent snapshot for a stock
type StockThemeRelation struct {
	StockID         int64     `gorm:"column:stock_id;primaryKey" json:"stock_id"`
	ThemeID         int64     `gorm:"column:theme_id;primaryKey" json:"theme_id"`
	CurrentPrice    float64   `json:"current_price"`
	DiffPrice       float64   `json:"diff_price"`
	ChangeRate      float64   `json:"change_rate"`
	Volume          int64     `json:"volume"`
	TradingValue    float64   `json:"trading_value"`
	VolumeYesterday int64     `json:"volume_yesterday"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt       time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt       time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_relation_stock_theme table
func (StockThemeRelation) TableName() string {
	return "tb_relation_stock_theme"
}

// KiwoomAPIInfo vendor API credentials and the cached access token
type KiwoomAPIInfo struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountNo       string     `json:"account_no,omitempty"`
	InvestmentMode  string     `json:"investment_mode,omitempty"`
	InvestmentType  string     `json:"investment_type,omitempty"`
	APIURL          string     `gorm:"column:api_url" json:"api_url"`
	AppKey          string     `json:"-"`
	SecretKey       string     `json:"-"`
	ValidToken      string     `json:"-"`
	TokenExpireDate *time.Time `json:"token_expire_date,omitempty"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_kiwoom_api_info table
func (KiwoomAPIInfo) TableName() string {
	return "tb_kiwoom_api_info"
}

// SectorDetailRow one constituent stock inside a sector detail response
type SectorDetailRow struct {
	StockID      int64     `json:"stock_id"`
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	SectorID     int64     `json:"sector_id"`
	SectorName   string    `json:"sector_name"`
	CurrentPrice float64   `json:"current_price"`
	DiffPrice    float64   `json:"diff_price"`
	ChangeRate   float64   `json:"change_rate"`
	Volume       int64     `json:"volume"`
	TradingValue float64   `json:"trading_value"`
	CreatedAt    time.Time `json:"crt_date"`
}

// ThemeDetailRow one constituent stock inside a theme detail response
type ThemeDetailRow struct {
	StockID      int64     `json:"stock_id"`
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	ThemeID      int64     `json:"theme_id"`
	ThemeName    string    `json:"theme_name"`
	CurrentPrice float64   `json:"current_price"`
	DiffPrice    float64   `json:"diff_price"`
	ChangeRate   float64   `json:"change_rate"`
	Volume       int64     `json:"volume"`
	TradingValue float64   `json:"trading_value"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"crt_date"`
}

// IndexCandle one OHLCV point in an index detail response
type IndexCandle struct {
	Ymd    time.Time `json:"ymd"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// IndexSeries an index with its recent candles
type IndexSeries struct {
	IndexID     int64         `json:"index_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Ohlcv       []IndexCandle `json:"ohlcv"`
}
