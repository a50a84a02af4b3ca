package batch

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

const (
	naverBaseURL   = "https://finance.naver.com"
	naverSectorURL = naverBaseURL + "/sise/sise_group.naver?type=upjong"
	naverThemeURL  = naverBaseURL + "/sise/theme.naver"
)

// NaverScraper scrapes sector and theme snapshots from the Naver Finance
// group pages
type NaverScraper struct {
	marketRepo repository.MarketRepository
	client     *http.Client
}

// NewNaverScraper creates a new NaverScraper
func NewNaverScraper(marketRepo repository.MarketRepository) *NaverScraper {
	return &NaverScraper{
		marketRepo: marketRepo,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// RunSectors scrapes the sector listing page and upserts every row
func (s *NaverScraper) RunSectors() {
	doc, err := s.fetch(naverSectorURL)
	if err != nil {
		logger.GetLogger().Error().Err(err).Msg("sector scrape failed")
		return
	}

	sectors := s.parseSectors(doc)
	if len(sectors) == 0 {
		logger.GetLogger().Warn().Msg("sector scrape returned no rows")
		return
	}

	if err := s.marketRepo.UpsertSectors(sectors); err != nil {
		logger.GetLogger().Error().Err(err).Msg("sector upsert failed")
		return
	}
	logger.GetLogger().Info().Int("count", len(sectors)).Msg("sectors refreshed")
}

// RunThemes scrapes the paginated theme listing and upserts every row
func (s *NaverScraper) RunThemes() {
	var themes []*domain.ThemeInfo
	for page := 1; page <= 8; page++ {
		doc, err := s.fetch(fmt.Sprintf("%s?page=%d", naverThemeURL, page))
		if err != nil {
			logger.GetLogger().Error().Err(err).Int("page", page).Msg("theme scrape failed")
			return
		}
		rows := s.parseThemes(doc)
		if len(rows) == 0 {
			break
		}
		themes = append(themes, rows...)
	}

	if len(themes) == 0 {
		logger.GetLogger().Warn().Msg("theme scrape returned no rows")
		return
	}

	if err := s.marketRepo.UpsertThemes(themes); err != nil {
		logger.GetLogger().Error().Err(err).Msg("theme upsert failed")
		return
	}
	logger.GetLogger().Info().Int("count", len(themes)).Msg("themes refreshed")
}

func (s *NaverScraper) fetch(rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stocknote-batch/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// parseSectors reads the sector table. Column order: name+link, change rate,
// then up / neutral / down ticker counts.
func (s *NaverScraper) parseSectors(doc *goquery.Document) []*domain.SectorInfo {
	var sectors []*domain.SectorInfo

	doc.Find("table.type_1 tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		link := cells.Eq(0).Find("a")
		name := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if name == "" || href == "" {
			return
		}

		sectors = append(sectors, &domain.SectorInfo{
			SectorCode:         extractQueryParam(href, "no"),
			SectorName:         name,
			ChangeRate:         parseRate(cells.Eq(1).Text()),
			UpTickerCount:      parseCount(cells.Eq(2).Text()),
			NeutralTickerCount: parseCount(cells.Eq(3).Text()),
			DownTickerCount:    parseCount(cells.Eq(4).Text()),
			DetailURL:          naverBaseURL + href,
		})
	})

	return sectors
}

// parseThemes reads one page of the theme table. Column order: name+link,
// change rate, 3-day average change rate, up / neutral / down ticker counts.
func (s *NaverScraper) parseThemes(doc *goquery.Document) []*domain.ThemeInfo {
	var themes []*domain.ThemeInfo

	doc.Find("table.type_1 tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}

		link := cells.Eq(0).Find("a")
		name := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if name == "" || href == "" {
			return
		}

		themes = append(themes, &domain.ThemeInfo{
			ThemeCode:          extractQueryParam(href, "no"),
			ThemeName:          name,
			ChangeRate:         parseRate(cells.Eq(1).Text()),
			AvgChangeRate3Days: parseRate(cells.Eq(2).Text()),
			UpTickerCount:      parseCount(cells.Eq(3).Text()),
			NeutralTickerCount: parseCount(cells.Eq(4).Text()),
			DownTickerCount:    parseCount(cells.Eq(5).Text()),
			DetailURL:          naverBaseURL + href,
		})
	})

	return themes
}

// parseRate converts "+1.23%" / "-0.45%" to a float
func parseRate(text string) float64 {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.ReplaceAll(cleaned, "+", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCount(text string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return v
}

func extractQueryParam(href, key string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}
