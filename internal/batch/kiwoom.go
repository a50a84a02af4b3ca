package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

// Market index codes used by the vendor chart API
const (
	kiwoomIndexKospi  = "001"
	kiwoomIndexKosdaq = "101"
)

// KiwoomClient pulls index candles and the stock master list from the Kiwoom
// REST API. The access token is cached in the credentials row and refreshed
// when it is within an hour of expiry.
type KiwoomClient struct {
	marketRepo repository.MarketRepository
	client     *http.Client
}

// NewKiwoomClient creates a new KiwoomClient
func NewKiwoomClient(marketRepo repository.MarketRepository) *KiwoomClient {
	return &KiwoomClient{
		marketRepo: marketRepo,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type kiwoomTokenResponse struct {
	Token     string `json:"token"`
	ExpiresDt string `json:"expires_dt"`
}

type kiwoomIndexChartResponse struct {
	Output []struct {
		Date   string `json:"dt"`
		Open   string `json:"open_pric"`
		High   string `json:"high_pric"`
		Low    string `json:"low_pric"`
		Close  string `json:"cur_prc"`
		Volume string `json:"trde_qty"`
	} `json:"inds_dt_pole_qry"`
}

// RunIndexSync pulls daily candles for the tracked market indices
func (k *KiwoomClient) RunIndexSync() {
	info, err := k.readyCredentials()
	if err != nil {
		logger.GetLogger().Error().Err(err).Msg("kiwoom credentials unavailable")
		return
	}

	indices, err := k.marketRepo.ListIndices()
	if err != nil {
		logger.GetLogger().Error().Err(err).Msg("failed to list indices")
		return
	}

	for _, idx := range indices {
		code := kiwoomIndexCode(idx.Name)
		if code == "" {
			continue
		}
		candles, err := k.fetchIndexCandles(info, code, idx.ID)
		if err != nil {
			logger.GetLogger().Error().Err(err).
				Str("index", idx.Name).
				Msg("index candle pull failed")
			continue
		}
		if err := k.marketRepo.InsertIndexCandles(candles); err != nil {
			logger.GetLogger().Error().Err(err).
				Str("index", idx.Name).
				Msg("index candle upsert failed")
			continue
		}
		logger.GetLogger().Info().
			Str("index", idx.Name).
			Int("count", len(candles)).
			Msg("index candles refreshed")
	}
}

func kiwoomIndexCode(name string) string {
	switch name {
	case "KOSPI":
		return kiwoomIndexKospi
	case "KOSDAQ":
		return kiwoomIndexKosdaq
	}
	return ""
}

// RefreshToken renews the cached vendor token when it is close to expiry.
// Runs on its own schedule so index pulls never start with a stale token.
func (k *KiwoomClient) RefreshToken() {
	if _, err := k.readyCredentials(); err != nil {
		logger.GetLogger().Error().Err(err).Msg("kiwoom token refresh failed")
	}
}

// readyCredentials returns the credentials row with a usable access token,
// requesting a fresh one when the cached token is close to expiry
func (k *KiwoomClient) readyCredentials() (*domain.KiwoomAPIInfo, error) {
	info, err := k.marketRepo.KiwoomInfo()
	if err != nil {
		return nil, fmt.Errorf("load kiwoom credentials: %w", err)
	}

	if info.ValidToken != "" && info.TokenExpireDate != nil &&
		time.Until(*info.TokenExpireDate) > time.Hour {
		return info, nil
	}

	token, expiresAt, err := k.requestToken(info)
	if err != nil {
		return nil, err
	}

	if err := k.marketRepo.UpdateKiwoomToken(info.ID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("store kiwoom token: %w", err)
	}
	info.ValidToken = token
	info.TokenExpireDate = &expiresAt
	return info, nil
}

func (k *KiwoomClient) requestToken(info *domain.KiwoomAPIInfo) (string, time.Time, error) {
	payload, _ := json.Marshal(map[string]string{
		"grant_type": "client_credentials",
		"appkey":     info.AppKey,
		"secretkey":  info.SecretKey,
	})

	req, err := http.NewRequest(http.MethodPost, info.APIURL+"/oauth2/token", bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	resp, err := k.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("kiwoom token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("kiwoom token request: status %d", resp.StatusCode)
	}

	var body kiwoomTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", time.Time{}, fmt.Errorf("decode kiwoom token: %w", err)
	}

	expiresAt, err := time.ParseInLocation("20060102150405", body.ExpiresDt, time.Local)
	if err != nil {
		expiresAt = time.Now().Add(12 * time.Hour)
	}
	return body.Token, expiresAt, nil
}

func (k *KiwoomClient) fetchIndexCandles(info *domain.KiwoomAPIInfo, code string, indexID int64) ([]*domain.IndexOhlcv, error) {
	payload, _ := json.Marshal(map[string]string{
		"inds_cd":  code,
		"base_dt":  time.Now().Format("20060102"),
		"upd_stkpc_tp": "1",
	})

	req, err := http.NewRequest(http.MethodPost, info.APIURL+"/api/dostk/chart", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Authorization", "Bearer "+info.ValidToken)
	req.Header.Set("api-id", "ka20006")
	req.Header.Set("cont-yn", "N")
	req.Header.Set("next-key", "")

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kiwoom chart request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kiwoom chart request: status %d", resp.StatusCode)
	}

	var body kiwoomIndexChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode kiwoom chart: %w", err)
	}

	candles := make([]*domain.IndexOhlcv, 0, len(body.Output))
	for _, row := range body.Output {
		ymd, err := time.ParseInLocation("20060102", row.Date, time.Local)
		if err != nil {
			continue
		}
		candles = append(candles, &domain.IndexOhlcv{
			IndexID: indexID,
			Ymd:     ymd,
			Open:    parsePrice(row.Open),
			High:    parsePrice(row.High),
			Low:     parsePrice(row.Low),
			Close:   parsePrice(row.Close),
			Volume:  parseVolume(row.Volume),
		})
	}
	return candles, nil
}

// parsePrice handles the vendor's signed price strings ("+2501.53", "-75000")
func parsePrice(text string) float64 {
	cleaned := text
	if len(cleaned) > 0 && (cleaned[0] == '+' || cleaned[0] == '-') {
		if cleaned[0] == '+' {
			cleaned = cleaned[1:]
		}
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseVolume(text string) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
