package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/service"
	"github.com/stocknote/stocknote-backend/pkg/ginutil"
)

// MarketHandler market reference endpoints
type MarketHandler struct {
	marketService service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// ListSectors GET /api/v1/market/sectors
func (h *MarketHandler) ListSectors(c *gin.Context) {
	sectors, err := h.marketService.ListSectors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, sectors, nil)
}

// SectorDetail GET /api/v1/market/sectors/:id
func (h *MarketHandler) SectorDetail(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid sector ID", err)
		return
	}

	rows, err := h.marketService.SectorDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, rows, nil)
}

// ListThemes GET /api/v1/market/themes
func (h *MarketHandler) ListThemes(c *gin.Context) {
	themes, err := h.marketService.ListThemes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, themes, nil)
}

// ThemeDetail GET /api/v1/market/themes/:id
func (h *MarketHandler) ThemeDetail(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid theme ID", err)
		return
	}

	rows, err := h.marketService.ThemeDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, rows, nil)
}

// ListIndices GET /api/v1/market/indices?n_days=30
func (h *MarketHandler) ListIndices(c *gin.Context) {
	nDays := ginutil.QueryInt(c, "n_days", 0)
	series, err := h.marketService.AllIndexSeries(c.Request.Context(), nDays)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, series, nil)
}

// IndexDetail GET /api/v1/market/indices/:id
func (h *MarketHandler) IndexDetail(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid index ID", err)
		return
	}

	series, err := h.marketService.IndexSeries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, series, nil)
}
