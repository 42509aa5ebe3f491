package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradejournal/internal/service"
)

// TradesHandler serves the recommendation feed and confirmation.
type TradesHandler struct {
	Ideas  *service.IdeaService
	Trades *service.TradeService
	Sync   *service.RecommendationSyncService
	Logger *zap.Logger
}

func (h *TradesHandler) Register(r *gin.Engine) {
	g := r.Group("/api/trades")
	g.GET("", h.list)
	g.POST("/sync", h.sync)
	g.POST("/:id/confirm", h.confirm)
}

// @Summary List today's recommendations
// @Description Entry, stop and target are re-anchored to the live price when one is available.
// @Tags trades
// @Produce json
// @Success 200 {array} models.RecommendationView
// @Failure 500 {object} errorResponse
// @Router /api/trades [get]
func (h *TradesHandler) list(c *gin.Context) {
	items, err := h.Ideas.List(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Confirm a recommendation
// @Tags trades
// @Produce json
// @Param id path int true "recommendation id"
// @Success 201 {object} models.ConfirmedTrade
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/trades/{id}/confirm [post]
func (h *TradesHandler) confirm(c *gin.Context) {
	id, ok := tradeID(c)
	if !ok {
		Error(c, http.StatusNotFound, msgTradeNotFound)
		return
	}
	confirmTrade(c, h.Trades, h.Logger, id)
}

// @Summary Reload recommendations from the seed file
// @Tags trades
// @Produce json
// @Success 200 {object} service.SyncResult
// @Failure 422 {object} errorResponse
// @Router /api/trades/sync [post]
func (h *TradesHandler) sync(c *gin.Context) {
	if h.Sync == nil {
		Error(c, http.StatusServiceUnavailable, "recommendation sync unavailable")
		return
	}
	res, err := h.Sync.Sync(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func confirmTrade(c *gin.Context, trades *service.TradeService, logger *zap.Logger, id uint64) {
	item, err := trades.Confirm(c.Request.Context(), id)
	if err != nil {
		serviceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}
