package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradejournal/internal/service"
)

// UserTradesHandler serves confirmed trades.
type UserTradesHandler struct {
	Trades *service.TradeService
	Logger *zap.Logger
}

func (h *UserTradesHandler) Register(r *gin.Engine) {
	g := r.Group("/api/user-trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.POST("/:id/close", h.close)
}

// @Summary List confirmed trades
// @Description Oldest first. X-Total-Count carries the match count before limit/offset.
// @Tags user-trades
// @Produce json
// @Param status query string false "open or closed"
// @Param since query string false "RFC3339 or YYYY-MM-DD, inclusive lower bound on confirmed_at"
// @Param until query string false "RFC3339 or YYYY-MM-DD, exclusive upper bound on confirmed_at"
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "rows to skip"
// @Success 200 {array} models.ConfirmedTrade
// @Failure 400 {object} errorResponse
// @Router /api/user-trades [get]
func (h *UserTradesHandler) list(c *gin.Context) {
	filter := service.ListFilter{
		Status: c.Query("status"),
		Limit:  intQuery(c, "limit", 0),
		Offset: intQuery(c, "offset", 0),
	}
	var ok bool
	if filter.Since, ok = timeQuery(c, "since"); !ok {
		Error(c, http.StatusBadRequest, "invalid since")
		return
	}
	if filter.Until, ok = timeQuery(c, "until"); !ok {
		Error(c, http.StatusBadRequest, "invalid until")
		return
	}

	items, err := h.Trades.ListConfirmed(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	total, err := h.Trades.CountConfirmed(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, items)
}

type createUserTradeRequest struct {
	TradeID uint64 `json:"tradeId"`
}

// @Summary Confirm a recommendation by body
// @Tags user-trades
// @Accept json
// @Produce json
// @Param body body createUserTradeRequest true "recommendation to confirm"
// @Success 201 {object} models.ConfirmedTrade
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/user-trades [post]
func (h *UserTradesHandler) create(c *gin.Context) {
	var req createUserTradeRequest
	if !decodeBody(c, &req) {
		return
	}
	if req.TradeID == 0 {
		Error(c, http.StatusNotFound, msgTradeNotFound)
		return
	}
	confirmTrade(c, h.Trades, h.Logger, req.TradeID)
}

// @Summary Get a confirmed trade
// @Tags user-trades
// @Produce json
// @Param id path int true "trade id"
// @Success 200 {object} models.ConfirmedTrade
// @Failure 404 {object} errorResponse
// @Router /api/user-trades/{id} [get]
func (h *UserTradesHandler) get(c *gin.Context) {
	id, ok := tradeID(c)
	if !ok {
		Error(c, http.StatusNotFound, msgTradeNotFound)
		return
	}
	item, err := h.Trades.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type closeTradeRequest struct {
	Outcome string `json:"outcome"`
	Notes   string `json:"notes"`
}

// @Summary Close a confirmed trade
// @Description A missing outcome closes the trade as neutral.
// @Tags user-trades
// @Accept json
// @Produce json
// @Param id path int true "trade id"
// @Param body body closeTradeRequest false "outcome and notes"
// @Success 200 {object} models.ConfirmedTrade
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/user-trades/{id}/close [post]
func (h *UserTradesHandler) close(c *gin.Context) {
	var req closeTradeRequest
	if !decodeBody(c, &req) {
		return
	}
	id, ok := tradeID(c)
	if !ok {
		Error(c, http.StatusNotFound, msgTradeNotFound)
		return
	}
	item, err := h.Trades.Close(c.Request.Context(), id, req.Outcome, req.Notes)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// decodeBody reads a JSON object body. An empty body decodes as {}.
func decodeBody(c *gin.Context, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		Error(c, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		Error(c, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}
