package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradejournal/internal/service"
)

type SummaryHandler struct {
	Summary *service.SummaryService
	Logger  *zap.Logger
}

func (h *SummaryHandler) Register(r *gin.Engine) {
	r.GET("/api/summary", h.get)
}

// @Summary Weekly summary
// @Description Trades confirmed since the most recent Sunday 00:00 in the journal timezone.
// @Tags summary
// @Produce json
// @Success 200 {object} models.WeeklySummary
// @Router /api/summary [get]
func (h *SummaryHandler) get(c *gin.Context) {
	out, err := h.Summary.Weekly(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
