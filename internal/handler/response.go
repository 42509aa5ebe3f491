package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradejournal/internal/service"
)

const (
	msgTradeNotFound    = "Trade not found"
	msgAlreadyConfirmed = "Trade already confirmed"
	msgAlreadyClosed    = "Trade already closed"
	msgInvalidOutcome   = "Invalid outcome"
	msgInvalidJSON      = "Invalid JSON"
	msgInternal         = "Internal error"
)

type errorResponse struct {
	Error string `json:"error"`
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

// serviceError maps service sentinels to status codes. Anything else is a
// 500 and gets logged.
func serviceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, msgTradeNotFound)
	case errors.Is(err, service.ErrAlreadyConfirmed):
		Error(c, http.StatusBadRequest, msgAlreadyConfirmed)
	case errors.Is(err, service.ErrAlreadyClosed):
		Error(c, http.StatusBadRequest, msgAlreadyClosed)
	case errors.Is(err, service.ErrInvalidOutcome):
		Error(c, http.StatusBadRequest, msgInvalidOutcome)
	case errors.Is(err, service.ErrInvalidSeed):
		Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		if logger != nil {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		Error(c, http.StatusInternalServerError, msgInternal)
	}
}

// tradeID parses the :id path param. Ids that do not parse cannot exist.
func tradeID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// timeQuery parses an optional RFC3339 timestamp or a bare date (UTC
// midnight). ok is false only for a present but unparsable value.
func timeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, true
	}
	return nil, false
}
