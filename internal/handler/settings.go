package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/service"
)

type SettingsHandler struct {
	Settings *service.SystemSettingsService
}

func (h *SettingsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/settings")
	g.GET("/switches", h.listSwitches)
	g.PUT("/switches/:name", h.putSwitch)
}

// @Summary List feature switches
// @Tags settings
// @Produce json
// @Success 200 {array} service.Switch
// @Router /api/settings/switches [get]
func (h *SettingsHandler) listSwitches(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Switches(c.Request.Context()))
}

type putSwitchRequest struct {
	Enabled *bool `json:"enabled"`
}

// @Summary Turn a feature switch on or off
// @Tags settings
// @Accept json
// @Produce json
// @Param name path string true "switch name, with or without the feature. prefix"
// @Param body body putSwitchRequest true "new state"
// @Success 200 {object} service.Switch
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/settings/switches/{name} [put]
func (h *SettingsHandler) putSwitch(c *gin.Context) {
	key, ok := service.KnownSwitch(c.Param("name"))
	if !ok {
		Error(c, http.StatusNotFound, "switch not found")
		return
	}
	var req putSwitchRequest
	if !decodeBody(c, &req) {
		return
	}
	if req.Enabled == nil {
		Error(c, http.StatusBadRequest, "enabled is required")
		return
	}
	if err := h.Settings.SetEnabled(c.Request.Context(), key, *req.Enabled); err != nil {
		serviceError(c, nil, err)
		return
	}
	for _, sw := range h.Settings.Switches(c.Request.Context()) {
		if sw.Name == key {
			c.JSON(http.StatusOK, sw)
			return
		}
	}
	c.JSON(http.StatusOK, service.Switch{Name: key, Enabled: *req.Enabled})
}
