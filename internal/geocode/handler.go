package geocode

import (
	"net/http"

	"wym_site_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the geocode proxy endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Lookup handles GET /api/geocode?lat=<num>&lon=<num>.
// Responses: 200 with the provider payload, 204 when no provider key is
// configured, 400 when lat/lon are missing, 502 when upstream is non-OK,
// 500 on anything unexpected.
func (h *Handler) Lookup(c *gin.Context) {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		httpkit.Error(c, http.StatusBadRequest, "lat and lon are required", nil)
		return
	}

	payload, err := h.svc.Lookup(c.Request.Context(), lat, lon)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}
