package pools

import (
	"net/http"
	"strconv"

	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the pool discovery endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Find handles GET /api/v1/pools?lat=<num>&lon=<num>&radius=<m>.
// Coordinates are parsed strictly; zero is a valid latitude, so presence
// is checked before parsing rather than relying on zero-value binding.
func (h *Handler) Find(c *gin.Context) {
	latRaw := c.Query("lat")
	lonRaw := c.Query("lon")
	if latRaw == "" || lonRaw == "" {
		httpkit.Error(c, http.StatusBadRequest, "lat and lon are required", nil)
		return
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat must be a number", nil)
		return
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lon must be a number", nil)
		return
	}

	radius := 0
	if radiusRaw := c.Query("radius"); radiusRaw != "" {
		radius, err = strconv.Atoi(radiusRaw)
		if err != nil || radius < 0 {
			httpkit.Error(c, http.StatusBadRequest, "radius must be a positive integer", nil)
			return
		}
	}

	pools, err := h.svc.FindPools(c.Request.Context(), geo.Coordinate{Lat: lat, Lon: lon}, radius)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"pools": pools})
}
