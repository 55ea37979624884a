package places

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// minQueryLength is the shortest query worth forwarding upstream. Shorter
// input returns an empty list without an upstream call.
const minQueryLength = 3

// Handler exposes the place search endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Suggest handles GET /api/v1/places/suggest?q=<text>&lat=<num>&lon=<num>.
// lat/lon are an optional bias point; both must be present to take effect.
func (h *Handler) Suggest(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		httpkit.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	if utf8.RuneCountInString(query) < minQueryLength {
		httpkit.OK(c, gin.H{"suggestions": []Suggestion{}})
		return
	}

	var bias *geo.Coordinate
	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw != "" && lonRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil {
			httpkit.Error(c, http.StatusBadRequest, "lat and lon must be numbers", nil)
			return
		}
		bias = &geo.Coordinate{Lat: lat, Lon: lon}
	}

	suggestions, err := h.svc.Suggest(c.Request.Context(), query, bias)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"suggestions": suggestions})
}

// Geocode handles GET /api/v1/places/geocode?q=<text>, resolving free text
// to a single best-match coordinate.
func (h *Handler) Geocode(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		httpkit.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}

	place, err := h.svc.Locate(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, place)
}
