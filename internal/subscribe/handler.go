package subscribe

import (
	"errors"
	"net/http"

	"wym_site_backend/platform/httpkit"
	"wym_site_backend/platform/mailchimp"

	"github.com/gin-gonic/gin"
)

// Request is the signup payload from the site frontend.
type Request struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// Handler exposes the newsletter signup endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Subscribe handles POST /api/v1/subscribe. Provider rejections pass the
// upstream status and message through; transport failures that were
// queued for retry return 202.
func (h *Handler) Subscribe(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a valid email is required", nil)
		return
	}

	result, err := h.svc.Subscribe(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		var apiErr *mailchimp.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Title
			if message == "" {
				message = "subscription rejected"
			}
			httpkit.Error(c, apiErr.Status, message, apiErr.Detail)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	if result.Queued {
		httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "queued"})
		return
	}

	httpkit.OK(c, gin.H{"status": "subscribed", "id": result.MemberID})
}
