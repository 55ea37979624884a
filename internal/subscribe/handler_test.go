package subscribe

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/mailchimp"
	"wym_site_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestRouter(mailer *fakeMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewHandler(NewService(mailer, validator.New(), nil, nil, logger.New("test")))
	engine.POST("/api/v1/subscribe", handler.Subscribe)
	return engine
}

func postJSON(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHandler_InvalidEmailReturns400(t *testing.T) {
	engine := newTestRouter(&fakeMailer{enabled: true})

	for _, body := range []string{`{}`, `{"email":"not-an-email"}`, `broken`} {
		if rec := postJSON(engine, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestHandler_SuccessReturnsMemberID(t *testing.T) {
	engine := newTestRouter(&fakeMailer{enabled: true, memberID: "abc123"})

	rec := postJSON(engine, `{"email":"a@example.com","name":"A"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "abc123") {
		t.Fatalf("expected member id in response, got %s", rec.Body.String())
	}
}

func TestHandler_ProviderRejectionStatusPassedThrough(t *testing.T) {
	engine := newTestRouter(&fakeMailer{
		enabled: true,
		err:     &mailchimp.APIError{Status: http.StatusConflict, Title: "Member Exists"},
	})

	rec := postJSON(engine, `{"email":"a@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected upstream status passed through, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Member Exists") {
		t.Fatalf("expected upstream message, got %s", rec.Body.String())
	}
}
