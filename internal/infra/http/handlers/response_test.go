package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

func TestErrorBodyMapsKindsToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{usecase.ErrNoFileSelected, http.StatusBadRequest},
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{usecase.ErrVerificationRequired, http.StatusForbidden},
		{&usecase.DomainError{Kind: usecase.KindNotFound, Code: "LEAD_NOT_FOUND", Message: "x"}, http.StatusNotFound},
		{usecase.ErrUploadInProgress, http.StatusConflict},
		{&usecase.TechnicalError{Code: "UPLOAD_FAILED", Message: "Stockage indisponible"}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusBadGateway},
	}

	for _, tc := range cases {
		status, body, note := errorBody(tc.err, "Erreur")
		assert.Equal(t, tc.want, status, tc.err.Error())
		assert.NotEmpty(t, body.Code)
		assert.Equal(t, VariantDestructive, note.Variant)
		assert.Equal(t, "Erreur", note.Title)
	}
}

func TestErrorBodyKeepsTechnicalMessage(t *testing.T) {
	_, body, note := errorBody(&usecase.TechnicalError{Code: "UPLOAD_FAILED", Message: "Stockage indisponible"}, "Erreur lors de l'envoi")
	assert.Equal(t, "UPLOAD_FAILED", body.Code)
	assert.Equal(t, "Stockage indisponible", note.Description)

	_, body, _ = errorBody(errors.New("driver: bad connection"), "Erreur")
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Message, "driver")
}

func TestIsMobile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	assert.False(t, isMobile(req))

	req.Header.Set("Viewport-Width", "767")
	assert.True(t, isMobile(req))

	req.Header.Set("Viewport-Width", "768")
	assert.False(t, isMobile(req))

	req.Header.Set("Viewport-Width", "")
	req.Header.Set("Sec-CH-UA-Mobile", "?1")
	assert.True(t, isMobile(req))
}

func TestDashboardLayoutFollowsStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)

	layout := dashboardLayout(req, entity.StatusPending)
	assert.Equal(t, LayoutDashboard, layout.Kind)
	assert.Equal(t, Brand, layout.Brand)
	assert.Equal(t, "/profile", layout.ActivePath)
	assert.Len(t, layout.Navigation, 2)
	assert.Equal(t, "/api/auth/signout", layout.Actions[0].Path)

	assert.Len(t, dashboardLayout(req, entity.StatusValidated).Navigation, 4)
}

func TestPublicLayoutIsACopy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	layout := publicLayout(req)
	layout.Navigation[0].Label = "changed"

	assert.Equal(t, "Tableau de bord", publicLayout(req).Navigation[0].Label)
}
