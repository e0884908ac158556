package handler

import (
	"encoding/json"
	"net/http"

	"github.com/contactbook/backend/internal/country"
)

// CountryHandler serves the static dial-code registry.
type CountryHandler struct{}

func NewCountryHandler() *CountryHandler {
	return &CountryHandler{}
}

type countryListResponse struct {
	Countries []country.Country `json:"countries"`
	Default   string            `json:"default"`
}

// List handles GET /api/countries. The registry is static, so the response
// is marked cacheable.
func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_ = json.NewEncoder(w).Encode(countryListResponse{
		Countries: country.All(),
		Default:   country.Default().DialCode,
	})
}
