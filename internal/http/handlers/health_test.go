package handlers_test

import (
	"net/http"
	"testing"

	"github.com/geocoder89/neuralpulse/internal/http/handlers"
)

func TestReadyz(t *testing.T) {
	tests := []struct {
		name           string
		ping           func() error
		wantStatusCode int
	}{
		{name: "no_ping", ping: nil, wantStatusCode: http.StatusOK},
		{name: "healthy", ping: func() error { return nil }, wantStatusCode: http.StatusOK},
		{name: "backend_down", ping: func() error { return errBoom }, wantStatusCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tt.ping)
			r := setupRouter(http.MethodGet, "/readyz", h.Readyz)

			if w := serve(r, http.MethodGet, "/readyz", ""); w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatusCode)
			}
		})
	}
}
