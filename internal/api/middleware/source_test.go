package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/premedly/studyplan-api/internal/service/auth"
)

// mockSourceVerifier is a mock implementation of the SourceVerifier interface
type mockSourceVerifier struct {
	verifyFn func(ctx context.Context, secret string) error
}

func (m *mockSourceVerifier) VerifySourceSecret(ctx context.Context, secret string) error {
	return m.verifyFn(ctx, secret)
}

func TestVerifySource(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid secret passes through", func(t *testing.T) {
		verifier := &mockSourceVerifier{
			verifyFn: func(_ context.Context, secret string) error {
				if secret != "shared-secret" {
					t.Errorf("Expected header secret to be forwarded, got %q", secret)
				}
				return nil
			},
		}
		mw := NewSourceAuthMiddleware(verifier)

		req := httptest.NewRequest(http.MethodPost, "/api/ingest/source", nil)
		req.Header.Set(SourceSecretHeader, "shared-secret")
		rr := httptest.NewRecorder()
		mw.VerifySource(okHandler).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rr.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		verifier := &mockSourceVerifier{
			verifyFn: func(context.Context, string) error {
				return auth.ErrInvalidSourceSecret
			},
		}
		mw := NewSourceAuthMiddleware(verifier)

		req := httptest.NewRequest(http.MethodPost, "/api/ingest/source", nil)
		req.Header.Set(SourceSecretHeader, "wrong")
		rr := httptest.NewRecorder()
		mw.VerifySource(okHandler).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rr.Code)
		}
	})

	t.Run("ingestion disabled hides the endpoint", func(t *testing.T) {
		verifier := &mockSourceVerifier{
			verifyFn: func(context.Context, string) error {
				return auth.ErrSourceIngestDisabled
			},
		}
		mw := NewSourceAuthMiddleware(verifier)

		req := httptest.NewRequest(http.MethodPost, "/api/ingest/source", nil)
		rr := httptest.NewRecorder()
		mw.VerifySource(okHandler).ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})
}
