package middleware

import (
	"net/http"

	"github.com/premedly/studyplan-api/internal/api/shared"
	"github.com/premedly/studyplan-api/internal/service/auth"
)

// SourceSecretHeader carries the shared secret on server-to-server ingest
// requests.
const SourceSecretHeader = "X-Source-Secret"

// SourceAuthMiddleware gates server-to-server pulse ingestion behind the
// shared secret check.
type SourceAuthMiddleware struct {
	verifier auth.SourceVerifier
}

// NewSourceAuthMiddleware creates a new SourceAuthMiddleware.
func NewSourceAuthMiddleware(verifier auth.SourceVerifier) *SourceAuthMiddleware {
	return &SourceAuthMiddleware{
		verifier: verifier,
	}
}

// VerifySource rejects requests whose X-Source-Secret header does not match
// the configured secret.
func (m *SourceAuthMiddleware) VerifySource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := m.verifier.VerifySourceSecret(r.Context(), r.Header.Get(SourceSecretHeader))
		if err != nil {
			switch err {
			case auth.ErrSourceIngestDisabled:
				shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
			default:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid source secret")
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}
