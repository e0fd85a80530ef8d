package auth

import (
	"context"
	"errors"

	"github.com/premedly/studyplan-api/internal/config"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
)

// SourceVerifier checks the shared secret external practice platforms send
// with server-to-server ingest requests.
type SourceVerifier interface {
	// VerifySourceSecret compares the presented secret against the
	// configured hash. Returns ErrSourceIngestDisabled when no hash is
	// configured and ErrInvalidSourceSecret on mismatch.
	VerifySourceSecret(ctx context.Context, secret string) error
}

// bcryptSourceVerifier verifies ingest secrets against a bcrypt hash. The
// secret is low-entropy operator-chosen material, so it gets the same
// treatment a password would.
type bcryptSourceVerifier struct {
	secretHash string
}

// Ensure bcryptSourceVerifier implements SourceVerifier interface
var _ SourceVerifier = (*bcryptSourceVerifier)(nil)

// NewSourceVerifier creates a SourceVerifier from the ingest configuration.
func NewSourceVerifier(cfg config.IngestConfig) SourceVerifier {
	return &bcryptSourceVerifier{
		secretHash: cfg.SourceSecretHash,
	}
}

// VerifySourceSecret implements SourceVerifier.VerifySourceSecret
func (v *bcryptSourceVerifier) VerifySourceSecret(ctx context.Context, secret string) error {
	log := logger.FromContext(ctx)

	if v.secretHash == "" {
		log.Warn("source ingest attempted but no secret hash is configured")
		return ErrSourceIngestDisabled
	}
	if secret == "" {
		return ErrInvalidSourceSecret
	}

	err := bcrypt.CompareHashAndPassword([]byte(v.secretHash), []byte(secret))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warn("source secret mismatch")
			return ErrInvalidSourceSecret
		}
		log.Error("failed to compare source secret", "error", err)
		return ErrInvalidSourceSecret
	}

	return nil
}

// HashSourceSecret produces the bcrypt hash operators store in
// configuration for a chosen ingest secret.
func HashSourceSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
