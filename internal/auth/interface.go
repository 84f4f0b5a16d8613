package auth

import "promptkit/internal/domain/models"

// JWTVerifier verifies Supabase access tokens.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Invalid, expired or anonymous tokens yield domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
