package identity

import (
	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the subset of access-token claims used to fill in the
// viewer snapshot.
type tokenClaims struct {
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   string
}

// claimsFromToken decodes the access token's claims without verifying
// the signature. The token is only trusted after the auth service has
// accepted it; the claims merely enrich the snapshot.
func claimsFromToken(accessToken string) (tokenClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return tokenClaims{}, err
	}

	out := tokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if name, ok := meta["full_name"].(string); ok {
			out.DisplayName = name
		} else if name, ok := meta["name"].(string); ok {
			out.DisplayName = name
		}
		if avatar, ok := meta["avatar_url"].(string); ok {
			out.AvatarURL = avatar
		}
	}
	return out, nil
}
