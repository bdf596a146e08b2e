package auth

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DecodeToken decodes the payload segment of a bearer token for local
// inspection. The signature is not checked; only the server can do that.
// Any malformed input yields nil.
func DecodeToken(token string) jwt.MapClaims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return nil
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil
	}
	if claims == nil {
		return nil
	}
	return claims
}

// Subject returns the sub claim, which the marketplace API sets to the user id
func Subject(claims jwt.MapClaims) string {
	sub, _ := claims["sub"].(string)
	return sub
}

// ExpiresAt returns the exp claim, if present and numeric
func ExpiresAt(claims jwt.MapClaims) (time.Time, bool) {
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case json.Number:
		v, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(v, 0), true
	}
	return time.Time{}, false
}
