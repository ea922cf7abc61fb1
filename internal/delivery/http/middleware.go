package http

import (
	"errors"
	"net/http"
	"strings"

	"clicktrack/pkg/problemdetails"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errTokenInvalid = errors.New("token invalid")
	errTokenExpired = errors.New("token expired")
)

// TokenVerifier verifies admin bearer tokens for the read endpoints.
type TokenVerifier struct {
	secret []byte
	// If non-empty, the token issuer must match exactly.
	expectedIssuer string
}

func NewTokenVerifier(secret, expectedIssuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), expectedIssuer: expectedIssuer}
}

func (v *TokenVerifier) verify(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errTokenInvalid
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return errTokenExpired
		}
		return errTokenInvalid
	}
	if !parsed.Valid {
		return errTokenInvalid
	}

	if v.expectedIssuer != "" {
		issuer, err := parsed.Claims.GetIssuer()
		if err != nil || issuer != v.expectedIssuer {
			return errTokenInvalid
		}
	}
	return nil
}

// AdminAuth guards the dashboard read endpoints. The ingest endpoint stays open:
// the public site submits clicks without credentials, only reads are protected.
func AdminAuth(verifier *TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				writeProblem(w, problemdetails.New(
					http.StatusUnauthorized,
					problemdetails.TypeUnauthorized,
					"Unauthorized",
					"Missing or malformed bearer token",
				))
				return
			}

			if err := verifier.verify(strings.TrimSpace(parts[1])); err != nil {
				writeProblem(w, problemdetails.New(
					http.StatusUnauthorized,
					problemdetails.TypeUnauthorized,
					"Unauthorized",
					"Invalid or expired token",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
