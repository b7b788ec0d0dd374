package tokens

import (
	"fmt"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/internal/config"
	"github.com/fundvault/fundvault/backend/go-services/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed JWT access token for the admin
func GenerateAccessToken(cfg *config.Config, a *models.Admin, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  a.ID,
		"name": a.Name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseAccessToken verifies the signature and returns the admin id and name.
func ParseAccessToken(cfg *config.Config, raw string) (id, name string, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", "", err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("unexpected claims type %T", tok.Claims)
	}
	id, _ = claims["sub"].(string)
	name, _ = claims["name"].(string)
	if id == "" {
		return "", "", fmt.Errorf("sub claim missing")
	}
	return id, name, nil
}
