// Package auth issues and verifies the bearer tokens guarding the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is what a verified token says about its holder.
type Claims struct {
	UserID   int
	Username string
	Role     string
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      t.now().Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) ParseToken(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	var c Claims
	// numeric claims decode as float64
	if sub, ok := mc["sub"].(float64); ok {
		c.UserID = int(sub)
	}
	c.Username, _ = mc["username"].(string)
	c.Role, _ = mc["role"].(string)
	if c.Username == "" {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}
