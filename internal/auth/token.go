package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rinkdesk/backend/internal/domain"
)

// Claims is the bearer token payload: the caller's role and area, plus the
// registered expiry.
type Claims struct {
	Role   domain.Role `json:"role"`
	AreaID string      `json:"areaId"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the HS256 bearer tokens that carry a
// Principal between requests.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *TokenManager) Issue(p domain.Principal) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		Role:   p.Role,
		AreaID: p.AreaID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenString string) (*domain.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	if claims.AreaID == "" {
		return nil, domain.ErrUnauthorized
	}
	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleEmployee {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Principal{Role: claims.Role, AreaID: claims.AreaID}, nil
}
