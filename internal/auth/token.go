package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer issues an API token for a user and device.
type TokenIssuer interface {
	IssueToken(ctx context.Context, userID, deviceName string) (string, error)
}

// JWTIssuer signs HS256 tokens carrying the user id, device name and a token
// id. When a session store is configured, every issued token is recorded
// there so it can be revoked before expiry.
type JWTIssuer struct {
	secret   string
	ttl      time.Duration
	sessions SessionStore
}

func NewJWTIssuer(secret string, ttl time.Duration, sessions SessionStore) *JWTIssuer {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: secret, ttl: ttl, sessions: sessions}
}

func (i *JWTIssuer) IssueToken(ctx context.Context, userID, deviceName string) (string, error) {
	tokenID := uuid.NewString()
	claims := jwt.MapClaims{
		"user_id": userID,
		"device":  deviceName,
		"jti":     tokenID,
		"exp":     time.Now().Add(i.ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.secret))
	if err != nil {
		return "", err
	}

	if i.sessions != nil {
		if err := i.sessions.Record(ctx, userID, tokenID, deviceName, i.ttl); err != nil {
			return "", err
		}
	}

	return signed, nil
}

// TokenClaims is what ParseToken extracts from a valid token.
type TokenClaims struct {
	UserID  string
	TokenID string
	Device  string
}

// ParseToken validates a token string and returns its claims.
func (i *JWTIssuer) ParseToken(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(i.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	tc := &TokenClaims{UserID: userID}
	if jti, ok := claims["jti"].(string); ok {
		tc.TokenID = jti
	}
	if device, ok := claims["device"].(string); ok {
		tc.Device = device
	}
	return tc, nil
}
