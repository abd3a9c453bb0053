package handlers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer значение iss во всех токенах сервера
const tokenIssuer = "startline"

// OrganizerClaims представляет JWT claims станции старта
type OrganizerClaims struct {
	OrganizerID string `json:"organizer_id"`
	Name        string `json:"name"`
	jwt.RegisteredClaims
}

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

// GenerateAccessToken создает JWT для станции старта.
// Returns the token and its lifetime in seconds.
func GenerateAccessToken(cfg JWTConfig, organizerID, name string) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(cfg.AccessTokenTTL)

	claims := OrganizerClaims{
		OrganizerID: organizerID,
		Name:        name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   organizerID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(cfg.AccessTokenTTL.Seconds()), nil
}

// ValidateAccessToken валидирует и парсит JWT станции
func ValidateAccessToken(cfg JWTConfig, tokenString string) (*OrganizerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OrganizerClaims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*OrganizerClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.OrganizerID == "" {
		return nil, fmt.Errorf("token has no organizer id")
	}

	return claims, nil
}
