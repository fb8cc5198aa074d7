package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenConfig конфигурация токенов доступа
type TokenConfig struct {
	SecretKey []byte
	TTL       time.Duration
	Issuer    string
}

// GrantClaims подтверждают, что в этой сессии пароль для ShortID уже введен верно
type GrantClaims struct {
	ShortID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenService выдает и проверяет токены доступа к защищенным ссылкам
type TokenService struct {
	config *TokenConfig
	now    func() time.Time
}

// NewTokenService создает новый сервис токенов
func NewTokenService(config *TokenConfig) *TokenService {
	return &TokenService{
		config: config,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// IssueGrant создает токен доступа к конкретной ссылке
func (s *TokenService) IssueGrant(shortID string) (string, error) {
	now := s.now()
	claims := GrantClaims{
		ShortID: shortID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   shortID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.SecretKey)
}

// ValidateGrant проверяет токен и его привязку к shortID
func (s *TokenService) ValidateGrant(tokenString, shortID string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}

	claims := &GrantClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.config.SecretKey, nil
	},
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	if !token.Valid || claims.ShortID != shortID {
		return ErrInvalidToken
	}

	return nil
}
