package security

import (
	"UserAccountBackend/config"
	"UserAccountBackend/internal/model"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"time"
)

// TokenType различает назначение токена. Access и refresh подписываются
// разными ключами, а тип дополнительно записывается в claims, чтобы
// отличать токен не того назначения от поддельного.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrTokenExpired      = errors.New("токен просрочен")
	ErrTokenInvalid      = errors.New("невалидный токен")
	ErrTokenKindMismatch = errors.New("неверный тип токена")
)

type Claims struct {
	UserUUID  string    `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	accessTTL, err := cfg.AccessTTL()
	if err != nil {
		return nil, err
	}
	refreshTTL, err := cfg.RefreshTTL()
	if err != nil {
		return nil, err
	}

	return &JWTService{
		accessSecret:  []byte(cfg.AccessSecretKey),
		refreshSecret: []byte(cfg.RefreshSecretKey),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        cfg.Issuer,
	}, nil
}

func (service *JWTService) GenerateAccessToken(userUUID string) (string, error) {
	return service.generate(userUUID, AccessToken, service.accessTTL, service.accessSecret)
}

func (service *JWTService) GenerateRefreshToken(userUUID string) (string, error) {
	return service.generate(userUUID, RefreshToken, service.refreshTTL, service.refreshSecret)
}

// GenerateAccessRefreshTokens выпускает новую пару токенов для пользователя.
func (service *JWTService) GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, error) {
	accessToken, err := service.GenerateAccessToken(userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации access токена: %w", err)
	}

	refreshToken, err := service.GenerateRefreshToken(userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации refresh токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *JWTService) generate(userUUID string, tokenType TokenType, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		UserUUID:  userUUID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает каждый токен уникальным даже при выпуске
			// в одну и ту же секунду
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    service.issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

// Validate проверяет подпись и срок действия токена и возвращает его claims.
// Возвращает ErrTokenExpired для просроченного токена, ErrTokenKindMismatch
// для токена другого назначения и ErrTokenInvalid во всех остальных случаях.
func (service *JWTService) Validate(jwtTokenStr string, expected TokenType) (*Claims, error) {
	secret := service.accessSecret
	if expected == RefreshToken {
		secret = service.refreshSecret
	}

	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if jwtToken.Valid == false {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != expected {
		return nil, fmt.Errorf("%w: ожидался %s, получен %s", ErrTokenKindMismatch, expected, claims.TokenType)
	}

	return claims, nil
}
