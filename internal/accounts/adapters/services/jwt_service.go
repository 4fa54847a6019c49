package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/services"
	svc "goaccounts/internal/accounts/ports/services"
	"goaccounts/pkg/logger"
)

const (
	methodGenerateToken = "GenerateToken"
	methodParseToken    = "ParseToken"
	msgGeneratingToken  = "generating token"
	msgParsingToken     = "parsing token"
	msgTokenGenerated   = "token generated successfully"
	msgTokenParsed      = "token parsed successfully"
	msgEmptySecret      = "empty secret key provided"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
)

// Ошибки сервиса токенов.
var (
	ErrEmptySecret      = errors.New("empty secret key")
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrInvalidToken     = errors.New("invalid token")
)

// tokenClaims - представление claims для библиотеки JWT. Зарегистрированные claims не заполняются.
type tokenClaims struct {
	AccountID string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService на HS256.
type ServiceJWT struct {
	secretKey []byte
}

// NewJWT создает сервис JWT с общим секретом.
func NewJWT(secretKey string) svc.TokenService {
	return &ServiceJWT{secretKey: []byte(secretKey)}
}

// GenerateToken подписывает claims id, name и email.
func (s *ServiceJWT) GenerateToken(ctx context.Context, claims services.Claims) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("accountID", claims.ID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", fmt.Errorf("%s: %w", errCtxGeneratingToken, ErrEmptySecret)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		AccountID: claims.ID,
		Name:      claims.Name,
		Email:     claims.Email,
	})

	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenGenerated)
	return signed, nil
}

// ParseToken проверяет подпись и возвращает claims токена.
func (s *ServiceJWT) ParseToken(ctx context.Context, tokenString string) (*services.Claims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodParseToken))
	log.Debug(ctx, msgParsingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, ErrEmptySecret)
	}

	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, ErrInvalidToken, err)
	}

	parsed, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || parsed.AccountID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenParsed, zap.String("accountID", parsed.AccountID))
	return &services.Claims{
		ID:    parsed.AccountID,
		Name:  parsed.Name,
		Email: parsed.Email,
	}, nil
}
