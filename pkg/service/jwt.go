package service

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "crm-console/pkg/errors"
)

type JwtCustomClaim struct {
	UserID   int    `json:"userId"`
	RoleID   int    `json:"roleId"`
	RoleName string `json:"roleName"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(userID, roleID int, roleName string) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	secretKey      string
	accessTokenExp time.Duration
	logger         *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:      secretKey,
		accessTokenExp: accessTokenExp,
		logger:         logger.Named("jwt"),
	}
}

func (s *jwtService) GenerateToken(userID, roleID int, roleName string) (string, error) {
	now := time.Now()
	claims := &JwtCustomClaim{
		UserID:   userID,
		RoleID:   roleID,
		RoleName: roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExp)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.secretKey))
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		s.logger.Debug("Ошибка парсинга или проверки подписи токена", zap.Error(err))
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, apperrors.ErrTokenNotYetValid
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// InspectToken читает claims без проверки подписи: консоль не знает секрета CRM API
// и использует их только для срока жизни сессии и id пользователя.
func InspectToken(tokenString string) (*JwtCustomClaim, error) {
	claims := &JwtCustomClaim{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
