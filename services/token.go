package services

import (
	"fmt"
	"time"

	"travelhub/constants"
	"travelhub/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

type UserInfo struct {
	UserId uuid.UUID      `json:"userid"`
	Role   constants.Role `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue ký access token HS256
func (s *TokenService) Issue(info UserInfo) (string, error) {
	now := time.Now()
	claims := Claims{
		UserInfo: info,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Subject:   info.UserId.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse kiểm tra chữ ký và hạn của token rồi trả về thông tin user
func (s *TokenService) Parse(tokenString string) (*UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}
	if claims.UserInfo.UserId == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy thông tin user trong token", nil)
	}
	return &claims.UserInfo, nil
}
