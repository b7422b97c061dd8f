package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/petes-coffee/api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// StaffClaims 店员令牌声明
type StaffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// StaffAuthService 店员口令认证服务。
// 单一共享口令，支持明文或 bcrypt 哈希（$2 前缀）配置。
type StaffAuthService struct {
	cfg *config.StaffConfig
}

// NewStaffAuthService 创建店员认证服务
func NewStaffAuthService(cfg *config.StaffConfig) *StaffAuthService {
	return &StaffAuthService{cfg: cfg}
}

// Login 校验口令并签发令牌
func (s *StaffAuthService) Login(password string) (string, time.Time, error) {
	if err := s.verifyPassword(password); err != nil {
		return "", time.Time{}, err
	}
	return s.generateToken()
}

// ParseToken 解析并校验店员令牌
func (s *StaffAuthService) ParseToken(tokenString string) (*StaffClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*StaffClaims); ok && token.Valid && claims.Role == "staff" {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

func (s *StaffAuthService) verifyPassword(password string) error {
	configured := s.cfg.Password
	if strings.HasPrefix(configured, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(configured), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(configured), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *StaffAuthService) generateToken() (string, time.Time, error) {
	expireHours := s.cfg.TokenExpireHours
	if expireHours <= 0 {
		expireHours = 12
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)

	claims := StaffClaims{
		Role: "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
