package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
)

var (
	ErrInvalidCredentials    = errors.New("invalid password")
	ErrPasswordNotConfigured = errors.New("admin password not configured")
	ErrInvalidToken          = errors.New("invalid or expired token")
)

type Claims struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// LoginResult carries a session token only for the admin. Everyone else is
// let through with an empty token.
type LoginResult struct {
	IsAdmin   bool
	Token     string
	ExpiresAt time.Time
}

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*LoginResult, error)
	ValidateToken(token string) (*Claims, error)
	Admin() domain.AdminIdentity
	IsReserved(nickname, email string) bool
}

type service struct {
	cfg          *config.Config
	passwordHash []byte
	reserved     domain.ReservedIdentities
	admin        domain.AdminIdentity
}

func NewService(cfg *config.Config) Service {
	s := &service{
		cfg:      cfg,
		reserved: append(domain.ReservedIdentities{cfg.AdminNickname, cfg.AdminEmail}, cfg.AdminAliases...),
		admin: domain.AdminIdentity{
			Nickname: cfg.AdminNickname,
			Email:    cfg.AdminEmail,
			Website:  cfg.AdminWebsite,
			Avatar:   cfg.AdminAvatar,
		},
	}

	switch {
	case cfg.AdminPasswordHash != "":
		s.passwordHash = []byte(cfg.AdminPasswordHash)
	case cfg.AdminPassword != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Warning: could not hash admin password: %v", err)
			break
		}
		s.passwordHash = hash
	}

	return s
}

func (s *service) Admin() domain.AdminIdentity {
	return s.admin
}

func (s *service) IsReserved(nickname, email string) bool {
	return s.reserved.Matches(nickname, email)
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*LoginResult, error) {
	if !s.reserved.Matches(input.Nickname, input.Email) {
		return &LoginResult{IsAdmin: false}, nil
	}

	if len(s.passwordHash) == 0 {
		return nil, ErrPasswordNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken()
}

func (s *service) issueToken() (*LoginResult, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.JWTExpiry)
	claims := &Claims{
		Nickname: s.admin.Nickname,
		Email:    s.admin.Email,
		IsAdmin:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   s.admin.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &LoginResult{IsAdmin: true, Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.IsAdmin {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
