package auth

import (
	"context"
	"os"
	"time"

	autherrors "github.com/sohada-a2it/A2itHRMServer/internal/auth/errors"
	"github.com/sohada-a2it/A2itHRMServer/internal/rbac"
	"github.com/sohada-a2it/A2itHRMServer/internal/session"
	"github.com/sohada-a2it/A2itHRMServer/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// LoginContext carries request metadata recorded against the session.
type LoginContext struct {
	UserAgent  string
	IPAddress  string
	ClientType string
}

type Service interface {
	Login(ctx context.Context, email, password string, meta LoginContext) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error
}

type service struct {
	users    user.Repository
	rbac     rbac.Service
	sessions session.Service
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(users user.Repository, rbacService rbac.Service, sessions session.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:    users,
		rbac:     rbacService,
		sessions: sessions,
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) Login(ctx context.Context, email, password string, meta LoginContext) (string, string, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	role, err := s.primaryRole(ctx, u.ID.String())
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	// Warm the enforcer so the first authorized call does not pay the load.
	if err := s.rbac.ReloadPolicy(); err != nil {
		s.logger.Warn("policy reload on login failed", zap.Error(err))
	}

	accessToken, err := s.generateToken(u.ID.String(), role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u.ID.String(), role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	if _, err := s.sessions.Record(ctx, u.ID, meta.UserAgent, meta.IPAddress, meta.ClientType, refreshTokenTTL); err != nil {
		s.logger.Warn("session record failed", zap.Error(err), zap.String("user_id", u.ID.String()))
	}

	s.logger.Info("user logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("role", role),
		zap.String("client_type", meta.ClientType),
	)

	return accessToken, refreshToken, s.mapResponse(u, role), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(userID); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	role, err := s.primaryRole(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	newAccess, err := s.generateToken(userID, role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefresh, err := s.generateToken(userID, role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccess, newRefresh, s.mapResponse(u, role), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	role, err := s.primaryRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := s.mapResponse(u, role)
	return &resp, nil
}

func (s *service) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return s.sessions.RevokeAllForUser(ctx, userID)
}

// primaryRole picks the first assigned role, defaulting to "employee".
func (s *service) primaryRole(ctx context.Context, userID string) (string, error) {
	roles, err := s.users.FindRoleNames(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "employee", nil
	}
	return roles[0], nil
}

func (s *service) generateToken(userID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     s.now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func (s *service) mapResponse(u *user.User, role string) AuthResponse {
	return AuthResponse{
		ID:             u.ID.String(),
		EmployeeNumber: u.EmployeeNumber,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           role,
	}
}
