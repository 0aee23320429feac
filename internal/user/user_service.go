package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/rbac"
	"github.com/sohada-a2it/A2itHRMServer/internal/shared/counter"
	usererrors "github.com/sohada-a2it/A2itHRMServer/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const employeeNumberCounter = "employee_number"

// RoleDirectory is the slice of the rbac store needed for role assignment.
type RoleDirectory interface {
	GetRoleByName(name string) (*rbac.RoleRow, error)
	AssignUserRole(userID, roleID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserWithRolesResponse, error)
	GetByID(ctx context.Context, id string) (UserWithRolesResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	SetStatus(ctx context.Context, id string, isActive bool) (UserResponse, error)
	AssignRole(ctx context.Context, id, roleName string) error
	ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error
	ForceResetPassword(ctx context.Context, id, newPassword string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	roles    RoleDirectory
	counters counter.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, roles RoleDirectory, counters counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, roles: roles, counters: counters, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	var joinDate time.Time
	if req.JoinDate != "" {
		joinDate, err = time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidJoinDate
		}
	}

	seq, err := s.counters.GetNextValue(ctx, employeeNumberCounter)
	if err != nil {
		s.logger.Error("employee number allocation failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:             uuid.New(),
		EmployeeNumber: fmt.Sprintf("EMP-%04d", seq),
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       string(hashed),
		Phone:          req.Phone,
		Designation:    req.Designation,
		Department:     req.Department,
		JoinDate:       joinDate,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return UserResponse{}, usererrors.ErrUserAlreadyExists
		}
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("employee_number", u.EmployeeNumber),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserWithRolesResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserWithRolesResponse, 0, len(users))
	for _, u := range users {
		roles, err := s.repo.FindRoleNames(ctx, u.ID.String())
		if err != nil {
			return nil, err
		}
		resp = append(resp, UserWithRolesResponse{
			UserResponse: mapToResponse(u),
			Roles:        roles,
		})
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserWithRolesResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserWithRolesResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserWithRolesResponse{}, usererrors.ErrUserNotFound
		}
		return UserWithRolesResponse{}, err
	}

	roles, err := s.repo.FindRoleNames(ctx, id)
	if err != nil {
		return UserWithRolesResponse{}, err
	}

	return UserWithRolesResponse{
		UserResponse: mapToResponse(*u),
		Roles:        roles,
	}, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.Designation != "" {
		u.Designation = req.Designation
	}
	if req.Department != "" {
		u.Department = req.Department
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) SetStatus(ctx context.Context, id string, isActive bool) (UserResponse, error) {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("user status changed",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return mapToResponse(*u), nil
}

func (s *service) AssignRole(ctx context.Context, id, roleName string) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	role, err := s.roles.GetRoleByName(roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrRoleNotFound
		}
		return err
	}

	if err := s.roles.AssignUserRole(id, role.ID); err != nil {
		return err
	}

	s.logger.Info("role assigned",
		zap.String("user_id", id),
		zap.String("role", roleName),
	)
	return nil
}

func (s *service) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

func (s *service) ForceResetPassword(ctx context.Context, id, newPassword string) error {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info("password force reset", zap.String("user_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findUser(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID.String(),
		EmployeeNumber: u.EmployeeNumber,
		FullName:       u.FullName,
		Email:          u.Email,
		Phone:          u.Phone,
		Designation:    u.Designation,
		Department:     u.Department,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
	if !u.JoinDate.IsZero() {
		resp.JoinDate = u.JoinDate.Format("2006-01-02")
	}
	return resp
}
