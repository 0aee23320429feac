package salaryrule

import (
	"context"
	"errors"
	"time"

	salaryruleerrors "github.com/sohada-a2it/A2itHRMServer/internal/salaryrule/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateSalaryRuleRequest) (SalaryRuleResponse, error)
	GetAll(ctx context.Context) ([]SalaryRuleResponse, error)
	GetByID(ctx context.Context, id string) (SalaryRuleResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryRuleRequest) (SalaryRuleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryrule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryrule.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateSalaryRuleRequest) (SalaryRuleResponse, error) {
	rule := &SalaryRule{
		ID:       uuid.New(),
		Name:     req.Name,
		RuleType: req.RuleType,
		Amount:   req.Amount,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return SalaryRuleResponse{}, salaryruleerrors.ErrDuplicateRuleName
		}
		s.logger.Error("create salary rule failed", zap.Error(err))
		return SalaryRuleResponse{}, err
	}

	s.logger.Info("salary rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("rule_type", rule.RuleType),
	)
	return mapToResponse(*rule), nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryRuleResponse, error) {
	rules, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SalaryRuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, mapToResponse(rule))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryRuleResponse, error) {
	rule, err := s.findRule(ctx, id)
	if err != nil {
		return SalaryRuleResponse{}, err
	}
	return mapToResponse(*rule), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSalaryRuleRequest) (SalaryRuleResponse, error) {
	rule, err := s.findRule(ctx, id)
	if err != nil {
		return SalaryRuleResponse{}, err
	}

	if req.Name != "" {
		rule.Name = req.Name
	}
	if req.RuleType != "" {
		rule.RuleType = req.RuleType
	}
	if req.Amount != nil {
		rule.Amount = *req.Amount
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return SalaryRuleResponse{}, salaryruleerrors.ErrDuplicateRuleName
		}
		return SalaryRuleResponse{}, err
	}
	return mapToResponse(*rule), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findRule(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findRule(ctx context.Context, id string) (*SalaryRule, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, salaryruleerrors.ErrInvalidRuleID
	}

	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salaryruleerrors.ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

func mapToResponse(rule SalaryRule) SalaryRuleResponse {
	return SalaryRuleResponse{
		ID:        rule.ID.String(),
		Name:      rule.Name,
		RuleType:  rule.RuleType,
		Amount:    rule.Amount,
		IsActive:  rule.IsActive,
		CreatedAt: rule.CreatedAt.Format(time.RFC3339),
	}
}
