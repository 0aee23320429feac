package salaryrule

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rule *SalaryRule) error
	FindAll(ctx context.Context) ([]SalaryRule, error)
	FindByID(ctx context.Context, id string) (*SalaryRule, error)
	Update(ctx context.Context, rule *SalaryRule) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *SalaryRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindAll(ctx context.Context) ([]SalaryRule, error) {
	var rules []SalaryRule
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rules).Error
	return rules, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryRule, error) {
	var rule SalaryRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	return &rule, err
}

func (r *repository) Update(ctx context.Context, rule *SalaryRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SalaryRule{}, "id = ?", id).Error
}
