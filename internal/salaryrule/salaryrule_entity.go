package salaryrule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeEarning   = "EARNING"
	TypeDeduction = "DEDUCTION"
)

type SalaryRule struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	RuleType  string         `gorm:"column:rule_type;type:varchar(20);not null"`
	Amount    float64        `gorm:"column:amount;type:numeric(12,2);not null"`
	IsActive  bool           `gorm:"column:is_active;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (SalaryRule) TableName() string {
	return "salary_rules"
}
