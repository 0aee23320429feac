package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string    `gorm:"column:employee_number;type:varchar(20);uniqueIndex"`
	FullName       string    `gorm:"column:full_name;type:varchar(255);not null"`
	Email          string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Password       string    `gorm:"column:password;type:text;not null"`
	Phone          string    `gorm:"column:phone;type:varchar(30)"`
	Designation    string    `gorm:"column:designation;type:varchar(100)"`
	Department     string    `gorm:"column:department;type:varchar(100)"`
	JoinDate       time.Time `gorm:"column:join_date;type:date"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
