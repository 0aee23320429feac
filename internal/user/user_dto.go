package user

type CreateUserRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	JoinDate    string `json:"join_date"`
}

type UpdateUserRequest struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

type UpdateUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

type AssignRoleRequest struct {
	RoleName string `json:"role_name" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ForceResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UserResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Designation    string `json:"designation,omitempty"`
	Department     string `json:"department,omitempty"`
	JoinDate       string `json:"join_date,omitempty"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
}

type UserWithRolesResponse struct {
	UserResponse
	Roles []string `json:"roles"`
}
