package salaryrule

type CreateSalaryRuleRequest struct {
	Name     string  `json:"name" binding:"required"`
	RuleType string  `json:"rule_type" binding:"required,oneof=EARNING DEDUCTION"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

type UpdateSalaryRuleRequest struct {
	Name     string   `json:"name"`
	RuleType string   `json:"rule_type" binding:"omitempty,oneof=EARNING DEDUCTION"`
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	IsActive *bool    `json:"is_active"`
}

type SalaryRuleResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	RuleType  string  `json:"rule_type"`
	Amount    float64 `json:"amount"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}
