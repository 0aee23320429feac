package payroll

type CreatePayrollRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	BasicPay    int64  `json:"basic_pay" binding:"required"`
	OvertimePay int64  `json:"overtime_pay"`
}

type UpdatePayrollRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	BasicPay    int64  `json:"basic_pay" binding:"required"`
	OvertimePay int64  `json:"overtime_pay"`
}

type PayrollResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	BasicPay    int64  `json:"basic_pay"`
	OvertimePay int64  `json:"overtime_pay"`
	Deductions  int64  `json:"deductions"`
	NetPayable  int64  `json:"net_payable"`
	CreatedBy   string `json:"created_by"`
}
