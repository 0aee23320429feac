package attendance

type AdminCorrectRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=PRESENT ABSENT LEAVE GOVT_HOLIDAY OFF_DAY WEEKLY_OFF"`
	Notes      *string `json:"notes"`
}

type SummaryFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	From       string `form:"from" binding:"required"`
	To         string `form:"to" binding:"required"`
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	Status     string  `json:"status"`
	ClockIn    *string `json:"clock_in,omitempty"`
	ClockOut   *string `json:"clock_out,omitempty"`
	Source     string  `json:"source"`
	Notes      *string `json:"notes,omitempty"`
}

type SummaryResponse struct {
	EmployeeID string           `json:"employee_id"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Counts     map[string]int64 `json:"counts"`
}
