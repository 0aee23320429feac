package schedule

type UpdateWeeklyOffRequest struct {
	WeeklyOffDays []string `json:"weekly_off_days" binding:"required,min=0,dive,required"`
}

type UpsertOverrideRequest struct {
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date" binding:"required"`
	WeeklyOffDays []string `json:"weekly_off_days" binding:"required,dive,required"`
	IsActive      *bool    `json:"is_active"`
}

type WeeklyOffResponse struct {
	WeeklyOffDays []string `json:"weekly_off_days"`
	IsDefault     bool     `json:"is_default"`
}

type OverrideResponse struct {
	ID            string   `json:"id"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	WeeklyOffDays []string `json:"weekly_off_days"`
	IsActive      bool     `json:"is_active"`
}
