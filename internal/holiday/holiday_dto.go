package holiday

type CreateHolidayRequest struct {
	Name     string `json:"name" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=GOVT OTHER"`
	IsActive *bool  `json:"is_active"`
}

type UpdateHolidayRequest struct {
	Name     string `json:"name" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=GOVT OTHER"`
	IsActive *bool  `json:"is_active"`
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	IsActive bool   `json:"is_active"`
}
