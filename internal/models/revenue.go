package models

// MonthlyRevenue is one month's revenue total in minor units
type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}
