package domain

// StageCount is one bucket of the deals-by-stage breakdown.
type StageCount struct {
	Stage DealStage `json:"stage"`
	Count int       `json:"count"`
}

// DashboardStats is the aggregate returned by the backend dashboard endpoint.
type DashboardStats struct {
	TotalContacts  int          `json:"total_contacts"`
	TotalCompanies int          `json:"total_companies"`
	TotalDeals     int          `json:"total_deals"`
	TotalTasks     int          `json:"total_tasks"`
	DealsByStage   []StageCount `json:"deals_by_stage"`
	TotalDealValue float64      `json:"total_deal_value"`
	WonDealsValue  float64      `json:"won_deals_value"`
	PendingTasks   int          `json:"pending_tasks"`
	OverdueTasks   int          `json:"overdue_tasks"`
}
