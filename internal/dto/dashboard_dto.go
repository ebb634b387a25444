package dto

type ZoneCount struct {
	ZoneID string `json:"zone_id"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

type DashboardSummaryResponse struct {
	TotalProducts  int64              `json:"total_products"`
	ZoneCounts     []ZoneCount        `json:"zone_counts"`
	UnzonedCount   int64              `json:"unzoned_count"`
	RecentActivity []LogEntryResponse `json:"recent_activity"`
}

// ExpiryAlert is one product flagged by the periodic expiry scan.
type ExpiryAlert struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	ExpiryDate string `json:"expiry_date"`
	DaysLeft   int    `json:"days_left"`
	Status     string `json:"status"` // approaching | expired
}

type ExpiryAlertsResponse struct {
	GeneratedAt string        `json:"generated_at"`
	Alerts      []ExpiryAlert `json:"alerts"`
}
