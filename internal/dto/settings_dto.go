package dto

type ExpiryWarningDaysResponse struct {
	Days int `json:"days"`
}

type SetExpiryWarningDaysRequest struct {
	Days int `json:"days"`
}
