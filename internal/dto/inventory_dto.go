package dto

type AdjustStockRequest struct {
	// Delta is the signed adjustment: positive = stock-in, negative =
	// stock-out. Zero is rejected before any database work.
	Delta int     `json:"delta"`
	Note  *string `json:"note"`
}

type InventoryResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

type LogEntryResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Delta       int     `json:"delta"`
	BeforeStock int     `json:"before_stock"`
	AfterStock  int     `json:"after_stock"`
	Note        *string `json:"note"`
	Kind        string  `json:"kind"` // IN | OUT | ADJUST
	CreatedBy   string  `json:"created_by"`
	ActorLabel  string  `json:"actor_label"`
	CreatedAt   string  `json:"created_at"`
}

type LogListResponse struct {
	Data []LogEntryResponse `json:"data"`
}
