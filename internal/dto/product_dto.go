package dto

type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Manufacturer  *string `json:"manufacturer"`
	ZoneID        *string `json:"zone_id" validate:"omitempty,uuid"`
	Unit          *string `json:"unit"`
	Spec          *string `json:"spec"`
	OriginCountry *string `json:"origin_country"`
	ExpiryDate    *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	PhotoRef      *string `json:"photo_ref"`
	// InitialStock, when positive, records a first stock-in entry right after
	// the inventory row is created at zero.
	InitialStock *int `json:"initial_stock" validate:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Manufacturer  *string `json:"manufacturer"`
	ZoneID        *string `json:"zone_id" validate:"omitempty,uuid"`
	Unit          *string `json:"unit"`
	Spec          *string `json:"spec"`
	OriginCountry *string `json:"origin_country"`
	ExpiryDate    *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	PhotoRef      *string `json:"photo_ref"`
}

type ArchiveProductRequest struct {
	Reason string `json:"reason"`
}

// DeleteProductRequest is the body of POST /api/admin/products/delete.
type DeleteProductRequest struct {
	ProductID   string `json:"product_id"`
	ConfirmName string `json:"confirm_name"`
}

type ProductFilter struct {
	Query  string `form:"q"`
	ZoneID string `form:"zone_id"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type ProductResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Manufacturer  *string `json:"manufacturer"`
	ZoneID        *string `json:"zone_id"`
	ZoneName      *string `json:"zone_name"`
	Unit          *string `json:"unit"`
	Spec          *string `json:"spec"`
	OriginCountry *string `json:"origin_country"`
	ExpiryDate    *string `json:"expiry_date"`
	PhotoURL      *string `json:"photo_url"`
	Active        bool    `json:"active"`
	ArchiveReason *string `json:"archive_reason,omitempty"`
	ArchivedAt    *string `json:"archived_at,omitempty"`
	Stock         int     `json:"stock"`
	// ExpiryStatus is the derived badge: none | approaching | expired.
	ExpiryStatus string `json:"expiry_status"`
	DaysLeft     *int   `json:"days_left,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type ZoneResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sort_order"`
}
