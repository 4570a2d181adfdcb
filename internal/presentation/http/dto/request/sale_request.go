package request

// FinalizeSaleItem is one checkout line of a finalize request.
type FinalizeSaleItem struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

// FinalizeSaleRequest represents the request to finalize a sale
type FinalizeSaleRequest struct {
	Total         float64            `json:"total" binding:"required,gt=0"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=dinheiro debito credito pix"`
	Items         []FinalizeSaleItem `json:"items" binding:"required,min=1,dive"`
	// Atomic requests server-side transactional processing instead of the
	// default sequential writes.
	Atomic bool `json:"atomic"`
}

// ListSalesRequest holds the query filters for listing sales.
type ListSalesRequest struct {
	Status    string `form:"status" binding:"omitempty,oneof=aberta finalizada cancelada"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// SalesSummaryRequest holds the query parameters for the sales summary.
type SalesSummaryRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=hoje ontem semana mes"`
}
