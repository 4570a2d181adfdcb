package request

// ListProductsRequest holds the query filters for listing products.
type ListProductsRequest struct {
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PerPage         int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Search          string `form:"search"`
	SaleType        string `form:"sale_type" binding:"omitempty,oneof=unidade peso hibrido"`
	OnlyInStock     bool   `form:"in_stock"`
	IncludeInactive bool   `form:"include_inactive"`
}
