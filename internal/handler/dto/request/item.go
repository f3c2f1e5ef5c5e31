package request

type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}
