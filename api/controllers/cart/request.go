package cart

// AddItemRequest adds quantity units of a catalog product. A quantity of
// zero or less leaves the cart unchanged.
type AddItemRequest struct {
	ProductID int  `json:"productId" validate:"gt=0"`
	Quantity  *int `json:"quantity" validate:"required"`
}

// UpdateItemRequest sets the absolute quantity of a line; zero or less
// removes it.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
