package catalog

// Product is the catalog record the cart snapshots from. Discount is a
// fraction in [0,1); nil means the product sells at list price.
type Product struct {
	ProductID   int      `json:"productId" validate:"required,gt=0"`
	SupplierID  int      `json:"supplierId" validate:"gte=0"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	SKU         string   `json:"sku" validate:"required"`
	Unit        string   `json:"unit" validate:"required"`
	ImgName     string   `json:"imgName"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lt=1"`
}

func (p Product) clone() Product {
	if p.Discount != nil {
		d := *p.Discount
		p.Discount = &d
	}
	return p
}
