package cart

// LineView is a line item with its display amounts.
type LineView struct {
	ProductID       int      `json:"productId"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	ImgName         string   `json:"imgName"`
	Quantity        int      `json:"quantity"`
	Discount        *float64 `json:"discount,omitempty"`
	DiscountPercent int      `json:"discountPercent"`
	EffectivePrice  string   `json:"effectivePrice"`
	LineTotal       string   `json:"lineTotal"`
}

// View is the read-only surface consumers render: the items plus every
// derived total, rounded to two decimal places.
type View struct {
	CartItems     []LineView `json:"cartItems"`
	CartItemCount int        `json:"cartItemCount"`
	CartTotal     string     `json:"cartTotal"`
	ShippingCost  string     `json:"shippingCost"`
	FinalTotal    string     `json:"finalTotal"`
}

func NewView(c *Cart) View {
	items, totals := c.Snapshot()
	lines := make([]LineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineView{
			ProductID:       item.ProductID,
			Name:            item.Name,
			Price:           item.Price,
			ImgName:         item.ImgName,
			Quantity:        item.Quantity,
			Discount:        item.Discount,
			DiscountPercent: DiscountPercent(item),
			EffectivePrice:  FormatAmount(EffectivePrice(item)),
			LineTotal:       FormatAmount(LineTotal(item)),
		})
	}
	return View{
		CartItems:     lines,
		CartItemCount: totals.ItemCount,
		CartTotal:     FormatAmount(totals.Subtotal),
		ShippingCost:  FormatAmount(totals.ShippingCost),
		FinalTotal:    FormatAmount(totals.FinalTotal),
	}
}
