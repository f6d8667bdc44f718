package cart

import "github.com/octocat-supply/storefront/internal/catalog"

// LineItem is one cart entry. Name, Price, ImgName and Discount are a
// snapshot of the product taken when it was first added and are never
// refreshed afterwards.
type LineItem struct {
	ProductID int      `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	ImgName   string   `json:"imgName"`
	Quantity  int      `json:"quantity"`
	Discount  *float64 `json:"discount,omitempty"`
}

func newLineItem(p catalog.Product, quantity int) LineItem {
	item := LineItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		ImgName:   p.ImgName,
		Quantity:  quantity,
	}
	if p.Discount != nil {
		d := *p.Discount
		item.Discount = &d
	}
	return item
}

func (i LineItem) clone() LineItem {
	if i.Discount != nil {
		d := *i.Discount
		i.Discount = &d
	}
	return i
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}
