package cart

import "github.com/shopspring/decimal"

var (
	DefaultFreeShippingThreshold = decimal.RequireFromString("100.00")
	DefaultShippingFee           = decimal.RequireFromString("25.00")
)

// Pricing holds the shipping rule applied to a subtotal.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		ShippingFee:           DefaultShippingFee,
	}
}

// ShippingFor returns the fee owed on subtotal. Reaching the threshold
// exactly qualifies for free shipping.
func (p Pricing) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFee
}

// Totals is a consistent snapshot of every derived cart value. Amounts
// carry full precision; round with FormatAmount for display.
type Totals struct {
	ItemCount    int
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	FinalTotal   decimal.Decimal
}

// EffectivePrice is the unit price after the snapshotted discount.
func EffectivePrice(item LineItem) decimal.Decimal {
	price := decimal.NewFromFloat(item.Price)
	if item.Discount == nil || *item.Discount == 0 {
		return price
	}
	return price.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(*item.Discount)))
}

func LineTotal(item LineItem) decimal.Decimal {
	return EffectivePrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func ComputeTotals(items []LineItem, pricing Pricing) Totals {
	totals := Totals{Subtotal: decimal.Zero}
	for _, item := range items {
		totals.ItemCount += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(LineTotal(item))
	}
	totals.ShippingCost = pricing.ShippingFor(totals.Subtotal)
	totals.FinalTotal = totals.Subtotal.Add(totals.ShippingCost)
	return totals
}

// FormatAmount renders an amount with two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// DiscountPercent is the whole-number percentage shown next to a
// discounted line, 0 when the item has no discount.
func DiscountPercent(item LineItem) int {
	if item.Discount == nil {
		return 0
	}
	return int(decimal.NewFromFloat(*item.Discount).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
