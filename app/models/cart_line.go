package models

import "github.com/shopspring/decimal"

// Sale is the payload an on-sale cart line carries in addition to its
// list price. A regular line carries no Sale at all, so a line can
// never claim the on-sale kind while missing its current price.
type Sale struct {
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
}

// CartLine is one product-and-quantity pairing stored in the cart.
// QuantityRequested is the shopper's requested amount, which is a
// different thing from the catalog's StockOnHand.
type CartLine struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug,omitempty"`
	Kind              VariantKind     `json:"kind"`
	ListPrice         decimal.Decimal `json:"list_price"`
	Sale              *Sale           `json:"sale,omitempty"`
	QuantityRequested int             `json:"quantity_requested"`
	ImageRef          string          `json:"image_ref,omitempty"`
}

// LineFromProduct builds a cart line for qty units of p. Products
// tagged on-sale without a valid current price degrade to regular
// lines rather than carrying a broken sale payload.
func LineFromProduct(p *Product, qty int) CartLine {
	line := CartLine{
		ProductID:         p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		Kind:              VariantRegular,
		ListPrice:         p.ListPrice,
		QuantityRequested: qty,
	}
	if len(p.ProductImages) > 0 {
		line.ImageRef = p.ProductImages[0].AssetRef
	}
	if p.OnSale() {
		line.Kind = VariantOnSale
		line.Sale = &Sale{
			DiscountPercent: p.DiscountPercent,
			CurrentPrice:    p.SalePrice,
		}
	}
	return line
}
