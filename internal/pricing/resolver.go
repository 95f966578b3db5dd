package pricing

import (
	"math"
	"strconv"
)

// LabelCustomPrice is the tier label reported for per-user overrides.
const LabelCustomPrice = "Custom Price"

// Result is the effective price for one product and visitor. OriginalPrice
// and DiscountAmount are set only when a non-base rule applied and the
// product has a base price.
type Result struct {
	Price          float64  `json:"price"`
	OriginalPrice  *float64 `json:"original_price,omitempty"`
	DiscountAmount *float64 `json:"discount_amount,omitempty"`
	TierLabel      string   `json:"tier_label,omitempty"`
	Source         Source   `json:"-"`
}

// Resolve returns the effective price of profile for user. Prices are not
// clamped: an override above the base price yields a negative discount.
func Resolve(profile Profile, user *UserContext) Result {
	source := SelectSource(profile, user)

	var result Result
	switch s := source.(type) {
	case PerUserOverride:
		result = Result{Price: s.Price, TierLabel: LabelCustomPrice}
	case NamedTier:
		result = Result{Price: s.Price, TierLabel: s.Tier.Label()}
	case CustomDiscount:
		result = Result{
			Price:     profile.BasePrice - profile.BasePrice*s.Percent/100,
			TierLabel: "Custom " + formatPercent(s.Percent) + "% Off",
		}
	default:
		return Result{Price: profile.BasePrice, Source: Anonymous{}}
	}

	result.Source = source
	if profile.BasePrice > 0 {
		original := profile.BasePrice
		discount := original - result.Price
		result.OriginalPrice = &original
		result.DiscountAmount = &discount
	}
	return result
}

// Product pairs an identifier with its pricing profile.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Profile Profile `json:"pricing"`
}

// PricedProduct is a Product with its resolved price.
type PricedProduct struct {
	Product
	Result Result `json:"result"`
}

// ApplyToCatalog resolves every product for user. The input is not modified.
func ApplyToCatalog(products []Product, user *UserContext) []PricedProduct {
	out := make([]PricedProduct, len(products))
	for i, p := range products {
		out[i] = PricedProduct{Product: p, Result: Resolve(p.Profile, user)}
	}
	return out
}

// HasSpecialPricing reports whether user carries a tier or a discount.
func HasSpecialPricing(user *UserContext) bool {
	if user == nil {
		return false
	}
	return user.Tier != TierNone || user.DiscountPercent != 0
}

// DiscountPercentage returns the discount as a rounded percentage of the
// original price, or 0 when either value is missing or zero.
func DiscountPercentage(r Result) int {
	if r.OriginalPrice == nil || r.DiscountAmount == nil || *r.OriginalPrice == 0 || *r.DiscountAmount == 0 {
		return 0
	}
	return int(math.Round(*r.DiscountAmount / *r.OriginalPrice * 100))
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
