package pricing

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Tier selects a pricing category for a user.
type Tier string

const (
	TierNone     Tier = ""
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierVIP      Tier = "vip"
	TierCustom   Tier = "custom"
)

// ErrUnknownTier is returned by ParseTier for unrecognised values.
var ErrUnknownTier = errors.New("pricing: unknown tier")

// ParseTier parses a tier name. Blank input and "none" map to TierNone.
func ParseTier(value string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(value))); t {
	case TierNone, "none":
		return TierNone, nil
	case TierStandard, TierPremium, TierVIP, TierCustom:
		return t, nil
	default:
		return TierNone, fmt.Errorf("%w: %q", ErrUnknownTier, value)
	}
}

// Named reports whether t has its own price column on a Profile.
func (t Tier) Named() bool {
	switch t {
	case TierStandard, TierPremium, TierVIP:
		return true
	default:
		return false
	}
}

// Label returns the display name of a named tier.
func (t Tier) Label() string {
	switch t {
	case TierStandard:
		return "Standard"
	case TierPremium:
		return "Premium"
	case TierVIP:
		return "VIP"
	case TierCustom:
		return "Custom"
	default:
		return ""
	}
}

// Profile holds the pricing inputs for one product. A zero BasePrice means the
// product has no base price.
type Profile struct {
	BasePrice  float64            `json:"base_price" yaml:"base"`
	TierPrices map[Tier]float64   `json:"tier_prices,omitempty" yaml:"tiers,omitempty"`
	Overrides  map[string]float64 `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// TierPrice returns the price configured for a named tier.
func (p Profile) TierPrice(t Tier) (float64, bool) {
	if !t.Named() || p.TierPrices == nil {
		return 0, false
	}
	price, ok := p.TierPrices[t]
	return price, ok
}

// Override returns the explicit price negotiated for userID.
func (p Profile) Override(userID string) (float64, bool) {
	if userID == "" || p.Overrides == nil {
		return 0, false
	}
	price, ok := p.Overrides[userID]
	return price, ok
}

// Validate checks that the base price is not negative and that tier prices
// only use named tiers.
func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BasePrice, validation.Min(0.0)),
		validation.Field(&p.TierPrices, validation.By(func(value any) error {
			for tier := range p.TierPrices {
				if !tier.Named() {
					return validation.NewError("validation_tier_unknown", fmt.Sprintf("tier %q has no price column", tier))
				}
			}
			return nil
		})),
	)
}

// UserContext describes the visitor being priced. A nil *UserContext is an
// anonymous visitor.
type UserContext struct {
	UserID          string  `json:"user_id" yaml:"user_id"`
	Tier            Tier    `json:"tier,omitempty" yaml:"tier,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty" yaml:"discount_percent,omitempty"`
}

// Validate checks the user context. The discount must be within 0..100 and
// is required for the custom tier.
func (u UserContext) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.UserID, validation.Required),
		validation.Field(&u.Tier, validation.In(TierNone, TierStandard, TierPremium, TierVIP, TierCustom)),
		validation.Field(&u.DiscountPercent,
			validation.Min(0.0),
			validation.Max(100.0),
			validation.When(u.Tier == TierCustom, validation.Required),
		),
	)
}
