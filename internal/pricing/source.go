package pricing

// Source is the pricing rule selected for one resolution. It is one of
// Anonymous, NamedTier, CustomDiscount or PerUserOverride.
type Source interface {
	sourceName() string
}

// Anonymous prices at the base price. It covers visitors without a user
// context and users for whom no other rule applies.
type Anonymous struct{}

// NamedTier prices at the profile's price for Tier.
type NamedTier struct {
	Tier  Tier
	Price float64
}

// CustomDiscount takes Percent off the base price.
type CustomDiscount struct {
	Percent float64
}

// PerUserOverride uses a price negotiated for one user.
type PerUserOverride struct {
	UserID string
	Price  float64
}

func (Anonymous) sourceName() string       { return "base" }
func (NamedTier) sourceName() string       { return "tier" }
func (CustomDiscount) sourceName() string  { return "custom_discount" }
func (PerUserOverride) sourceName() string { return "override" }

// SourceName returns a short identifier for s, used in logs and CLI output.
func SourceName(s Source) string {
	if s == nil {
		return Anonymous{}.sourceName()
	}
	return s.sourceName()
}

// SelectSource applies the precedence override > named tier > custom
// discount > base.
func SelectSource(profile Profile, user *UserContext) Source {
	if user == nil {
		return Anonymous{}
	}
	if price, ok := profile.Override(user.UserID); ok {
		return PerUserOverride{UserID: user.UserID, Price: price}
	}

	switch {
	case user.Tier.Named():
		if price, ok := profile.TierPrice(user.Tier); ok {
			return NamedTier{Tier: user.Tier, Price: price}
		}
	case user.Tier == TierCustom:
		if user.DiscountPercent > 0 && user.DiscountPercent <= 100 && profile.BasePrice > 0 {
			return CustomDiscount{Percent: user.DiscountPercent}
		}
	}
	return Anonymous{}
}
