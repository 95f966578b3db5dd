package pricing

import "testing"

func TestProfileFromMetadata(t *testing.T) {
	metadata := map[string]any{
		"pricing": map[string]any{
			"base":      1000,
			"tiers":     map[string]any{"premium": 850, "vip": 700.5},
			"overrides": map[string]any{"user-42": 600},
		},
	}

	profile, ok, err := ProfileFromMetadata(metadata)
	if err != nil || !ok {
		t.Fatalf("expected profile, got ok=%v err=%v", ok, err)
	}
	if profile.BasePrice != 1000 || profile.TierPrices[TierVIP] != 700.5 {
		t.Fatalf("unexpected profile %+v", profile)
	}

	result := Resolve(profile, &UserContext{UserID: "user-42", Tier: TierPremium})
	if result.Price != 600 {
		t.Fatalf("expected override from metadata, got %v", result.Price)
	}
}

func TestProfileFromMetadataMissingOrInvalid(t *testing.T) {
	if _, ok, err := ProfileFromMetadata(map[string]any{"color": "oak"}); ok || err != nil {
		t.Fatalf("expected no profile, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := ProfileFromMetadata(nil); ok || err != nil {
		t.Fatalf("expected no profile for nil metadata, got ok=%v err=%v", ok, err)
	}

	bad := map[string]any{"pricing": map[string]any{"base": -5}}
	if _, ok, err := ProfileFromMetadata(bad); !ok || err == nil {
		t.Fatalf("expected validation error, got ok=%v err=%v", ok, err)
	}
}
