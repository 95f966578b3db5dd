package pricing

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MetadataKey is the entity metadata entry holding a pricing profile.
const MetadataKey = "pricing"

// ProfileFromMetadata decodes the profile stored under MetadataKey. The bool
// is false when the metadata carries no pricing entry.
func ProfileFromMetadata(metadata map[string]any) (Profile, bool, error) {
	raw, ok := metadata[MetadataKey]
	if !ok || raw == nil {
		return Profile{}, false, nil
	}
	encoded, err := yaml.Marshal(raw)
	if err != nil {
		return Profile{}, true, fmt.Errorf("pricing: encode metadata: %w", err)
	}
	var profile Profile
	if err := yaml.Unmarshal(encoded, &profile); err != nil {
		return Profile{}, true, fmt.Errorf("pricing: decode metadata: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, true, err
	}
	return profile, true, nil
}
