package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const keyPrefix = "storefront:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Keys should be prefixed by kind so different records cannot collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntityUUID is the id a seeded entity gets, so re-seeding the same fixture
// always targets the same record.
func EntityUUID(collection, slug string) uuid.UUID {
	collection = strings.ToLower(strings.TrimSpace(collection))
	slug = strings.TrimSpace(slug)
	if collection == "" || slug == "" {
		return uuid.Nil
	}
	return UUID(keyPrefix + "entity:" + collection + ":" + slug)
}
