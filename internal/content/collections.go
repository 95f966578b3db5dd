package content

import "strings"

// Collection names a group of entities and the fields that carry translatable text.
// The first field is the primary field used by the migration skip check.
type Collection struct {
	Name   string
	Fields []string
}

// PrimaryField returns the first declared field, or "".
func (c Collection) PrimaryField() string {
	if len(c.Fields) == 0 {
		return ""
	}
	return c.Fields[0]
}

const (
	CollectionProducts          = "products"
	CollectionGalleryImages     = "galleryImages"
	CollectionGalleryCategories = "galleryCategories"
)

// DefaultCollections returns the collection presets shipped with the storefront.
func DefaultCollections() []Collection {
	return []Collection{
		{Name: CollectionProducts, Fields: []string{"description", "seoTitle", "seoDescription"}},
		{Name: CollectionGalleryImages, Fields: []string{"title", "description", "project", "location"}},
		{Name: CollectionGalleryCategories, Fields: []string{"name", "description"}},
	}
}

// FindCollection looks name up in collections, ignoring case.
func FindCollection(collections []Collection, name string) (Collection, bool) {
	name = strings.TrimSpace(name)
	for _, c := range collections {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Collection{}, false
}
