package draft

import (
	"fmt"
	"strings"
)

// Category is the release category chosen when the draft is created.
type Category string

const (
	CategorySingle    Category = "single"
	CategoryAlbum     Category = "album"
	CategoryEP        Category = "ep"
	CategoryMiniAlbum Category = "miniAlbum"
	CategoryRingtone  Category = "ringtone"
)

var allCategories = []Category{
	CategorySingle,
	CategoryAlbum,
	CategoryEP,
	CategoryMiniAlbum,
	CategoryRingtone,
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{}, len(allCategories))
	for _, category := range allCategories {
		set[category] = struct{}{}
	}
	return set
}()

// Categories returns every valid category in declaration order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether the category is a member of the closed enumeration.
func (c Category) Valid() bool {
	_, ok := categorySet[c]
	return ok
}

// SingleTrack reports whether the category caps the draft at one track.
func (c Category) SingleTrack() bool {
	return c == CategorySingle || c == CategoryRingtone
}

// MaxTracks returns the track capacity for the category; 0 means unbounded.
func (c Category) MaxTracks() int {
	if c.SingleTrack() {
		return 1
	}
	return 0
}

// ParseCategory converts user input to a Category.
func ParseCategory(value string) (Category, error) {
	category := Category(strings.TrimSpace(value))
	if !category.Valid() {
		return "", fmt.Errorf("unknown release category %q", value)
	}
	return category, nil
}
