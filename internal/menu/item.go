// Package menu decides how many navigation items fit in a bar and which ones
// collapse into the overflow ("more") dropdown.
//
// The package never touches a rendering surface. Geometry comes in through a
// MeasureFunc and everything else is arithmetic over the measured widths.
package menu

import (
	"errors"
	"fmt"
)

// Item is one navigation entry. Order in a slice of items is significant:
// earlier items are preferred to stay visible.
type Item struct {
	ID   string `yaml:"id" toml:"id"`
	Name string `yaml:"name" toml:"name"`
	Href string `yaml:"href" toml:"href"`
}

var (
	ErrEmptyID     = errors.New("menu item id is empty")
	ErrEmptyName   = errors.New("menu item name is empty")
	ErrDuplicateID = errors.New("duplicate menu item id")
)

// Validate checks a single item.
func (it Item) Validate() error {
	if it.ID == "" {
		return ErrEmptyID
	}
	if it.Name == "" {
		return fmt.Errorf("%w (id %q)", ErrEmptyName, it.ID)
	}
	return nil
}

// ValidateItems checks every item and rejects duplicate ids.
func ValidateItems(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("item %d: %w: %q", i, ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// DefaultItems is the built-in menu used when no other source has items.
func DefaultItems() []Item {
	return []Item{
		{ID: "home", Name: "Home", Href: "/"},
		{ID: "docs", Name: "Documentation", Href: "/docs"},
		{ID: "guides", Name: "Guides", Href: "/guides"},
		{ID: "api", Name: "API Reference", Href: "/api"},
		{ID: "blog", Name: "Blog", Href: "/blog"},
		{ID: "community", Name: "Community", Href: "/community"},
		{ID: "changelog", Name: "Changelog", Href: "/changelog"},
		{ID: "about", Name: "About", Href: "/about"},
	}
}
