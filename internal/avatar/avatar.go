// Package avatar builds a learner's avatar from one option per category.
package avatar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownOption is returned for an option ID not in the catalog.
	ErrUnknownOption = errors.New("unknown avatar option")
	// ErrIncomplete is returned when a category has no selection.
	ErrIncomplete = errors.New("avatar incomplete")
)

// Category is one part of the avatar.
type Category string

const (
	CategoryFace        Category = "face"
	CategoryHair        Category = "hair"
	CategoryAccessories Category = "accessories"
	CategoryColor       Category = "color"
	CategoryExpression  Category = "expression"
)

// Categories returns every category in the fixed display order.
func Categories() []Category {
	return []Category{CategoryFace, CategoryHair, CategoryAccessories, CategoryColor, CategoryExpression}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFace:
		return "Face"
	case CategoryHair:
		return "Hair"
	case CategoryAccessories:
		return "Accessories"
	case CategoryColor:
		return "Color"
	case CategoryExpression:
		return "Expression"
	default:
		return string(c)
	}
}

// Option is one selectable part.
type Option struct {
	ID       string
	Src      string
	Alt      string
	Category Category
}

// Catalog is the set of options a learner picks from.
type Catalog []Option

// DefaultCatalog returns three options per category.
func DefaultCatalog() Catalog {
	prefixes := map[Category]string{
		CategoryFace:        "face",
		CategoryHair:        "hair",
		CategoryAccessories: "acc",
		CategoryColor:       "color",
		CategoryExpression:  "exp",
	}
	var c Catalog
	for _, cat := range Categories() {
		for i := 1; i <= 3; i++ {
			id := fmt.Sprintf("%s%d", prefixes[cat], i)
			c = append(c, Option{
				ID:       id,
				Src:      "/avatars/" + id + ".png",
				Alt:      fmt.Sprintf("%s %d", cat.DisplayName(), i),
				Category: cat,
			})
		}
	}
	return c
}

// Find returns the option with id.
func (c Catalog) Find(id string) (Option, bool) {
	for _, o := range c {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// InCategory returns the options of cat in catalog order.
func (c Catalog) InCategory(cat Category) []Option {
	var out []Option
	for _, o := range c {
		if o.Category == cat {
			out = append(out, o)
		}
	}
	return out
}

// Avatar maps each category to the selected option ID.
type Avatar map[Category]string

// Select sets opt as the choice for its category, replacing any previous
// one.
func (a Avatar) Select(opt Option) {
	a[opt.Category] = opt.ID
}

// Missing returns the categories without a selection, in display order.
func (a Avatar) Missing() []Category {
	var out []Category
	for _, c := range Categories() {
		if a[c] == "" {
			out = append(out, c)
		}
	}
	return out
}

// Complete reports whether every category has a selection.
func (a Avatar) Complete() bool {
	return len(a.Missing()) == 0
}

// Encode renders a complete avatar as dot-separated option IDs in
// category order, e.g. "face1.hair2.acc3.color1.exp2".
func (a Avatar) Encode() (string, error) {
	if missing := a.Missing(); len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %v", ErrIncomplete, missing)
	}
	parts := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		parts = append(parts, a[c])
	}
	return strings.Join(parts, "."), nil
}

// Decode parses an encoded avatar against catalog.
func Decode(catalog Catalog, s string) (Avatar, error) {
	a := Avatar{}
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrIncomplete)
	}
	for _, id := range strings.Split(s, ".") {
		opt, ok := catalog.Find(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, id)
		}
		a.Select(opt)
	}
	if missing := a.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrIncomplete, missing)
	}
	return a, nil
}
