// Package catalog defines the lookup port through which the editor resolves a
// fixture's physical footprint, and a small built-in catalog for hosts and
// tests. Pricing and presentation metadata live outside this package.
package catalog

// Anchor describes how a catalog item's stored (x, y) relates to its physical
// bounding rectangle.
type Anchor int

const (
	AnchorCenter    Anchor = iota // (x, y) is the rectangle center
	AnchorFrontLeft               // (x, y) is the min corner
	AnchorBackLeft                // (x, y) is the left edge at the back
)

func (a Anchor) String() string {
	switch a {
	case AnchorCenter:
		return "center"
	case AnchorFrontLeft:
		return "front-left"
	case AnchorBackLeft:
		return "back-left"
	default:
		return "unknown"
	}
}

// Mount is the coarse mount-layer classification used to exempt fixture pairs
// from collision checking.
type Mount int

const (
	MountFloor Mount = iota
	MountWall
)

func (m Mount) String() string {
	if m == MountWall {
		return "wall"
	}
	return "floor"
}

// Kind classifies catalog items that get special collision treatment.
type Kind int

const (
	KindFixture Kind = iota
	KindWall
	KindDoor
	KindWindow
)

// Footprint is an item's unrotated physical extent in feet. Length runs along
// the item's local x axis at rotation 0.
type Footprint struct {
	LengthFt float64
	WidthFt  float64
}

// Item is everything the editing core needs to know about a catalog entry.
type Item struct {
	Footprint Footprint
	Anchor    Anchor
	Mount     Mount
	Kind      Kind
}

// Lookup resolves a fixture's catalog key to its item definition. The second
// return is false for unknown keys; callers treat unknown fixtures as
// zero-size and skip geometry on them.
type Lookup interface {
	Lookup(key string) (Item, bool)
}

// WallKey is the catalog key the wall tool commits new walls under.
const WallKey = "wall"

// Catalog is an in-memory Lookup.
type Catalog struct {
	items map[string]Item
}

// New returns a catalog seeded with the given items.
func New(items map[string]Item) *Catalog {
	c := &Catalog{items: make(map[string]Item, len(items))}
	for k, v := range items {
		c.items[k] = v
	}
	return c
}

// Builtin returns the default catalog used by the terminal host and tests.
func Builtin() *Catalog {
	return New(map[string]Item{
		WallKey: {
			Footprint: Footprint{LengthFt: 4, WidthFt: 0.4},
			Anchor:    AnchorFrontLeft,
			Mount:     MountFloor,
			Kind:      KindWall,
		},
		"door": {
			Footprint: Footprint{LengthFt: 2.5, WidthFt: 0.4},
			Anchor:    AnchorFrontLeft,
			Mount:     MountFloor,
			Kind:      KindDoor,
		},
		"window": {
			Footprint: Footprint{LengthFt: 3, WidthFt: 0.3},
			Anchor:    AnchorFrontLeft,
			Mount:     MountWall,
			Kind:      KindWindow,
		},
		"sink": {
			Footprint: Footprint{LengthFt: 2, WidthFt: 2},
			Anchor:    AnchorCenter,
			Mount:     MountFloor,
		},
		"toilet": {
			Footprint: Footprint{LengthFt: 1.5, WidthFt: 2.5},
			Anchor:    AnchorFrontLeft,
			Mount:     MountFloor,
		},
		"shower": {
			Footprint: Footprint{LengthFt: 3, WidthFt: 3},
			Anchor:    AnchorFrontLeft,
			Mount:     MountFloor,
		},
		"counter": {
			Footprint: Footprint{LengthFt: 6, WidthFt: 2},
			Anchor:    AnchorBackLeft,
			Mount:     MountFloor,
		},
		"cabinet": {
			Footprint: Footprint{LengthFt: 3, WidthFt: 1.5},
			Anchor:    AnchorBackLeft,
			Mount:     MountWall,
		},
		"bed": {
			Footprint: Footprint{LengthFt: 6.5, WidthFt: 4.5},
			Anchor:    AnchorCenter,
			Mount:     MountFloor,
		},
		"table": {
			Footprint: Footprint{LengthFt: 3, WidthFt: 2},
			Anchor:    AnchorCenter,
			Mount:     MountFloor,
		},
	})
}

// Lookup implements the Lookup interface.
func (c *Catalog) Lookup(key string) (Item, bool) {
	item, ok := c.items[key]
	return item, ok
}

// Keys returns all catalog keys, for host UI pickers.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}
