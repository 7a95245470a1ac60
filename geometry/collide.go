package geometry

import (
	"fitplan/catalog"
	"fitplan/design"
)

// Overlap is one colliding fixture pair and the rectangle they share.
type Overlap struct {
	A, B string // fixture ids, in input order
	Rect Rect
}

// Collisions runs the pairwise overlap test across all fixtures. Pairs are
// exempt when they sit on different mount layers, when both are walls, or
// when one is a door and the other a wall (doors sit inside wall openings).
// Fixtures with unknown catalog keys are skipped. O(n^2) is fine at the
// document sizes a plan holds.
func Collisions(fixtures []design.Fixture, cat catalog.Lookup) []Overlap {
	type resolved struct {
		f    design.Fixture
		item catalog.Item
		rect Rect
	}
	rs := make([]resolved, 0, len(fixtures))
	for _, f := range fixtures {
		item, ok := cat.Lookup(f.CatalogKey)
		if !ok {
			continue
		}
		rs = append(rs, resolved{f: f, item: item, rect: FixtureRect(f, item)})
	}

	var overlaps []Overlap
	for i := 0; i < len(rs); i++ {
		for j := i + 1; j < len(rs); j++ {
			a, b := rs[i], rs[j]
			if a.item.Mount != b.item.Mount {
				continue
			}
			if a.item.Kind == catalog.KindWall && b.item.Kind == catalog.KindWall {
				continue
			}
			if isDoorWallPair(a.item.Kind, b.item.Kind) {
				continue
			}
			if r, ok := a.rect.Intersection(b.rect); ok {
				overlaps = append(overlaps, Overlap{A: a.f.ID, B: b.f.ID, Rect: r})
			}
		}
	}
	return overlaps
}

func isDoorWallPair(a, b catalog.Kind) bool {
	return (a == catalog.KindDoor && b == catalog.KindWall) ||
		(a == catalog.KindWall && b == catalog.KindDoor)
}
