package engine

import "github.com/piwi3910/panelcut/internal/model"

const eps = model.Epsilon

// overlaps returns true if two rectangles overlap on both axes.
// Touching edges do not count.
func overlaps(a, b model.Rect) bool {
	return a.Overlaps(b)
}

// contains returns true if outer fully contains inner.
func contains(outer, inner model.Rect) bool {
	return outer.X <= inner.X+eps && outer.Y <= inner.Y+eps &&
		outer.Right() >= inner.Right()-eps &&
		outer.Bottom() >= inner.Bottom()-eps
}

// usable reports whether a rectangle has positive extent beyond tolerance.
func usable(r model.Rect) bool {
	return r.Width > eps && r.Height > eps
}

// subtract returns region minus cut as up to four maximal strips, in the
// order right, below, left, above. A cut that does not overlap region
// leaves it unchanged.
func subtract(region, cut model.Rect) []model.Rect {
	if !overlaps(region, cut) {
		return []model.Rect{region}
	}

	var out []model.Rect
	// Right strip (full height of region)
	if cut.Right() < region.Right()-eps {
		out = append(out, model.Rect{
			X: cut.Right(), Y: region.Y,
			Width: region.Right() - cut.Right(), Height: region.Height,
		})
	}
	// Bottom strip (full width of region)
	if cut.Bottom() < region.Bottom()-eps {
		out = append(out, model.Rect{
			X: region.X, Y: cut.Bottom(),
			Width: region.Width, Height: region.Bottom() - cut.Bottom(),
		})
	}
	// Left strip
	if cut.X > region.X+eps {
		out = append(out, model.Rect{
			X: region.X, Y: region.Y,
			Width: cut.X - region.X, Height: region.Height,
		})
	}
	// Top strip
	if cut.Y > region.Y+eps {
		out = append(out, model.Rect{
			X: region.X, Y: region.Y,
			Width: region.Width, Height: cut.Y - region.Y,
		})
	}

	kept := out[:0]
	for _, r := range out {
		if usable(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// splitAfterPlacement subtracts a placed footprint from region. The cut is
// the footprint inflated by kerf on its right and bottom edges, so the next
// part starts at least kerf away from this part's far edges.
func splitAfterPlacement(region model.Rect, w, h, x, y, kerf float64) []model.Rect {
	return subtract(region, model.Rect{X: x, Y: y, Width: w + kerf, Height: h + kerf})
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects the earlier one is kept.
func pruneContained(rects []model.Rect) []model.Rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]model.Rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !contains(b, a) {
				continue
			}
			// Mutual containment means duplicates; drop only the later one.
			if contains(a, b) && i < j {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}
