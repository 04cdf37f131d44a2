package engine

import "github.com/piwi3910/LoadPlanner/internal/model"

// Partition is the free space of one container instance: a list of
// candidate regions that may overlap. Regions are split on placement and
// never merged, so the list only changes through Place.
type Partition struct {
	regions []model.FreeRegion
}

// NewPartition returns a partition holding a single region that spans the
// whole envelope at the origin.
func NewPartition(envelope model.Dimensions) *Partition {
	return &Partition{
		regions: []model.FreeRegion{{Size: envelope}},
	}
}

// Regions returns a copy of the current free regions in list order.
func (p *Partition) Regions() []model.FreeRegion {
	out := make([]model.FreeRegion, len(p.regions))
	copy(out, p.regions)
	return out
}

// Len returns the number of free regions.
func (p *Partition) Len() int {
	return len(p.regions)
}

// FindFit scans regions in list order and returns the first region and
// orientation that accommodate an item of the given extent (first fit).
// For each region length-width is tried before width-length.
func (p *Partition) FindFit(d model.Dimensions) (int, model.Orientation, bool) {
	for i, r := range p.regions {
		for _, o := range model.Orientations {
			if d.Oriented(o).FitsWithin(r.Size) {
				return i, o, true
			}
		}
	}
	return -1, "", false
}

// Place consumes region idx for an item of extent d in orientation o and
// returns the position the item was placed at (the region origin).
//
// The region is removed and up to three leftovers are appended: the slab
// beyond the item along x (full width and height), the slab beyond it along
// y (item length, full height), and the slab above it (item footprint).
func (p *Partition) Place(idx int, d model.Dimensions, o model.Orientation) model.Position {
	r := p.regions[idx]
	placed := d.Oriented(o)

	p.regions = append(p.regions[:idx], p.regions[idx+1:]...)

	if placed.Length < r.Size.Length {
		p.regions = append(p.regions, model.FreeRegion{
			Origin: r.Origin.Offset(placed.Length, 0, 0),
			Size: model.Dimensions{
				Length: r.Size.Length - placed.Length,
				Width:  r.Size.Width,
				Height: r.Size.Height,
			},
		})
	}
	if placed.Width < r.Size.Width {
		p.regions = append(p.regions, model.FreeRegion{
			Origin: r.Origin.Offset(0, placed.Width, 0),
			Size: model.Dimensions{
				Length: placed.Length,
				Width:  r.Size.Width - placed.Width,
				Height: r.Size.Height,
			},
		})
	}
	if placed.Height < r.Size.Height {
		p.regions = append(p.regions, model.FreeRegion{
			Origin: r.Origin.Offset(0, 0, placed.Height),
			Size: model.Dimensions{
				Length: placed.Length,
				Width:  placed.Width,
				Height: r.Size.Height - placed.Height,
			},
		})
	}
	return r.Origin
}
