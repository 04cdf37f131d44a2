package model

// Dimensions is an axis-aligned box extent in cm.
// Length runs along the container's x axis, Width along y and Height along z.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Volume returns Length x Width x Height in cm³.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// FitsWithin reports whether d fits inside outer without rotation.
func (d Dimensions) FitsWithin(outer Dimensions) bool {
	return d.Length <= outer.Length && d.Width <= outer.Width && d.Height <= outer.Height
}

// Oriented returns the extent of d when placed with orientation o.
// Height is never rotated.
func (d Dimensions) Oriented(o Orientation) Dimensions {
	if o == OrientationWidthLength {
		return Dimensions{Length: d.Width, Width: d.Length, Height: d.Height}
	}
	return d
}

// Position is a point in a container's local frame, in cm from the
// rear-left-floor corner.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Offset returns p shifted by dx, dy, dz.
func (p Position) Offset(dx, dy, dz float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Orientation is one of the two permitted rotations about the vertical axis.
type Orientation string

const (
	OrientationLengthWidth Orientation = "length-width" // item length along the container length
	OrientationWidthLength Orientation = "width-length" // rotated 90° about the vertical axis
)

// Orientations lists the orientations in the order they are tried.
var Orientations = []Orientation{OrientationLengthWidth, OrientationWidthLength}

func (o Orientation) String() string {
	return string(o)
}

// Rotated reports whether o swaps the item's length and width.
func (o Orientation) Rotated() bool {
	return o == OrientationWidthLength
}

// FreeRegion is an empty axis-aligned box inside a container that is still
// available for placement.
type FreeRegion struct {
	Origin Position   `json:"origin"`
	Size   Dimensions `json:"size"`
}

// End returns the corner opposite Origin.
func (r FreeRegion) End() Position {
	return r.Origin.Offset(r.Size.Length, r.Size.Width, r.Size.Height)
}

// Percent returns part/whole as a percentage, or 0 when whole is zero.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100.0
}
