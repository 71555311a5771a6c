// Package layout computes default placements and sizes for imported
// exhibits. All functions are pure and deterministic.
package layout

import "github.com/ajitpratap0/vrem/pkg/models"

const (
	// Border is the gap between the wall edge and the first exhibit
	Border = 0.5
	// Padding is the gap between neighbouring exhibits
	Padding = 1.0
	// DefaultHeight is the height of an exhibit's center above the floor
	DefaultHeight = 1.5
	// LongEdge is the length in meters of the longer side of a sized image
	LongEdge = 2.0
)

// RoomPosition places a room by the number of rooms already in the
// exhibition. The renderer arranges rooms itself, so this is a placeholder.
func RoomPosition(siblings int) models.Vector3f {
	return models.NewVector3f(float64(siblings), 0, 0)
}

// ExhibitPosition returns the center of an exhibit of the given size hung
// to the right of siblings, which are the exhibits already on the wall.
func ExhibitPosition(size models.Vector3f, siblings []models.Exhibit) models.Vector3f {
	x := Border
	for _, s := range siblings {
		x += s.Size.X + Padding
	}
	return models.NewVector3f(x+size.X/2, DefaultHeight, 0)
}

// ImageSize scales an image of width x height pixels so that its longer
// edge is LongEdge meters. The result has zero depth.
func ImageSize(width, height int) models.Vector3f {
	if width <= 0 || height <= 0 {
		return models.Origin
	}
	aspect := float64(height) / float64(width)
	if width > height {
		return models.NewVector3f(LongEdge, aspect*LongEdge, 0)
	}
	return models.NewVector3f(LongEdge/aspect, LongEdge, 0)
}
