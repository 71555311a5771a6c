package models

import (
	"fmt"

	"github.com/ajitpratap0/vrem/pkg/errors"
)

// TextureNone marks a wall, floor or ceiling without a texture
const TextureNone = "NONE"

// Wall is a surface of a room. It is either a flat color or a named texture;
// Coordinates describe its polygonal outline.
type Wall struct {
	Number      string
	Texture     string
	Color       Vector3f
	Coordinates []Vector3f
	exhibits    []Exhibit
}

// NewColoredWall creates a wall painted in color
func NewColoredWall(number string, color Vector3f) *Wall {
	return newWall(number, TextureNone, color)
}

// NewTexturedWall creates a wall covered with texture
func NewTexturedWall(number, texture string) *Wall {
	return newWall(number, texture, Unit)
}

// RestoreWall recreates a stored wall with both its texture and color as
// they were persisted. Use NewColoredWall or NewTexturedWall for new walls.
func RestoreWall(number, texture string, color Vector3f) *Wall {
	return newWall(number, texture, color)
}

func newWall(number, texture string, color Vector3f) *Wall {
	return &Wall{
		Number:      number,
		Texture:     texture,
		Color:       color,
		Coordinates: make([]Vector3f, 0, 4),
		exhibits:    make([]Exhibit, 0),
	}
}

// AddCoordinate appends a point to the wall outline
func (w *Wall) AddCoordinate(c Vector3f) {
	w.Coordinates = append(w.Coordinates, c)
}

// PlaceExhibit hangs an image on the wall. It reports false when an equal
// exhibit is already present.
func (w *Wall) PlaceExhibit(e Exhibit) (bool, error) {
	if e.Type != ExhibitTypeImage {
		return false, errors.New(errors.ErrorTypeValidation, "only images can be placed on walls").
			WithDetail("wall", w.Number).
			WithDetail("path", e.Path).
			WithDetail("type", string(e.Type))
	}
	if containsExhibit(w.exhibits, e) {
		return false, nil
	}
	w.exhibits = append(w.exhibits, e)
	return true, nil
}

// Exhibits returns a copy of the images on this wall, in placement order
func (w *Wall) Exhibits() []Exhibit {
	out := make([]Exhibit, len(w.exhibits))
	copy(out, w.exhibits)
	return out
}

// Equal compares walls structurally
func (w *Wall) Equal(o *Wall) bool {
	if w == nil || o == nil {
		return w == o
	}
	if w.Number != o.Number || w.Texture != o.Texture || !w.Color.Equal(o.Color) {
		return false
	}
	if len(w.Coordinates) != len(o.Coordinates) {
		return false
	}
	for i := range w.Coordinates {
		if !w.Coordinates[i].Equal(o.Coordinates[i]) {
			return false
		}
	}
	return exhibitsEqual(w.exhibits, o.exhibits)
}

func (w *Wall) String() string {
	return fmt.Sprintf("Wall{number=%s, texture=%s, color=%s, coordinates=%d, exhibits=%d}",
		w.Number, w.Texture, w.Color, len(w.Coordinates), len(w.exhibits))
}
