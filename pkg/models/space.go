package models

import (
	"github.com/ajitpratap0/vrem/pkg/errors"
)

// Default textures applied when a stored room omits them
const (
	DefaultFloorTexture   = "WOOD1"
	DefaultCeilingTexture = "CONCRETE"
)

// Room defaults applied when a stored room omits them
const (
	DefaultRoomHeight   = 5.0
	DefaultCeilingScale = 1.0
)

// SpaceKind tags the Area variants
type SpaceKind int

const (
	// KindRoom tags a Room
	KindRoom SpaceKind = iota
	// KindCorridor tags a Corridor
	KindCorridor
)

func (k SpaceKind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindCorridor:
		return "corridor"
	default:
		return "unknown"
	}
}

// Area is implemented by Room and Corridor
type Area interface {
	Kind() SpaceKind
	Common() *Space
}

// Space holds the fields shared by rooms and corridors
type Space struct {
	Text     string
	Floor    string
	Ceiling  string
	Position *Vector3f
	Ambient  *string
	walls    []*Wall
	exhibits []Exhibit
}

func newSpace(text, floor, ceiling string) Space {
	return Space{
		Text:     text,
		Floor:    floor,
		Ceiling:  ceiling,
		walls:    make([]*Wall, 0),
		exhibits: make([]Exhibit, 0),
	}
}

// Common returns the shared field set
func (s *Space) Common() *Space {
	return s
}

// AddWall appends a wall
func (s *Space) AddWall(w *Wall) {
	s.walls = append(s.walls, w)
}

// Walls returns the walls in insertion order
func (s *Space) Walls() []*Wall {
	out := make([]*Wall, len(s.walls))
	copy(out, s.walls)
	return out
}

// PlaceExhibit puts a 3D model into the space. It reports false when an
// equal exhibit is already present.
func (s *Space) PlaceExhibit(e Exhibit) (bool, error) {
	if e.Type != ExhibitTypeModel {
		return false, errors.New(errors.ErrorTypeValidation, "only 3D objects can be placed in a room").
			WithDetail("room", s.Text).
			WithDetail("path", e.Path).
			WithDetail("type", string(e.Type))
	}
	if containsExhibit(s.exhibits, e) {
		return false, nil
	}
	s.exhibits = append(s.exhibits, e)
	return true, nil
}

// Exhibits returns a copy of the models placed in the space
func (s *Space) Exhibits() []Exhibit {
	out := make([]Exhibit, len(s.exhibits))
	copy(out, s.exhibits)
	return out
}

// AllExhibits returns the space's models followed by each wall's images
func (s *Space) AllExhibits() []Exhibit {
	out := s.Exhibits()
	for _, w := range s.walls {
		out = append(out, w.exhibits...)
	}
	return out
}

func (s *Space) equal(o *Space) bool {
	if s.Text != o.Text || s.Floor != o.Floor || s.Ceiling != o.Ceiling {
		return false
	}
	if !vectorPtrEqual(s.Position, o.Position) {
		return false
	}
	if !stringPtrEqual(s.Ambient, o.Ambient) {
		return false
	}
	if len(s.walls) != len(o.walls) {
		return false
	}
	for i := range s.walls {
		if !s.walls[i].Equal(o.walls[i]) {
			return false
		}
	}
	return exhibitsEqual(s.exhibits, o.exhibits)
}
