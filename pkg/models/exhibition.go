package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exhibition is the top-level collection of rooms and corridors
type Exhibition struct {
	ID          primitive.ObjectID
	Name        string
	Description string
	rooms       []*Room
	corridors   []*Corridor
}

// NewExhibition creates an exhibition with a fresh id
func NewExhibition(name, description string) *Exhibition {
	return NewExhibitionWithID(primitive.NewObjectID(), name, description)
}

// NewExhibitionWithID creates an exhibition with a known id. A zero id is
// replaced by a fresh one.
func NewExhibitionWithID(id primitive.ObjectID, name, description string) *Exhibition {
	if id.IsZero() {
		id = primitive.NewObjectID()
	}
	return &Exhibition{
		ID:          id,
		Name:        name,
		Description: description,
		rooms:       make([]*Room, 0),
		corridors:   make([]*Corridor, 0),
	}
}

// AddRoom appends room unless a structurally equal room is present
func (e *Exhibition) AddRoom(room *Room) bool {
	for _, r := range e.rooms {
		if r.Equal(room) {
			return false
		}
	}
	e.rooms = append(e.rooms, room)
	return true
}

// AddCorridor appends corridor unless a structurally equal corridor is present
func (e *Exhibition) AddCorridor(corridor *Corridor) bool {
	for _, c := range e.corridors {
		if c.Equal(corridor) {
			return false
		}
	}
	e.corridors = append(e.corridors, corridor)
	return true
}

// Rooms returns the rooms in insertion order
func (e *Exhibition) Rooms() []*Room {
	out := make([]*Room, len(e.rooms))
	copy(out, e.rooms)
	return out
}

// Corridors returns the corridors in insertion order
func (e *Exhibition) Corridors() []*Corridor {
	out := make([]*Corridor, len(e.corridors))
	copy(out, e.corridors)
	return out
}

// Areas returns rooms followed by corridors
func (e *Exhibition) Areas() []Area {
	out := make([]Area, 0, len(e.rooms)+len(e.corridors))
	for _, r := range e.rooms {
		out = append(out, r)
	}
	for _, c := range e.corridors {
		out = append(out, c)
	}
	return out
}

// Room looks a room up by its label
func (e *Exhibition) Room(text string) (*Room, bool) {
	for _, r := range e.rooms {
		if r.Text == text {
			return r, true
		}
	}
	return nil, false
}

// Exhibits flattens every exhibit of the exhibition: for each room its
// models then its walls' images, then the same for each corridor.
func (e *Exhibition) Exhibits() []Exhibit {
	out := make([]Exhibit, 0)
	for _, a := range e.Areas() {
		out = append(out, a.Common().AllExhibits()...)
	}
	return out
}

// ExhibitsOfType returns the flattened exhibits of the given type
func (e *Exhibition) ExhibitsOfType(t ExhibitType) []Exhibit {
	out := make([]Exhibit, 0)
	for _, ex := range e.Exhibits() {
		if ex.Type == t {
			out = append(out, ex)
		}
	}
	return out
}

// FindExhibit returns the first exhibit whose path equals path
func (e *Exhibition) FindExhibit(path string) (Exhibit, bool) {
	for _, ex := range e.Exhibits() {
		if ex.Path == path {
			return ex, true
		}
	}
	return Exhibit{}, false
}

// Equal compares exhibitions structurally, including their ids
func (e *Exhibition) Equal(o *Exhibition) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.ID != o.ID || e.Name != o.Name || e.Description != o.Description {
		return false
	}
	if len(e.rooms) != len(o.rooms) || len(e.corridors) != len(o.corridors) {
		return false
	}
	for i := range e.rooms {
		if !e.rooms[i].Equal(o.rooms[i]) {
			return false
		}
	}
	for i := range e.corridors {
		if !e.corridors[i].Equal(o.corridors[i]) {
			return false
		}
	}
	return true
}

func (e *Exhibition) String() string {
	return fmt.Sprintf("Exhibition{id=%s, name=%q, rooms=%d, corridors=%d}",
		e.ID.Hex(), e.Name, len(e.rooms), len(e.corridors))
}
