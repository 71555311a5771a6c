package models

import "fmt"

// RoomRef is a weak reference to a room, by its text label
type RoomRef string

// Corridor connects rooms. It is usually built with two walls (north and
// south) but the wall list is not limited.
type Corridor struct {
	Space
	Size       *Vector3f
	Entrypoint *Vector3f
	Connects   []RoomRef
}

// NewCorridor creates a corridor connecting the given rooms
func NewCorridor(text, floor, ceiling string, connects ...RoomRef) *Corridor {
	c := &Corridor{
		Space:    newSpace(text, floor, ceiling),
		Connects: make([]RoomRef, 0, 2),
	}
	c.Connects = append(c.Connects, connects...)
	return c
}

// Kind implements Area
func (c *Corridor) Kind() SpaceKind {
	return KindCorridor
}

// Connect records a connection to room, once
func (c *Corridor) Connect(room *Room) {
	ref := RoomRef(room.Text)
	for _, existing := range c.Connects {
		if existing == ref {
			return
		}
	}
	c.Connects = append(c.Connects, ref)
}

// North returns the first wall, if any
func (c *Corridor) North() (*Wall, bool) {
	return c.wallAt(0)
}

// South returns the second wall, if any
func (c *Corridor) South() (*Wall, bool) {
	return c.wallAt(1)
}

func (c *Corridor) wallAt(i int) (*Wall, bool) {
	if i >= len(c.walls) {
		return nil, false
	}
	return c.walls[i], true
}

// Equal compares corridors structurally
func (c *Corridor) Equal(o *Corridor) bool {
	if c == nil || o == nil {
		return c == o
	}
	if !vectorPtrEqual(c.Size, o.Size) || !vectorPtrEqual(c.Entrypoint, o.Entrypoint) || len(c.Connects) != len(o.Connects) {
		return false
	}
	for i := range c.Connects {
		if c.Connects[i] != o.Connects[i] {
			return false
		}
	}
	return c.Space.equal(&o.Space)
}

func (c *Corridor) String() string {
	return fmt.Sprintf("Corridor{text=%q, connects=%v, walls=%d, exhibits=%d}",
		c.Text, c.Connects, len(c.walls), len(c.exhibits))
}
