package models

import "fmt"

// RoomEntrypoint is where a visitor enters every room
var RoomEntrypoint = Origin

// Room is a bounded space with walls
type Room struct {
	Space
	Height       float64
	CeilingScale float64
}

// NewRoom creates a room with the default height and ceiling scale
func NewRoom(text, floor, ceiling string) *Room {
	return &Room{
		Space:        newSpace(text, floor, ceiling),
		Height:       DefaultRoomHeight,
		CeilingScale: DefaultCeilingScale,
	}
}

// Kind implements Area
func (r *Room) Kind() SpaceKind {
	return KindRoom
}

// Entrypoint returns the room's entry point. Rooms do not store one.
func (r *Room) Entrypoint() Vector3f {
	return RoomEntrypoint
}

// Equal compares rooms structurally
func (r *Room) Equal(o *Room) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Height == o.Height && r.CeilingScale == o.CeilingScale && r.Space.equal(&o.Space)
}

func (r *Room) String() string {
	return fmt.Sprintf("Room{text=%q, floor=%s, ceiling=%s, height=%g, walls=%d, exhibits=%d}",
		r.Text, r.Floor, r.Ceiling, r.Height, len(r.walls), len(r.exhibits))
}
