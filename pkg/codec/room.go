package codec

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/bsonrw"

	"github.com/ajitpratap0/vrem/pkg/models"
)

const (
	fieldText         = "text"
	fieldFloor        = "floor"
	fieldCeiling      = "ceiling"
	fieldHeight       = "height"
	fieldPosition     = "position"
	fieldCeilingScale = "ceiling_scale"
	fieldSize         = "size"
	fieldEntrypoint   = "entrypoint"
	fieldWalls        = "walls"
	fieldExhibits     = "exhibits"
	fieldAmbient      = "ambient"
	fieldConnects     = "connects"
)

// spaceFields collects the fields shared by rooms and corridors while a
// document is being read.
type spaceFields struct {
	text       string
	floor      string
	ceiling    string
	position   *models.Vector3f
	entrypoint *models.Vector3f
	ambient    *string
	walls      []*models.Wall
	exhibits   []models.Exhibit
}

func newSpaceFields() *spaceFields {
	return &spaceFields{
		floor:   models.DefaultFloorTexture,
		ceiling: models.DefaultCeilingTexture,
	}
}

// read consumes name if it is a shared field and reports whether it did
func (f *spaceFields) read(name string, vr bsonrw.ValueReader, vector *VectorCodec, wall *WallCodec, exhibit *ExhibitCodec) (bool, error) {
	var err error
	switch name {
	case fieldText:
		f.text, err = readString(vr)
	case fieldFloor:
		var s *string
		if s, err = readOptionalString(vr); s != nil {
			f.floor = *s
		}
	case fieldCeiling:
		var s *string
		if s, err = readOptionalString(vr); s != nil {
			f.ceiling = *s
		}
	case fieldPosition:
		f.position, err = vector.decodeOptional(vr)
	case fieldEntrypoint:
		// kept by corridors only
		f.entrypoint, err = vector.decodeOptional(vr)
	case fieldAmbient:
		f.ambient, err = readOptionalString(vr)
	case fieldWalls:
		f.walls, err = wall.decodeList(vr)
	case fieldExhibits:
		f.exhibits, err = exhibit.decodeList(vr)
	default:
		return false, nil
	}
	return true, err
}

// apply copies the collected fields into s, re-running the container gates
func (f *spaceFields) apply(s *models.Space) error {
	s.Position = f.position
	s.Ambient = f.ambient
	for _, w := range f.walls {
		s.AddWall(w)
	}
	for _, e := range f.exhibits {
		if _, err := s.PlaceExhibit(e); err != nil {
			return err
		}
	}
	return nil
}

// RoomCodec encodes a Room
type RoomCodec struct {
	vector  *VectorCodec
	wall    *WallCodec
	exhibit *ExhibitCodec
}

// NewRoomCodec creates a RoomCodec
func NewRoomCodec(vector *VectorCodec, wall *WallCodec, exhibit *ExhibitCodec) *RoomCodec {
	return &RoomCodec{vector: vector, wall: wall, exhibit: exhibit}
}

// NativeType implements Codec
func (c *RoomCodec) NativeType() reflect.Type {
	return reflect.TypeOf(&models.Room{})
}

// Decode implements Codec
func (c *RoomCodec) Decode(vr bsonrw.ValueReader) (*models.Room, error) {
	fields := newSpaceFields()
	height := models.DefaultRoomHeight
	ceilingScale := models.DefaultCeilingScale

	err := readDocument(vr, "room", func(name string, vr bsonrw.ValueReader) error {
		if ok, err := fields.read(name, vr, c.vector, c.wall, c.exhibit); ok {
			return err
		}
		var err error
		switch name {
		case fieldHeight:
			height, err = readNumberOr(vr, models.DefaultRoomHeight)
		case fieldCeilingScale:
			ceilingScale, err = readNumberOr(vr, models.DefaultCeilingScale)
		default:
			err = vr.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	room := models.NewRoom(fields.text, fields.floor, fields.ceiling)
	room.Height = height
	room.CeilingScale = ceilingScale
	if err := fields.apply(&room.Space); err != nil {
		return nil, err
	}
	return room, nil
}

// Encode implements Codec
func (c *RoomCodec) Encode(vw bsonrw.ValueWriter, room *models.Room) error {
	w := writeDocument(vw, "room")
	w.String(fieldText, room.Text)
	w.String(fieldFloor, room.Floor)
	w.String(fieldCeiling, room.Ceiling)
	w.Double(fieldHeight, room.Height)
	if room.Position != nil {
		w.Value(fieldPosition, c.vector.encodeTo(*room.Position))
	}
	w.Double(fieldCeilingScale, room.CeilingScale)
	c.wall.encodeList(w, fieldWalls, room.Walls())
	c.exhibit.encodeList(w, fieldExhibits, room.Exhibits())
	if room.Ambient != nil {
		w.String(fieldAmbient, *room.Ambient)
	}
	return w.End()
}

// readNumberOr reads a number, returning def for a null value
func readNumberOr(vr bsonrw.ValueReader, def float64) (float64, error) {
	if null, err := readNull(vr); null || err != nil {
		return def, err
	}
	return readNumber(vr)
}
