package codec

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ajitpratap0/vrem/pkg/models"
)

// Exhibition field names, exported for store queries
const (
	FieldID          = "_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldRooms       = "rooms"
	FieldCorridors   = "corridors"
)

// ExhibitionCodec encodes an Exhibition
type ExhibitionCodec struct {
	room     *RoomCodec
	corridor *CorridorCodec
}

// NewExhibitionCodec creates an ExhibitionCodec
func NewExhibitionCodec(room *RoomCodec, corridor *CorridorCodec) *ExhibitionCodec {
	return &ExhibitionCodec{room: room, corridor: corridor}
}

// NativeType implements Codec
func (c *ExhibitionCodec) NativeType() reflect.Type {
	return reflect.TypeOf(&models.Exhibition{})
}

// Decode implements Codec. Rooms and corridors are re-added so duplicates
// are dropped again.
func (c *ExhibitionCodec) Decode(vr bsonrw.ValueReader) (*models.Exhibition, error) {
	var (
		id          primitive.ObjectID
		name        string
		description string
		rooms       []*models.Room
		corridors   []*models.Corridor
	)
	err := readDocument(vr, "exhibition", func(field string, vr bsonrw.ValueReader) error {
		var err error
		switch field {
		case FieldID:
			id, err = readObjectID(vr)
		case FieldName:
			name, err = readString(vr)
		case FieldDescription:
			description, err = readString(vr)
		case FieldRooms:
			err = readArray(vr, func(vr bsonrw.ValueReader) error {
				room, err := c.room.Decode(vr)
				if err == nil {
					rooms = append(rooms, room)
				}
				return err
			})
		case FieldCorridors:
			err = readArray(vr, func(vr bsonrw.ValueReader) error {
				corridor, err := c.corridor.Decode(vr)
				if err == nil {
					corridors = append(corridors, corridor)
				}
				return err
			})
		default:
			err = vr.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	exhibition := models.NewExhibitionWithID(id, name, description)
	for _, room := range rooms {
		exhibition.AddRoom(room)
	}
	for _, corridor := range corridors {
		exhibition.AddCorridor(corridor)
	}
	return exhibition, nil
}

// Encode implements Codec
func (c *ExhibitionCodec) Encode(vw bsonrw.ValueWriter, e *models.Exhibition) error {
	rooms := e.Rooms()
	corridors := e.Corridors()

	w := writeDocument(vw, "exhibition")
	w.ObjectID(FieldID, e.ID)
	w.String(FieldName, e.Name)
	w.String(FieldDescription, e.Description)
	w.Array(FieldRooms, len(rooms), func(i int, vw bsonrw.ValueWriter) error {
		return c.room.Encode(vw, rooms[i])
	})
	w.Array(FieldCorridors, len(corridors), func(i int, vw bsonrw.ValueWriter) error {
		return c.corridor.Encode(vw, corridors[i])
	})
	return w.End()
}
