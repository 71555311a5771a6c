package codec

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/bsonrw"

	"github.com/ajitpratap0/vrem/pkg/models"
)

// CorridorCodec encodes a Corridor
type CorridorCodec struct {
	vector  *VectorCodec
	wall    *WallCodec
	exhibit *ExhibitCodec
}

// NewCorridorCodec creates a CorridorCodec
func NewCorridorCodec(vector *VectorCodec, wall *WallCodec, exhibit *ExhibitCodec) *CorridorCodec {
	return &CorridorCodec{vector: vector, wall: wall, exhibit: exhibit}
}

// NativeType implements Codec
func (c *CorridorCodec) NativeType() reflect.Type {
	return reflect.TypeOf(&models.Corridor{})
}

// Decode implements Codec
func (c *CorridorCodec) Decode(vr bsonrw.ValueReader) (*models.Corridor, error) {
	fields := newSpaceFields()
	var size *models.Vector3f
	connects := make([]models.RoomRef, 0)

	err := readDocument(vr, "corridor", func(name string, vr bsonrw.ValueReader) error {
		if ok, err := fields.read(name, vr, c.vector, c.wall, c.exhibit); ok {
			return err
		}
		var err error
		switch name {
		case fieldSize:
			size, err = c.vector.decodeOptional(vr)
		case fieldConnects:
			err = readArray(vr, func(vr bsonrw.ValueReader) error {
				ref, err := readString(vr)
				connects = append(connects, models.RoomRef(ref))
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

	corridor := models.NewCorridor(fields.text, fields.floor, fields.ceiling, connects...)
	corridor.Size = size
	corridor.Entrypoint = fields.entrypoint
	if err := fields.apply(&corridor.Space); err != nil {
		return nil, err
	}
	return corridor, nil
}

// Encode implements Codec
func (c *CorridorCodec) Encode(vw bsonrw.ValueWriter, corridor *models.Corridor) error {
	w := writeDocument(vw, "corridor")
	w.String(fieldText, corridor.Text)
	w.String(fieldFloor, corridor.Floor)
	w.String(fieldCeiling, corridor.Ceiling)
	if corridor.Size != nil {
		w.Value(fieldSize, c.vector.encodeTo(*corridor.Size))
	}
	if corridor.Position != nil {
		w.Value(fieldPosition, c.vector.encodeTo(*corridor.Position))
	}
	if corridor.Entrypoint != nil {
		w.Value(fieldEntrypoint, c.vector.encodeTo(*corridor.Entrypoint))
	}
	c.wall.encodeList(w, fieldWalls, corridor.Walls())
	c.exhibit.encodeList(w, fieldExhibits, corridor.Exhibits())
	if corridor.Ambient != nil {
		w.String(fieldAmbient, *corridor.Ambient)
	}
	w.Array(fieldConnects, len(corridor.Connects), func(i int, vw bsonrw.ValueWriter) error {
		return vw.WriteString(string(corridor.Connects[i]))
	})
	return w.End()
}
