package codec

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/bsonrw"

	"github.com/ajitpratap0/vrem/pkg/models"
)

const (
	fieldWallNumber      = "wallNumber"
	fieldWallCoordinates = "wallCoordinates"
	fieldWallTexture     = "texture"
	fieldWallColor       = "color"
	fieldWallExhibits    = "exhibits"
)

// WallCodec encodes a Wall
type WallCodec struct {
	vector  *VectorCodec
	exhibit *ExhibitCodec
}

// NewWallCodec creates a WallCodec
func NewWallCodec(vector *VectorCodec, exhibit *ExhibitCodec) *WallCodec {
	return &WallCodec{vector: vector, exhibit: exhibit}
}

// NativeType implements Codec
func (c *WallCodec) NativeType() reflect.Type {
	return reflect.TypeOf(&models.Wall{})
}

// Decode implements Codec. A missing texture decodes as NONE and a missing
// color as Unit, matching what the wall constructors produce.
func (c *WallCodec) Decode(vr bsonrw.ValueReader) (*models.Wall, error) {
	var (
		number      string
		texture     *string
		color       *models.Vector3f
		coordinates []models.Vector3f
		exhibits    []models.Exhibit
	)
	err := readDocument(vr, "wall", func(name string, vr bsonrw.ValueReader) error {
		var err error
		switch name {
		case fieldWallNumber:
			number, err = readLabel(vr)
		case fieldWallCoordinates:
			err = readArray(vr, func(vr bsonrw.ValueReader) error {
				v, err := c.vector.Decode(vr)
				coordinates = append(coordinates, v)
				return err
			})
		case fieldWallTexture:
			texture, err = readOptionalString(vr)
		case fieldWallColor:
			color, err = c.vector.decodeOptional(vr)
		case fieldWallExhibits:
			exhibits, err = c.exhibit.decodeList(vr)
		default:
			err = vr.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	var wall *models.Wall
	switch {
	case texture == nil && color != nil:
		wall = models.NewColoredWall(number, *color)
	case texture != nil && color == nil:
		wall = models.NewTexturedWall(number, *texture)
	case texture != nil && color != nil:
		wall = models.RestoreWall(number, *texture, *color)
	default:
		wall = models.NewTexturedWall(number, models.TextureNone)
	}
	for _, coordinate := range coordinates {
		wall.AddCoordinate(coordinate)
	}
	for _, e := range exhibits {
		if _, err := wall.PlaceExhibit(e); err != nil {
			return nil, err
		}
	}
	return wall, nil
}

// Encode implements Codec
func (c *WallCodec) Encode(vw bsonrw.ValueWriter, wall *models.Wall) error {
	w := writeDocument(vw, "wall")
	w.String(fieldWallNumber, wall.Number)
	w.Array(fieldWallCoordinates, len(wall.Coordinates), func(i int, vw bsonrw.ValueWriter) error {
		return c.vector.Encode(vw, wall.Coordinates[i])
	})
	w.String(fieldWallTexture, wall.Texture)
	w.Value(fieldWallColor, c.vector.encodeTo(wall.Color))
	c.exhibit.encodeList(w, fieldWallExhibits, wall.Exhibits())
	return w.End()
}

func (c *WallCodec) decodeList(vr bsonrw.ValueReader) ([]*models.Wall, error) {
	out := make([]*models.Wall, 0)
	err := readArray(vr, func(vr bsonrw.ValueReader) error {
		wall, err := c.Decode(vr)
		if err != nil {
			return err
		}
		out = append(out, wall)
		return nil
	})
	return out, err
}

func (c *WallCodec) encodeList(w *documentWriter, name string, list []*models.Wall) {
	w.Array(name, len(list), func(i int, vw bsonrw.ValueWriter) error {
		return c.Encode(vw, list[i])
	})
}
