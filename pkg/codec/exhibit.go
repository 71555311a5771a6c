package codec

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/bsonrw"

	"github.com/ajitpratap0/vrem/pkg/models"
)

const (
	fieldExhibitName        = "name"
	fieldExhibitDescription = "description"
	fieldExhibitPath        = "path"
	fieldExhibitType        = "type"
	fieldExhibitPosition    = "position"
	fieldExhibitSize        = "size"
)

// ExhibitCodec encodes an Exhibit
type ExhibitCodec struct {
	vector *VectorCodec
}

// NewExhibitCodec creates an ExhibitCodec
func NewExhibitCodec(vector *VectorCodec) *ExhibitCodec {
	return &ExhibitCodec{vector: vector}
}

// NativeType implements Codec
func (c *ExhibitCodec) NativeType() reflect.Type {
	return reflect.TypeOf(models.Exhibit{})
}

// Decode implements Codec. A missing type decodes as IMAGE.
func (c *ExhibitCodec) Decode(vr bsonrw.ValueReader) (models.Exhibit, error) {
	e := models.Exhibit{Type: models.ExhibitTypeImage}
	err := readDocument(vr, "exhibit", func(name string, vr bsonrw.ValueReader) error {
		var err error
		switch name {
		case fieldExhibitName:
			e.Name, err = readString(vr)
		case fieldExhibitDescription:
			e.Description, err = readString(vr)
		case fieldExhibitPath:
			e.Path, err = readString(vr)
		case fieldExhibitType:
			var s string
			if s, err = readString(vr); err == nil && s != "" {
				e.Type, err = models.ParseExhibitType(s)
			}
		case fieldExhibitPosition:
			e.Position, err = c.vector.decodeOr(vr, models.Origin)
		case fieldExhibitSize:
			e.Size, err = c.vector.decodeOr(vr, models.Origin)
		default:
			err = vr.Skip()
		}
		return err
	})
	if err != nil {
		return models.Exhibit{}, err
	}
	return models.NewExhibit(e.Name, e.Description, e.Path, e.Type, e.Position, e.Size), nil
}

// Encode implements Codec
func (c *ExhibitCodec) Encode(vw bsonrw.ValueWriter, e models.Exhibit) error {
	w := writeDocument(vw, "exhibit")
	w.String(fieldExhibitName, e.Name)
	w.String(fieldExhibitDescription, e.Description)
	w.String(fieldExhibitPath, e.Path)
	w.String(fieldExhibitType, string(e.Type))
	w.Value(fieldExhibitPosition, c.vector.encodeTo(e.Position))
	w.Value(fieldExhibitSize, c.vector.encodeTo(e.Size))
	return w.End()
}

func (c *ExhibitCodec) decodeList(vr bsonrw.ValueReader) ([]models.Exhibit, error) {
	out := make([]models.Exhibit, 0)
	err := readArray(vr, func(vr bsonrw.ValueReader) error {
		e, err := c.Decode(vr)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func (c *ExhibitCodec) encodeList(w *documentWriter, name string, list []models.Exhibit) {
	w.Array(name, len(list), func(i int, vw bsonrw.ValueWriter) error {
		return c.Encode(vw, list[i])
	})
}
