package codec

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/bsonrw"

	"github.com/ajitpratap0/vrem/pkg/models"
)

const (
	fieldX = "x"
	fieldY = "y"
	fieldZ = "z"
)

// VectorCodec encodes a Vector3f as {x, y, z}
type VectorCodec struct{}

// NewVectorCodec creates a VectorCodec
func NewVectorCodec() *VectorCodec {
	return &VectorCodec{}
}

// NativeType implements Codec
func (c *VectorCodec) NativeType() reflect.Type {
	return reflect.TypeOf(models.Vector3f{})
}

// Decode implements Codec. Missing components are zero.
func (c *VectorCodec) Decode(vr bsonrw.ValueReader) (models.Vector3f, error) {
	var v models.Vector3f
	err := readDocument(vr, "vector", func(name string, vr bsonrw.ValueReader) error {
		var err error
		switch name {
		case fieldX:
			v.X, err = readNumber(vr)
		case fieldY:
			v.Y, err = readNumber(vr)
		case fieldZ:
			v.Z, err = readNumber(vr)
		default:
			err = vr.Skip()
		}
		return err
	})
	return v, err
}

// Encode implements Codec
func (c *VectorCodec) Encode(vw bsonrw.ValueWriter, v models.Vector3f) error {
	w := writeDocument(vw, "vector")
	w.Double(fieldX, v.X)
	w.Double(fieldY, v.Y)
	w.Double(fieldZ, v.Z)
	return w.End()
}

// encodeTo returns a writer callback for documentWriter.Value
func (c *VectorCodec) encodeTo(v models.Vector3f) func(bsonrw.ValueWriter) error {
	return func(vw bsonrw.ValueWriter) error {
		return c.Encode(vw, v)
	}
}

// decodeOptional decodes a vector, returning nil for a null value
func (c *VectorCodec) decodeOptional(vr bsonrw.ValueReader) (*models.Vector3f, error) {
	if null, err := readNull(vr); null || err != nil {
		return nil, err
	}
	v, err := c.Decode(vr)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeOr reads a vector, returning def for a null value
func (c *VectorCodec) decodeOr(vr bsonrw.ValueReader, def models.Vector3f) (models.Vector3f, error) {
	v, err := c.decodeOptional(vr)
	if v == nil || err != nil {
		return def, err
	}
	return *v, nil
}
