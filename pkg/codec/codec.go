package codec

import (
	"bytes"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/models"
)

// Codec encodes and decodes one model type
type Codec[T any] interface {
	// Decode reads a value from the current position of vr
	Decode(vr bsonrw.ValueReader) (T, error)
	// Encode writes v to vw
	Encode(vw bsonrw.ValueWriter, v T) error
	// NativeType returns the type the codec owns
	NativeType() reflect.Type
}

// Serializer holds one constructed codec per model type. Container codecs
// share the leaf codecs built here.
type Serializer struct {
	Vector     *VectorCodec
	Exhibit    *ExhibitCodec
	Wall       *WallCodec
	Room       *RoomCodec
	Corridor   *CorridorCodec
	Exhibition *ExhibitionCodec

	codecs map[reflect.Type]interface{}
}

// NewSerializer builds the codec graph
func NewSerializer() *Serializer {
	vector := NewVectorCodec()
	exhibit := NewExhibitCodec(vector)
	wall := NewWallCodec(vector, exhibit)
	room := NewRoomCodec(vector, wall, exhibit)
	corridor := NewCorridorCodec(vector, wall, exhibit)
	exhibition := NewExhibitionCodec(room, corridor)

	s := &Serializer{
		Vector:     vector,
		Exhibit:    exhibit,
		Wall:       wall,
		Room:       room,
		Corridor:   corridor,
		Exhibition: exhibition,
		codecs:     make(map[reflect.Type]interface{}),
	}
	for _, c := range []interface{ NativeType() reflect.Type }{vector, exhibit, wall, room, corridor, exhibition} {
		s.codecs[c.NativeType()] = c
	}
	return s
}

// Lookup returns the codec registered for T. Asking for an unregistered type
// is a configuration error.
func Lookup[T any](s *Serializer) (Codec[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	c, ok := s.codecs[t]
	if !ok {
		return nil, errors.New(errors.ErrorTypeConfig, "no codec registered for type").
			WithDetail("type", t.String())
	}
	typed, ok := c.(Codec[T])
	if !ok {
		return nil, errors.New(errors.ErrorTypeInternal, "codec does not match its registered type").
			WithDetail("type", t.String())
	}
	return typed, nil
}

// MustLookup is like Lookup but panics. Use it while wiring at startup.
func MustLookup[T any](s *Serializer) Codec[T] {
	c, err := Lookup[T](s)
	if err != nil {
		panic(err)
	}
	return c
}

// Registry returns a driver registry that knows the model types in addition
// to the driver defaults.
func (s *Serializer) Registry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	register[models.Vector3f](reg, s.Vector)
	register[models.Exhibit](reg, s.Exhibit)
	register[*models.Wall](reg, s.Wall)
	register[*models.Room](reg, s.Room)
	register[*models.Corridor](reg, s.Corridor)
	register[*models.Exhibition](reg, s.Exhibition)
	return reg
}

// Marshal encodes an exhibition as a BSON document
func (s *Serializer) Marshal(e *models.Exhibition) ([]byte, error) {
	return encodeBytes[*models.Exhibition](s.Exhibition, e)
}

// Unmarshal decodes an exhibition from a BSON document
func (s *Serializer) Unmarshal(data []byte) (*models.Exhibition, error) {
	return s.Exhibition.Decode(bsonrw.NewBSONDocumentReader(data))
}

// MarshalExtJSON encodes an exhibition as relaxed or canonical extended JSON
func (s *Serializer) MarshalExtJSON(e *models.Exhibition, canonical bool) ([]byte, error) {
	var buf bytes.Buffer
	vw, err := bsonrw.NewExtJSONValueWriter(&buf, canonical, false)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create extended JSON writer")
	}
	if err := s.Exhibition.Encode(vw, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalExtJSON decodes an exhibition from extended JSON
func (s *Serializer) UnmarshalExtJSON(data []byte) (*models.Exhibition, error) {
	vr, err := bsonrw.NewExtJSONValueReader(bytes.NewReader(data), false)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeCodec, "failed to read extended JSON")
	}
	return s.Exhibition.Decode(vr)
}

func encodeBytes[T any](c Codec[T], v T) ([]byte, error) {
	var buf bytes.Buffer
	vw, err := bsonrw.NewBSONValueWriter(&buf)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create BSON writer")
	}
	if err := c.Encode(vw, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func register[T any](reg *bsoncodec.Registry, c Codec[T]) {
	adapter := &valueCodec[T]{codec: c}
	reg.RegisterTypeEncoder(c.NativeType(), adapter)
	reg.RegisterTypeDecoder(c.NativeType(), adapter)
}

// valueCodec adapts a Codec to the driver's reflection based interfaces
type valueCodec[T any] struct {
	codec Codec[T]
}

func (a *valueCodec[T]) name() string {
	return fmt.Sprintf("%sCodec", a.codec.NativeType())
}

// EncodeValue implements bsoncodec.ValueEncoder
func (a *valueCodec[T]) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	t := a.codec.NativeType()
	if !val.IsValid() || val.Type() != t {
		return bsoncodec.ValueEncoderError{Name: a.name(), Types: []reflect.Type{t}, Received: val}
	}
	if val.Kind() == reflect.Ptr && val.IsNil() {
		return vw.WriteNull()
	}
	return a.codec.Encode(vw, val.Interface().(T))
}

// DecodeValue implements bsoncodec.ValueDecoder
func (a *valueCodec[T]) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	t := a.codec.NativeType()
	if !val.CanSet() || val.Type() != t {
		return bsoncodec.ValueDecoderError{Name: a.name(), Types: []reflect.Type{t}, Received: val}
	}
	if vr.Type() == bsontype.Null {
		val.Set(reflect.Zero(t))
		return vr.ReadNull()
	}
	v, err := a.codec.Decode(vr)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(v))
	return nil
}
