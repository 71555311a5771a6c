package codec

import (
	stderrors "errors"
	"fmt"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ajitpratap0/vrem/pkg/errors"
)

// readDocument opens a document scope on vr and calls fn for every element
// until the scope ends. fn must consume the element's value.
func readDocument(vr bsonrw.ValueReader, entity string, fn func(name string, vr bsonrw.ValueReader) error) error {
	dr, err := vr.ReadDocument()
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeCodec, "expected document").
			WithDetail("entity", entity)
	}
	for {
		name, evr, err := dr.ReadElement()
		if stderrors.Is(err, bsonrw.ErrEOD) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeCodec, "failed to read element").
				WithDetail("entity", entity)
		}
		if err := fn(name, evr); err != nil {
			return errors.Wrap(err, errors.ErrorTypeCodec, "failed to decode field").
				WithDetail("entity", entity).
				WithDetail("field", name)
		}
	}
}

// readArray opens an array scope on vr and calls fn for every value.
func readArray(vr bsonrw.ValueReader, fn func(vr bsonrw.ValueReader) error) error {
	ar, err := vr.ReadArray()
	if err != nil {
		return err
	}
	for {
		evr, err := ar.ReadValue()
		if stderrors.Is(err, bsonrw.ErrEOA) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(evr); err != nil {
			return err
		}
	}
}

// readNull consumes a BSON null and reports whether the value was null.
func readNull(vr bsonrw.ValueReader) (bool, error) {
	if vr.Type() != bsontype.Null {
		return false, nil
	}
	return true, vr.ReadNull()
}

func readString(vr bsonrw.ValueReader) (string, error) {
	if null, err := readNull(vr); null || err != nil {
		return "", err
	}
	return vr.ReadString()
}

// readOptionalString returns nil for a null value
func readOptionalString(vr bsonrw.ValueReader) (*string, error) {
	if null, err := readNull(vr); null || err != nil {
		return nil, err
	}
	s, err := vr.ReadString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// readNumber reads any numeric BSON value as a float64
func readNumber(vr bsonrw.ValueReader) (float64, error) {
	switch vr.Type() {
	case bsontype.Double:
		return vr.ReadDouble()
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		return float64(i), err
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		return float64(i), err
	case bsontype.Null:
		return math.NaN(), vr.ReadNull()
	default:
		return 0, fmt.Errorf("cannot read %s as a number", vr.Type())
	}
}

// readLabel reads a string, or a number rendered as a string
func readLabel(vr bsonrw.ValueReader) (string, error) {
	switch vr.Type() {
	case bsontype.String:
		return vr.ReadString()
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		return strconv.FormatInt(int64(i), 10), err
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		return strconv.FormatInt(i, 10), err
	case bsontype.Double:
		f, err := vr.ReadDouble()
		return strconv.FormatFloat(f, 'f', -1, 64), err
	case bsontype.Null:
		return "", vr.ReadNull()
	default:
		return "", fmt.Errorf("cannot read %s as a label", vr.Type())
	}
}

func readObjectID(vr bsonrw.ValueReader) (primitive.ObjectID, error) {
	switch vr.Type() {
	case bsontype.ObjectID:
		return vr.ReadObjectID()
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return primitive.NilObjectID, err
		}
		return primitive.ObjectIDFromHex(s)
	case bsontype.Null:
		return primitive.NilObjectID, vr.ReadNull()
	default:
		return primitive.NilObjectID, fmt.Errorf("cannot read %s as an object id", vr.Type())
	}
}

// documentWriter writes the elements of one document and keeps the first
// error, so encoders can list their fields in order without checking each.
type documentWriter struct {
	dw     bsonrw.DocumentWriter
	entity string
	err    error
}

func writeDocument(vw bsonrw.ValueWriter, entity string) *documentWriter {
	dw, err := vw.WriteDocument()
	if err != nil {
		err = errors.Wrap(err, errors.ErrorTypeCodec, "failed to start document").
			WithDetail("entity", entity)
	}
	return &documentWriter{dw: dw, entity: entity, err: err}
}

// Value writes one element using fn
func (w *documentWriter) Value(name string, fn func(vw bsonrw.ValueWriter) error) {
	if w.err != nil {
		return
	}
	vw, err := w.dw.WriteDocumentElement(name)
	if err == nil {
		err = fn(vw)
	}
	if err != nil {
		w.err = errors.Wrap(err, errors.ErrorTypeCodec, "failed to encode field").
			WithDetail("entity", w.entity).
			WithDetail("field", name)
	}
}

func (w *documentWriter) String(name, value string) {
	w.Value(name, func(vw bsonrw.ValueWriter) error { return vw.WriteString(value) })
}

func (w *documentWriter) Double(name string, value float64) {
	w.Value(name, func(vw bsonrw.ValueWriter) error { return vw.WriteDouble(value) })
}

func (w *documentWriter) ObjectID(name string, value primitive.ObjectID) {
	w.Value(name, func(vw bsonrw.ValueWriter) error { return vw.WriteObjectID(value) })
}

// Array writes an array of n elements, calling fn for each
func (w *documentWriter) Array(name string, n int, fn func(i int, vw bsonrw.ValueWriter) error) {
	w.Value(name, func(vw bsonrw.ValueWriter) error {
		aw, err := vw.WriteArray()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			evw, err := aw.WriteArrayElement()
			if err != nil {
				return err
			}
			if err := fn(i, evw); err != nil {
				return err
			}
		}
		return aw.WriteArrayEnd()
	})
}

// End closes the document and returns the first error encountered
func (w *documentWriter) End() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dw.WriteDocumentEnd(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeCodec, "failed to end document").
			WithDetail("entity", w.entity)
	}
	return nil
}
