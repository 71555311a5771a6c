// Package codec encodes and decodes the exhibition model to and from BSON.
//
// Every model type has a hand-written codec that walks the document with the
// driver's streaming reader and writer instead of reflection:
//
//	Exhibition -> Room, Corridor -> Wall -> Exhibit -> Vector3f
//
// Container codecs receive their child codecs at construction time.
// NewSerializer wires the whole graph once; Serializer.Registry exposes the
// codecs to the MongoDB driver so collections can read and write model types
// directly.
//
// # Wire compatibility
//
// Field write order is fixed per entity and is part of the stored format.
// Decoding accepts fields in any order, skips unknown names, and fills
// documented defaults for missing optional fields. Unset optional fields are
// omitted on write; arrays are always written, even when empty.
package codec
