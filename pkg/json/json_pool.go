// Package json wraps goccy/go-json for sidecar parsing and CLI output, with
// pooled buffers for repeated encoding.
package json

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/ajitpratap0/vrem/pkg/pool"
)

// maxPooledBuffer is the largest buffer kept for reuse
const maxPooledBuffer = 1024 * 1024

var buffers = pool.New(
	func() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 4096)) },
	func(b *bytes.Buffer) { b.Reset() },
).WithKeep(func(b *bytes.Buffer) bool { return b.Cap() <= maxPooledBuffer })

// getBuffer gets an empty pooled bytes.Buffer
func getBuffer() *bytes.Buffer {
	return buffers.Get()
}

// putBuffer returns a buffer to the pool. Buffers that grew past 1 MiB are
// dropped.
func putBuffer(buf *bytes.Buffer) {
	buffers.Put(buf)
}

// Unmarshal is a drop-in replacement for json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// MarshalToWriter writes v to w followed by a newline. A non-empty indent
// pretty prints.
func MarshalToWriter(w io.Writer, v interface{}, indent string) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}

// Indent reformats already encoded JSON, such as extended JSON produced by
// the BSON codecs.
func Indent(src []byte, indent string) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := gojson.Indent(buf, src, "", indent); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
