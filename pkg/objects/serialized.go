package objects

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"strconv"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

// ObjectContent represents raw object data (before compression, without header).
// For an entity snapshot this is its canonical JSON encoding.
type ObjectContent []byte

// CompressedData represents DEFLATE-compressed data.
// Objects are stored on disk in compressed form.
type CompressedData []byte

// SerializedObject represents an object in its serialized storage format
// (with header). Format: "<kind> <size>\0<content>"
// Example: "issue 42\0{...json...}"
type SerializedObject []byte

// ObjectContent methods

// Bytes returns the underlying byte slice
func (oc ObjectContent) Bytes() []byte {
	return []byte(oc)
}

// Size returns the size of the content in bytes
func (oc ObjectContent) Size() int64 {
	return int64(len(oc))
}

// IsEmpty returns true if the content is empty
func (oc ObjectContent) IsEmpty() bool {
	return len(oc) == 0
}

// Compress compresses the content using the DEFLATE algorithm.
// This is a pure bytes-to-bytes transform with no filesystem side effects.
func (oc ObjectContent) Compress() (CompressedData, error) {
	if oc.IsEmpty() {
		return CompressedData{}, nil
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("create compressor: %w", err)
	}

	if _, err := w.Write(oc); err != nil {
		w.Close()
		return nil, fmt.Errorf("compress data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	return CompressedData(buf.Bytes()), nil
}

// CompressedData methods

// Bytes returns the underlying byte slice
func (cd CompressedData) Bytes() []byte {
	return []byte(cd)
}

// Size returns the size of the compressed data in bytes
func (cd CompressedData) Size() int64 {
	return int64(len(cd))
}

// IsEmpty returns true if the compressed data is empty
func (cd CompressedData) IsEmpty() bool {
	return len(cd) == 0
}

// Decompress decompresses the DEFLATE-compressed data.
// Returns the original bytes or an error if the stream is damaged.
func (cd CompressedData) Decompress() (ObjectContent, error) {
	if cd.IsEmpty() {
		return ObjectContent{}, nil
	}

	r := flate.NewReader(bytes.NewReader(cd))
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress data: %w", err)
	}

	return ObjectContent(data), nil
}

// SerializedObject methods

// Bytes returns the underlying byte slice
func (so SerializedObject) Bytes() []byte {
	return []byte(so)
}

// Size returns the size of the serialized object in bytes
func (so SerializedObject) Size() int64 {
	return int64(len(so))
}

// ParseHeader parses the header of a serialized object.
// Returns the object kind, content size, and the offset where content starts.
// Format: "<kind> <size>\0<content>"
func (so SerializedObject) ParseHeader() (ObjectKind, int64, int, error) {
	data := []byte(so)
	nullIndex := bytes.IndexByte(data, NullByte)
	if nullIndex == -1 {
		return "", 0, 0, fmt.Errorf("invalid object header: missing null byte")
	}

	spaceIndex := bytes.IndexByte(data[:nullIndex], SpaceByte)
	if spaceIndex == -1 {
		return "", 0, 0, fmt.Errorf("invalid object header: missing space")
	}

	kind, err := ParseObjectKind(string(data[:spaceIndex]))
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid object header: %w", err)
	}

	size, err := strconv.ParseInt(string(data[spaceIndex+1:nullIndex]), 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid size in header: %w", err)
	}

	return kind, size, nullIndex + 1, nil
}

// Kind returns the object kind from the header
func (so SerializedObject) Kind() (ObjectKind, error) {
	kind, _, _, err := so.ParseHeader()
	return kind, err
}

// Content extracts the content portion from a serialized object (without header)
func (so SerializedObject) Content() (ObjectContent, error) {
	_, expectedSize, contentStart, err := so.ParseHeader()
	if err != nil {
		return nil, err
	}

	content := []byte(so)[contentStart:]
	if int64(len(content)) != expectedSize {
		return nil, fmt.Errorf("content size mismatch: expected %d, got %d", expectedSize, len(content))
	}

	return ObjectContent(content), nil
}

// Digest computes the digest over the full serialized bytes (header included),
// so two snapshots of different kinds never collide even with equal content
func (so SerializedObject) Digest() Digest {
	return NewDigest(so.Bytes())
}

// Compress compresses the entire serialized object
func (so SerializedObject) Compress() (CompressedData, error) {
	return ObjectContent(so).Compress()
}

// NewSerializedObject creates a serialized object from kind and content
func NewSerializedObject(kind ObjectKind, content ObjectContent) SerializedObject {
	header := fmt.Sprintf("%s %d", kind, content.Size())
	data := make([]byte, 0, len(header)+1+len(content))
	data = append(data, header...)
	data = append(data, NullByte)
	data = append(data, content.Bytes()...)
	return SerializedObject(data)
}

// ComputeDigest computes the storage digest for a kind/content pair
func ComputeDigest(kind ObjectKind, content ObjectContent) Digest {
	return NewSerializedObject(kind, content).Digest()
}
