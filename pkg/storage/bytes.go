package storage

import (
	"bytes"
)

type bytesReader struct {
	*bytes.Reader
}

var _ Reader = (*bytesReader)(nil)
var _ Sizer = (*bytesReader)(nil)

// NewBytesReader adapts an in-memory byte slice to the Reader interface.
// It supports ReadAt and knows its size, so NewSeeker serves it through an
// io.SectionReader rather than an accumulating reader.
func NewBytesReader(b []byte) *bytesReader {
	return &bytesReader{bytes.NewReader(b)}
}

func (*bytesReader) Close() error {
	return nil
}

func (b *bytesReader) Size() (int64, error) {
	return b.Reader.Size(), nil
}
