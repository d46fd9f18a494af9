// Package slicer provides an io.Reader that extracts regions of a seekable
// stream. Combined with an accumulating reader, it can pull out-of-order
// regions from a source that itself only supports forward reads.
package slicer

import (
	"io"
)

type Slice struct {
	Offset int64
	Length int64
}

func (s Slice) Overlaps(x Slice) bool {
	return x.Offset >= s.Offset && x.Offset < s.Offset+s.Length
}

func (s Slice) NewReader(r io.ReaderAt) *io.SectionReader {
	return io.NewSectionReader(r, s.Offset, s.Length)
}

// Reader reads the given regions of the underlying seekable stream, in
// order, as one concatenated stream.
type Reader struct {
	slices []Slice
	slice  Slice
	seeker io.ReadSeeker
	eof    bool
}

func NewReader(seeker io.ReadSeeker, slices []Slice) (*Reader, error) {
	r := &Reader{
		slices: slices,
		seeker: seeker,
	}
	return r, r.next()
}

func (r *Reader) next() error {
	if len(r.slices) == 0 {
		r.eof = true
		return nil
	}
	r.slice = r.slices[0]
	r.slices = r.slices[1:]
	_, err := r.seeker.Seek(r.slice.Offset, io.SeekStart)
	return err
}

func (r *Reader) Read(b []byte) (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	p := b
	if int64(len(p)) > r.slice.Length {
		p = p[:r.slice.Length]
	}
	n, err := r.seeker.Read(p)
	if n != 0 {
		if err == io.EOF {
			err = nil
		}
		r.slice.Length -= int64(n)
		if r.slice.Length == 0 {
			err = r.next()
		}
	}
	return n, err
}
