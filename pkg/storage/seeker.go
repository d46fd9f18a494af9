package storage

import (
	"io"

	accreader "github.com/netvl/acc-reader"
)

// NewSeeker provides a seeker implementation on top of Reader. Readers that
// support ReadAt and know their size are wrapped in an io.SectionReader, so
// seeks cost nothing. Forward-only readers, like HTTP response bodies and
// stdio, fall back to an accumulating reader, which buffers everything read
// so far and so can satisfy any backward seek at the price of memory
// proportional to the bytes consumed.
func NewSeeker(r Reader) *Seeker {
	if ra, ok := r.(io.ReaderAt); ok {
		if size, err := Size(r); err == nil {
			return &Seeker{io.NewSectionReader(ra, 0, size), r}
		}
	}
	return &Seeker{accreader.New(r), r}
}

type Seeker struct {
	io.ReadSeeker
	Reader
}

// Read resolves the ambiguous selector s.Read to s.ReadSeeker.Read.
func (s *Seeker) Read(b []byte) (int, error) {
	return s.ReadSeeker.Read(b)
}
