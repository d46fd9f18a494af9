// Package accreader provides an accumulating reader that layers io.Seeker
// over any io.Reader.
//
// A Reader wraps a forward-only source and keeps an internal buffer holding
// everything read from it so far, allowing previously seen data to be
// revisited through the Seek interface. When a seek target lies beyond what
// has been read, the Reader pulls exactly the missing bytes from the source.
// Seeking relative to the end necessarily buffers the entire remaining
// stream first, so it will block forever on sockets and other never-ending
// sources.
//
// The buffer grows monotonically with the total number of bytes ever read
// and is never compacted, so a Reader should be discarded as soon as seeking
// capability is no longer needed when working with large streams.
package accreader

import (
	"errors"
	"io"
	"math"
	"syscall"

	acerr "github.com/netvl/acc-reader/errors"
)

// Default sizing hints for the internal buffer. Capacity is the space
// reserved at construction; Increment is how many bytes are requested from
// the source per Fill refill. Neither affects behavior beyond read
// granularity.
const (
	DefaultCapacity  = 4096
	DefaultIncrement = 1024
)

// Reader provides io.Reader, io.Seeker, and io.ByteReader over a wrapped
// forward-only source. It buffers everything it reads and satisfies
// backward seeks purely from the buffer; the source is never rewound.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	source io.Reader
	// invariant: 0 <= pos <= len(buf)
	buf []byte
	pos int
	inc int
}

var _ io.ReadSeeker = (*Reader)(nil)
var _ io.ByteReader = (*Reader)(nil)

// New creates a Reader wrapping source with the default buffer capacity and
// increment. No bytes are read from the source until the first operation
// that needs them.
func New(source io.Reader) *Reader {
	return NewSize(source, DefaultCapacity, DefaultIncrement)
}

// NewSize is like New but lets the caller size the initial buffer capacity
// and the per-refill increment used by Fill. Non-positive values fall back
// to the defaults.
func NewSize(source io.Reader, capacity, increment int) *Reader {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if increment <= 0 {
		increment = DefaultIncrement
	}
	return &Reader{
		source: source,
		buf:    make([]byte, 0, capacity),
		inc:    increment,
	}
}

// Release hands back the wrapped source, discarding all accumulated data.
// The source is left at whatever position the reads already performed put
// it at. The Reader must not be used afterward.
func (r *Reader) Release() io.Reader {
	source := r.source
	r.source = nil
	r.buf = nil
	r.pos = 0
	return source
}

// Position returns the current logical read position.
func (r *Reader) Position() int64 {
	return int64(r.pos)
}

// Buffered returns the number of bytes that can be read without touching
// the source.
func (r *Reader) Buffered() int {
	return len(r.buf) - r.pos
}

// Read implements io.Reader. Pending buffered bytes are served first
// without touching the source; otherwise a single read against the source
// is made, and whatever arrives is both copied to p and retained in the
// internal buffer so later seeks can revisit it. Like any io.Reader, Read
// may return fewer bytes than requested mid-stream.
func (r *Reader) Read(p []byte) (int, error) {
	if n := len(r.buf) - r.pos; n > 0 {
		if n > len(p) {
			n = len(p)
		}
		copy(p, r.buf[r.pos:r.pos+n])
		r.pos += n
		return n, nil
	}
	n, err := r.readSource(p)
	r.buf = append(r.buf, p[:n]...)
	r.pos += n
	return n, err
}

// Fill returns all buffered, unconsumed bytes without advancing the read
// position, first requesting up to the configured increment from the source
// if nothing is pending. An empty slice with a nil error means end of
// stream. The returned slice is only valid until the next operation on the
// Reader.
func (r *Reader) Fill() ([]byte, error) {
	if r.pos < len(r.buf) {
		return r.buf[r.pos:], nil
	}
	old := len(r.buf)
	r.grow(r.inc)
	n, err := r.readSource(r.buf[old : old+r.inc])
	r.buf = r.buf[:old+n]
	if err != nil && err != io.EOF {
		return nil, err
	}
	return r.buf[r.pos:], nil
}

// Consume advances the read position past n bytes previously returned by
// Fill. Consuming more than is buffered clamps at the end of the buffer;
// a non-positive n is a no-op, never moving the position backward.
func (r *Reader) Consume(n int) {
	if n <= 0 {
		return
	}
	if r.pos += n; r.pos > len(r.buf) {
		r.pos = len(r.buf)
	}
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.Fill()
	if err != nil {
		return 0, err
	}
	if len(b) == 0 {
		return 0, io.EOF
	}
	r.Consume(1)
	return b[0], nil
}

// Seek implements io.Seeker. Backward seeks are satisfied from the buffer
// alone; forward seeks past the buffered data read exactly the shortfall
// from the source, and io.SeekEnd drains the source completely to discover
// the total length. A target beyond the end of the stream or before its
// beginning fails with an acerr Invalid error and leaves the position
// unchanged, though any bytes read from the source while attempting the
// seek remain buffered.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		if offset < 0 {
			return 0, acerr.ErrInvalid("seeking before the beginning of stream")
		}
		return r.seekTo(offset)
	case io.SeekCurrent:
		switch {
		case offset == 0:
			return int64(r.pos), nil
		case offset < 0:
			// offset may be math.MinInt64, which has no positive
			// counterpart, so compare without negating it.
			if offset == math.MinInt64 || -offset > int64(r.pos) {
				return 0, acerr.ErrInvalid("seeking before the beginning of stream")
			}
			r.pos = int(int64(r.pos) + offset)
			return int64(r.pos), nil
		default:
			if offset > math.MaxInt64-int64(r.pos) {
				// The target overflows int64; no stream reaches it.
				return 0, acerr.ErrInvalid("seeking beyond end of stream")
			}
			return r.seekTo(int64(r.pos) + offset)
		}
	case io.SeekEnd:
		if offset > 0 {
			return 0, acerr.ErrInvalid("seeking beyond end of stream")
		}
		if err := r.drain(); err != nil {
			return 0, err
		}
		if offset == math.MinInt64 || -offset > int64(len(r.buf)) {
			return 0, acerr.ErrInvalid("seeking before the beginning of stream")
		}
		r.pos = int(int64(len(r.buf)) + offset)
		return int64(r.pos), nil
	default:
		return 0, acerr.ErrInvalid("invalid whence %d", whence)
	}
}

// seekTo positions the cursor at the absolute offset target, reading the
// shortfall from the source when the target lies beyond the buffered data.
func (r *Reader) seekTo(target int64) (int64, error) {
	if target < 0 {
		return 0, acerr.ErrInvalid("seeking before the beginning of stream")
	}
	if target > int64(len(r.buf)) {
		if err := r.fillTo(target - int64(len(r.buf))); err != nil {
			return 0, err
		}
		if target > int64(len(r.buf)) {
			// The source ended before the target.
			return 0, acerr.ErrInvalid("seeking beyond end of stream")
		}
	}
	r.pos = int(target)
	return target, nil
}

// readSource issues one read against the source, retrying transparently on
// interruption (EINTR-class errors) as long as no data has arrived.
func (r *Reader) readSource(p []byte) (int, error) {
	for {
		n, err := r.source.Read(p)
		if err != nil && errors.Is(err, syscall.EINTR) {
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

// fillTo reads up to n more bytes from the source into the buffer, looping
// on short reads until either n bytes arrived or the source reported end of
// stream. The buffer length always reflects the bytes actually read, even
// on error.
func (r *Reader) fillTo(n int64) error {
	old := len(r.buf)
	r.grow(int(n))
	target := r.buf[old : old+int(n)]
	read := 0
	var err error
	for read < len(target) {
		var nn int
		nn, err = r.readSource(target[read:])
		read += nn
		if err != nil || nn == 0 {
			break
		}
	}
	r.buf = r.buf[:old+read]
	if err == io.EOF {
		err = nil
	}
	return err
}

// drain reads the source to exhaustion, appending everything to the buffer.
func (r *Reader) drain() error {
	for {
		if len(r.buf) == cap(r.buf) {
			r.grow(r.inc)
		}
		old := len(r.buf)
		n, err := r.readSource(r.buf[old:cap(r.buf)])
		r.buf = r.buf[:old+n]
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// grow reserves space for n more bytes past the current length. The extra
// space is only ever exposed after a source read has overwritten it, so no
// uninitialized bytes become visible to callers.
func (r *Reader) grow(n int) {
	if cap(r.buf)-len(r.buf) >= n {
		return
	}
	buf := make([]byte, len(r.buf), len(r.buf)+n)
	copy(buf, r.buf)
	r.buf = buf
}
