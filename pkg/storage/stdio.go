package storage

import (
	"context"
	"fmt"
	"io"
	"os"
)

// StdioEngine exposes the process's standard streams. Its readers are
// forward-only even though *os.File has a ReadAt method, since ReadAt fails
// at runtime on pipes and terminals, so Get hides everything but Read.
type StdioEngine struct{}

var _ Engine = (*StdioEngine)(nil)

func NewStdio() *StdioEngine {
	return &StdioEngine{}
}

func (*StdioEngine) Get(_ context.Context, u *URI) (Reader, error) {
	f, err := stdioFile(u)
	if err != nil {
		return nil, err
	}
	return &stdioReader{f}, nil
}

func (*StdioEngine) Put(_ context.Context, u *URI) (io.WriteCloser, error) {
	f, err := stdioFile(u)
	if err != nil {
		return nil, err
	}
	return &stdioWriter{f}, nil
}

func (*StdioEngine) PutIfNotExists(context.Context, *URI, []byte) error {
	return ErrNotSupported
}

func (*StdioEngine) Delete(context.Context, *URI) error {
	return ErrNotSupported
}

func (*StdioEngine) DeleteByPrefix(context.Context, *URI) error {
	return ErrNotSupported
}

func (*StdioEngine) Size(context.Context, *URI) (int64, error) {
	return 0, ErrNotSupported
}

func (*StdioEngine) Exists(_ context.Context, u *URI) (bool, error) {
	if _, err := stdioFile(u); err != nil {
		return false, err
	}
	return true, nil
}

func (*StdioEngine) List(context.Context, *URI) ([]Info, error) {
	return nil, ErrNotSupported
}

func stdioFile(u *URI) (*os.File, error) {
	switch u.Path {
	case "/stdin":
		return os.Stdin, nil
	case "/stdout":
		return os.Stdout, nil
	case "/stderr":
		return os.Stderr, nil
	}
	return nil, fmt.Errorf("unknown stdio path %q", u.Path)
}

// stdioReader narrows *os.File to Read only. Closing is a no-op: the
// process owns its standard streams.
type stdioReader struct {
	io.Reader
}

func (*stdioReader) Close() error { return nil }

type stdioWriter struct {
	io.Writer
}

func (*stdioWriter) Close() error { return nil }
