package storage

import (
	"context"
	"errors"
	"io"
	"net/http"

	acerr "github.com/netvl/acc-reader/errors"
)

// HTTPEngine is read-only and returns forward-only readers: response bodies
// cannot be rewound, so random access over them goes through NewSeeker's
// accumulating path.
type HTTPEngine struct{}

var _ Engine = (*HTTPEngine)(nil)

func NewHTTP() *HTTPEngine {
	return &HTTPEngine{}
}

func (*HTTPEngine) Get(ctx context.Context, u *URI) (Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, acerr.ErrNotFound(u.String())
		}
		return nil, errors.New(resp.Status)
	}
	return resp.Body, nil
}

func (*HTTPEngine) Put(context.Context, *URI) (io.WriteCloser, error) {
	return nil, ErrNotSupported
}

func (*HTTPEngine) PutIfNotExists(context.Context, *URI, []byte) error {
	return ErrNotSupported
}

func (*HTTPEngine) Delete(context.Context, *URI) error {
	return ErrNotSupported
}

func (*HTTPEngine) DeleteByPrefix(context.Context, *URI) error {
	return ErrNotSupported
}

func (*HTTPEngine) Size(ctx context.Context, u *URI) (int64, error) {
	return 0, ErrNotSupported
}

func (*HTTPEngine) Exists(context.Context, *URI) (bool, error) {
	return false, ErrNotSupported
}

func (*HTTPEngine) List(context.Context, *URI) ([]Info, error) {
	return nil, ErrNotSupported
}
