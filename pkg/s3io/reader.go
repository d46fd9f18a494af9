package s3io

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Reader reads an S3 object through ranged GET requests. It implements
// io.Reader, io.ReaderAt, and io.Seeker; the object size is known up front
// from a HEAD request, so all seek arithmetic is local.
type Reader struct {
	ctx        context.Context
	downloader *s3manager.Downloader
	bucket     string
	key        string
	size       int64
	offset     int64
}

func NewReader(ctx context.Context, path string, client s3iface.S3API) (*Reader, error) {
	info, err := Stat(ctx, path, client)
	if err != nil {
		return nil, err
	}
	bucket, key, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		ctx:        ctx,
		downloader: s3manager.NewDownloaderWithClient(client),
		bucket:     bucket,
		key:        key,
		size:       info.Size,
	}, nil
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.offset
	case io.SeekEnd:
		offset += r.size
	default:
		return 0, fmt.Errorf("s3io.Reader.Seek: invalid whence %d", whence)
	}
	if offset < 0 {
		return 0, fmt.Errorf("s3io.Reader.Seek: negative position")
	}
	r.offset = offset
	return offset, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.offset >= r.size {
		return 0, io.EOF
	}
	n, err := r.ReadAt(p, r.offset)
	r.offset += int64(n)
	return n, err
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if off >= r.size {
		return 0, io.EOF
	}
	var eof error
	if remaining := r.size - off; int64(len(p)) > remaining {
		p = p[:remaining]
		eof = io.EOF
	}
	wab := aws.NewWriteAtBuffer(p)
	n, err := r.downloader.DownloadWithContext(r.ctx, wab, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1)),
	})
	if err != nil {
		return 0, err
	}
	if buf := wab.Bytes(); len(buf) > len(p) {
		// backing buffer reassigned, copy over some of the data
		copy(p, buf)
		n = int64(len(p))
	}
	return int(n), eof
}

func (r *Reader) Size() (int64, error) {
	return r.size, nil
}

func (r *Reader) Close() error {
	return nil
}
