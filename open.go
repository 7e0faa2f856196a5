package lha5

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
)

func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

// OpenArchive opens name for reading: local paths, s3:// locations and
// http(s):// URLs are all supported. A local path behaves as a plain
// os.Open, nothing more.
func OpenArchive(ctx context.Context, name string) (r io.ReadCloser, size int64, err error) {
	switch {
	case strings.HasPrefix(name, "http://"), strings.HasPrefix(name, "https://"):
		resp, err := http.Get(name) //nolint:gosec,noctx // CLI-provided archive location, not request-sourced
		if err != nil {
			return nil, 0, err
		}
		return resp.Body, resp.ContentLength, nil
	default:
		f, err := file.Open(ctx, name)
		if err != nil {
			return nil, 0, err
		}
		info, err := file.Stat(ctx, name)
		if err != nil {
			f.Close(ctx)
			return nil, 0, err
		}
		return &ctxReadCloser{ctx: ctx, f: f}, info.Size(), nil
	}
}

// CreateOutput creates name for writing, via the same local/s3
// abstraction as OpenArchive. Errors are returned unwrapped; callers
// that render them to a user (cmd/lha5) attach the "failed to open"
// framing themselves so it is only ever applied once.
func CreateOutput(ctx context.Context, name string) (io.WriteCloser, error) {
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &ctxWriteCloser{ctx: ctx, f: f}, nil
}

// ctxReadCloser adapts grailbio's context-taking file.File to io.ReadCloser.
type ctxReadCloser struct {
	ctx context.Context
	f   file.File
	r   io.Reader
}

func (c *ctxReadCloser) Read(p []byte) (int, error) {
	if c.r == nil {
		c.r = c.f.Reader(c.ctx)
	}
	return c.r.Read(p)
}

func (c *ctxReadCloser) Close() error { return c.f.Close(c.ctx) }

type ctxWriteCloser struct {
	ctx context.Context
	f   file.File
	w   io.Writer
}

func (c *ctxWriteCloser) Write(p []byte) (int, error) {
	if c.w == nil {
		c.w = c.f.Writer(c.ctx)
	}
	return c.w.Write(p)
}

func (c *ctxWriteCloser) Close() error { return c.f.Close(c.ctx) }
