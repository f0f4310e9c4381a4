package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cenkalti/backoff/v4"
)

// Source supplies the raw XML of one report.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads a report from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, backoff.Permanent(err)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		// a missing or unreadable file will not fix itself
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, backoff.Permanent(fmt.Errorf("read %s: %w", s.Path, err))
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return data, nil
}

func (s FileSource) String() string { return "file:" + s.Path }

// BytesSource serves a document already in memory, e.g. an HTTP body.
type BytesSource []byte

func (s BytesSource) Fetch(ctx context.Context) ([]byte, error) {
	return s, nil
}

func (s BytesSource) String() string { return fmt.Sprintf("bytes:%d", len(s)) }
