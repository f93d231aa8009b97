package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"redline/internal/markup"
)

// PNGFile saves artifacts as PNG files in Dir.
type PNGFile struct {
	dirWriter
}

var _ markup.Saver = PNGFile{}

func NewPNGFile(dir string) PNGFile {
	return PNGFile{dirWriter{Dir: dir}}
}

func (p PNGFile) withClock(now func() time.Time) PNGFile {
	p.now = now
	return p
}

func (p PNGFile) SaveMarkup(ctx context.Context, a markup.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.Format != "png" {
		return "", fmt.Errorf("unsupported artifact format %q", a.Format)
	}
	path, err := p.path(a.Name, "png")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("write png: %w", err)
	}
	return path, nil
}
