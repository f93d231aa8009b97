package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultLoadTimeout = 30 * time.Second
	DefaultMaxBytes    = 64 << 20
)

var ErrImageTooLarge = errors.New("image too large")

// Loader fetches and decodes the image behind a Ref. MaxBytes caps remote
// downloads; zero means DefaultMaxBytes.
type Loader struct {
	Client   *http.Client
	Timeout  time.Duration
	MaxBytes int64
}

func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Loader{Client: http.DefaultClient, Timeout: timeout}
}

// Load decodes the referenced image. It blocks; callers run it off the UI loop.
func (l *Loader) Load(ctx context.Context, ref Ref) (image.Image, error) {
	if ref.IsZero() {
		return nil, ErrEmptyRef
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	var (
		data []byte
		err  error
	)
	switch ref.kind {
	case RefURL:
		data, err = l.fetch(ctx, ref.location)
	case RefFile:
		data, err = readFile(ctx, ref.location)
	case RefBlob:
		data, err = ref.blob.Bytes()
	default:
		err = ErrEmptyRef
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref.Name(), err)
	}
	Logger().Debug("image decoded", "source", ref.String(), "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}
	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetch image: %w (over %d bytes)", ErrImageTooLarge, limit)
	}
	return data, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return data, nil
}
