package markup

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLoaderSources(t *testing.T) {
	data := encodePNG(t, solidImage(7, 3, color.White))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plan.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "plan.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name string
		ref  Ref
	}{
		{name: "url", ref: URLRef(srv.URL + "/plan.png")},
		{name: "file", ref: FileRef(path)},
		{name: "blob", ref: BlobRef(NewBlob("plan.png", data))},
	}
	loader := NewLoader(time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := loader.Load(context.Background(), tt.ref)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := img.Bounds().Size(); got != image.Pt(7, 3) {
				t.Fatalf("size = %v, want 7x3", got)
			}
		})
	}
}

func TestLoaderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/slow.png":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		case "/garbage.png":
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	released := NewBlob("gone.png", []byte{1, 2, 3})
	released.Release()

	loader := NewLoader(50 * time.Millisecond)
	for name, ref := range map[string]Ref{
		"empty":    {},
		"missing":  URLRef(srv.URL + "/missing.png"),
		"garbage":  URLRef(srv.URL + "/garbage.png"),
		"timeout":  URLRef(srv.URL + "/slow.png"),
		"nofile":   FileRef(filepath.Join(t.TempDir(), "nope.png")),
		"released": BlobRef(released),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := loader.Load(context.Background(), ref); err == nil {
				t.Fatal("Load() error = nil, want failure")
			}
		})
	}

	if _, err := loader.Load(context.Background(), BlobRef(released)); !errors.Is(err, ErrBlobReleased) {
		t.Fatalf("released blob err = %v, want ErrBlobReleased", err)
	}
}

func TestLoaderRejectsOversizedDownload(t *testing.T) {
	data := encodePNG(t, solidImage(7, 3, color.White))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	loader := NewLoader(time.Second)
	loader.MaxBytes = int64(len(data))
	if _, err := loader.Load(context.Background(), URLRef(srv.URL+"/plan.png")); err != nil {
		t.Fatalf("Load() at the limit error = %v", err)
	}

	loader.MaxBytes = int64(len(data)) - 1
	_, err := loader.Load(context.Background(), URLRef(srv.URL+"/plan.png"))
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("Load() over the limit err = %v, want ErrImageTooLarge", err)
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in       string
		kind     RefKind
		location string
		name     string
	}{
		{"https://example.com/a/plan.jpg?w=200", RefURL, "https://example.com/a/plan.jpg?w=200", "plan"},
		{"HTTP://example.com/x.png", RefURL, "HTTP://example.com/x.png", "x"},
		{"/tmp/site/floor.png", RefFile, "/tmp/site/floor.png", "floor"},
		{"file:///tmp/roof.webp", RefFile, "/tmp/roof.webp", "roof"},
		{"   ", RefNone, "", "markup"},
	}
	for _, tt := range tests {
		ref := ParseRef(tt.in)
		if ref.Kind() != tt.kind || ref.String() != tt.location || ref.Name() != tt.name {
			t.Errorf("ParseRef(%q) = {%v %q %q}, want {%v %q %q}",
				tt.in, ref.Kind(), ref.String(), ref.Name(), tt.kind, tt.location, tt.name)
		}
	}
}
