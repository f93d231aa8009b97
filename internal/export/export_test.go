package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"redline/internal/markup"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
}

func testArtifact(t *testing.T) markup.Artifact {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(2, 2, color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return markup.Artifact{
		Name: "floor plan-markup", Source: "/tmp/floor plan.png", Format: "png",
		Width: 6, Height: 4, Data: buf.Bytes(),
	}
}

func TestPNGFileWritesArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	a := testArtifact(t)
	path, err := NewPNGFile(dir).withClock(fixedClock).SaveMarkup(context.Background(), a)
	if err != nil {
		t.Fatalf("SaveMarkup() error = %v", err)
	}
	if want := filepath.Join(dir, "floor_plan-markup-20261019-093000.png"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, a.Data) {
		t.Fatal("written bytes differ from artifact")
	}
}

func TestPDFFileWritesDocument(t *testing.T) {
	dir := t.TempDir()
	path, err := NewPDFFile(dir).withClock(fixedClock).SaveMarkup(context.Background(), testArtifact(t))
	if err != nil {
		t.Fatalf("SaveMarkup() error = %v", err)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Fatalf("path = %q, want .pdf", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestRejectsUnsupportedArtifacts(t *testing.T) {
	ctx := context.Background()
	a := testArtifact(t)
	a.Format = "jpeg"
	if _, err := NewPNGFile(t.TempDir()).SaveMarkup(ctx, a); err == nil {
		t.Fatal("PNGFile accepted a jpeg artifact")
	}
	if _, err := NewPDFFile(t.TempDir()).SaveMarkup(ctx, a); err == nil {
		t.Fatal("PDFFile accepted a jpeg artifact")
	}

	a = testArtifact(t)
	a.Width = 0
	if _, err := NewPDFFile(t.TempDir()).SaveMarkup(ctx, a); err == nil {
		t.Fatal("PDFFile accepted an empty artifact")
	}
}

func TestSanitize(t *testing.T) {
	for in, want := range map[string]string{
		"plan":         "plan",
		" a/b\\c ":     "a_b_c",
		"":             "markup",
		"photo-1503_x": "photo-1503_x",
	} {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
