package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"redline/internal/markup"
)

// PDFFile saves artifacts as a single-page PDF sized to the raster, one
// point per pixel.
type PDFFile struct {
	dirWriter
}

var _ markup.Saver = PDFFile{}

func NewPDFFile(dir string) PDFFile {
	return PDFFile{dirWriter{Dir: dir}}
}

func (p PDFFile) withClock(now func() time.Time) PDFFile {
	p.now = now
	return p
}

func (p PDFFile) SaveMarkup(ctx context.Context, a markup.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.Format != "png" {
		return "", fmt.Errorf("unsupported artifact format %q", a.Format)
	}
	if a.Width <= 0 || a.Height <= 0 {
		return "", fmt.Errorf("artifact has no size")
	}
	path, err := p.path(a.Name, "pdf")
	if err != nil {
		return "", err
	}

	w, h := float64(a.Width), float64(a.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetTitle(a.Name, true)
	pdf.SetSubject(a.Source, true)
	pdf.SetCreator("redline", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(a.Name, opts, bytes.NewReader(a.Data))
	pdf.ImageOptions(a.Name, 0, 0, w, h, false, opts, 0, "")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}
