package markup

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrEmptyRef     = errors.New("image reference is empty")
	ErrBlobReleased = errors.New("blob has been released")
)

type RefKind int

const (
	RefNone RefKind = iota
	RefURL
	RefFile
	RefBlob
)

// Ref points at a source image: a remote URL, a local file, or a
// transient in-memory blob.
type Ref struct {
	kind     RefKind
	location string
	blob     *Blob
}

func URLRef(u string) Ref {
	return Ref{kind: RefURL, location: strings.TrimSpace(u)}
}

func FileRef(path string) Ref {
	return Ref{kind: RefFile, location: strings.TrimSpace(path)}
}

// BlobRef wraps a blob. The surface releases the blob once the reference
// is superseded or the surface is closed.
func BlobRef(b *Blob) Ref {
	if b == nil {
		return Ref{}
	}
	return Ref{kind: RefBlob, location: "blob:" + b.name, blob: b}
}

// ParseRef picks URL or file based on the scheme.
func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return URLRef(s)
	}
	return FileRef(strings.TrimPrefix(s, "file://"))
}

func (r Ref) Kind() RefKind  { return r.kind }
func (r Ref) IsZero() bool   { return r.kind == RefNone || (r.location == "" && r.blob == nil) }
func (r Ref) String() string { return r.location }

// Name is a short label for the source, used to name exported artifacts.
func (r Ref) Name() string {
	name := r.location
	if r.kind == RefBlob {
		name = strings.TrimPrefix(name, "blob:")
	}
	if i := strings.IndexAny(name, "?#"); i >= 0 && r.kind == RefURL {
		name = name[:i]
	}
	name = filepath.Base(strings.TrimRight(name, "/"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == "/" {
		return "markup"
	}
	return name
}

func (r Ref) release() {
	if r.blob != nil {
		r.blob.Release()
	}
}

// Blob is image data held in memory, e.g. read from a file picked by the
// user. It must be released when no longer referenced.
type Blob struct {
	mu       sync.Mutex
	name     string
	data     []byte
	released bool
}

func NewBlob(name string, data []byte) *Blob {
	return &Blob{name: name, data: data}
}

func (b *Blob) Name() string { return b.name }

// Bytes returns the blob data, or ErrBlobReleased after Release.
func (b *Blob) Bytes() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return nil, ErrBlobReleased
	}
	return b.data, nil
}

// Release drops the data. Calling it more than once is harmless.
func (b *Blob) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	b.released = true
	b.data = nil
	Logger().Debug("blob released", "name", b.name)
}

func (b *Blob) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}
