// Package export writes saved markups to the local filesystem.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// dirWriter places timestamped files in a directory.
type dirWriter struct {
	Dir string
	now func() time.Time
}

func (d dirWriter) path(name, ext string) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	name = sanitize(name)
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", name, now().Format("20060102-150405"), ext)), nil
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	if name == "" {
		return "markup"
	}
	return name
}
