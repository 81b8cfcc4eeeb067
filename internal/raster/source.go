package raster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no subdataset matches a requested suffix.
var ErrNotFound = errors.New("named sub-resource not found")

// Source is an open raster container.
type Source interface {
	// Path is the location the source was opened from.
	Path() string
	// Subdatasets lists the full subdataset names in container order.
	Subdatasets() []string
	// Lookup reads the first subdataset whose name ends with suffix.
	Lookup(suffix string) (Band, error)
	Close() error
}

// Opener opens raster containers by path.
type Opener interface {
	Open(path string) (Source, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Source, error)

func (f OpenerFunc) Open(path string) (Source, error) { return f(path) }

// FindBySuffix returns the first name ending with suffix.
func FindBySuffix(names []string, suffix string) (string, error) {
	if suffix == "" {
		return "", fmt.Errorf("%w: empty suffix", ErrNotFound)
	}
	for _, n := range names {
		if strings.HasSuffix(n, suffix) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, suffix)
}
