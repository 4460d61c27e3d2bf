package filters

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/document"
)

// ErrUnknownFormat is returned when no importer handles a file.
var ErrUnknownFormat = errors.New("unknown file format")

// Importer reads one file format.
type Importer interface {
	Name() string
	Read(r io.Reader) ([]Record, error)
	Builders() Builders
}

type importer struct {
	name     string
	exts     []string
	read     func(io.Reader) ([]Record, error)
	builders func() Builders
}

func (i importer) Name() string                        { return i.name }
func (i importer) Read(r io.Reader) ([]Record, error) { return i.read(r) }
func (i importer) Builders() Builders                 { return i.builders() }

var importers = []importer{
	{name: ksegFormat, exts: []string{".seg"}, read: ReadKSeg, builders: KSegBuilders},
	{name: drgeoFormat, exts: []string{".fgeo"}, read: ReadDrGeo, builders: DrGeoBuilders},
	{name: kgeoFormat, exts: []string{".kgeo"}, read: ReadKGeo, builders: KGeoBuilders},
}

// Formats lists the names of the known formats.
func Formats() []string {
	names := make([]string, len(importers))
	for i, im := range importers {
		names[i] = im.name
	}
	return names
}

// ForName returns the importer of the named format.
func ForName(name string) (Importer, error) {
	for _, im := range importers {
		if im.name == name {
			return im, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ForFile picks an importer by the extension of path.
func ForFile(path string) (Importer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, im := range importers {
		for _, e := range im.exts {
			if e == ext {
				return im, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(path))
}

// Import reads r with im and rebuilds the document.
func Import(im Importer, r io.Reader, reg *construct.Registry, opts ...Option) (*document.Document, error) {
	records, err := im.Read(r)
	if err != nil {
		return nil, err
	}
	return Reconstruct(im.Name(), records, im.Builders(), reg, opts...)
}

// Load imports the file at path.
func Load(path string, reg *construct.Registry, opts ...Option) (*document.Document, error) {
	im, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Import(im, f, reg, opts...)
}
