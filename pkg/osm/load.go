package osm

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

var (
	// ErrMissingCoordinate is returned for a node without a finite latitude
	// and longitude.
	ErrMissingCoordinate = errors.New("node coordinate missing or not finite")

	// ErrUnknownFormat is returned when the input encoding cannot be
	// determined from the file name.
	ErrUnknownFormat = errors.New("unknown input format")
)

// Format is the encoding of a result set file.
type Format string

const (
	FormatAuto     Format = ""
	FormatOverpass Format = "overpass"
	FormatXML      Format = "xml"
	FormatPBF      Format = "pbf"
)

// ParseFormat accepts the names used in configuration files.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatOverpass, FormatXML, FormatPBF:
		return f, nil
	case "json":
		return FormatOverpass, nil
	case "osm":
		return FormatXML, nil
	default:
		return FormatAuto, errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Source describes one result set on disk.
type Source struct {
	Name     string
	Path     string
	Format   Format
	Highways []string // optional road-class filter
}

// DetectFormat guesses the encoding from the file name, ignoring a trailing
// .gz or .zst suffix.
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".zst")
	switch {
	case strings.HasSuffix(name, ".json"):
		return FormatOverpass, nil
	case strings.HasSuffix(name, ".osm"), strings.HasSuffix(name, ".xml"):
		return FormatXML, nil
	case strings.HasSuffix(name, ".pbf"):
		return FormatPBF, nil
	}
	return FormatAuto, errors.Wrapf(ErrUnknownFormat, "%s", path)
}

// Load reads a result set from disk, applying the source's road-class filter.
func Load(ctx context.Context, src Source) (*ResultSet, error) {
	format := src.Format
	if format == FormatAuto {
		var err error
		if format, err = DetectFormat(src.Path); err != nil {
			return nil, err
		}
	}

	rc, err := openDecompressed(src.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	name := src.Name
	if name == "" {
		name = filepath.Base(src.Path)
	}
	rs, err := Decode(ctx, rc, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", src.Path)
	}
	rs.Name = name

	NewHighwayFilter(src.Highways).Restrict(rs)
	return rs, nil
}

// Decode reads a result set from r in the given format.
func Decode(ctx context.Context, r io.Reader, format Format) (*ResultSet, error) {
	rs := &ResultSet{}
	switch format {
	case FormatOverpass:
		if err := decodeOverpass(r, rs); err != nil {
			return nil, err
		}
	case FormatXML:
		scanner := osmxml.New(ctx, r)
		defer scanner.Close()
		if err := scan(scanner, rs); err != nil {
			return nil, errors.Wrap(err, "scan osm xml")
		}
	case FormatPBF:
		scanner := osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
		defer scanner.Close()
		if err := scan(scanner, rs); err != nil {
			return nil, errors.Wrap(err, "scan osm pbf")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return rs, nil
}

// scanner is the common surface of the osmxml and osmpbf scanners.
type scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
}

func scan(s scanner, rs *ResultSet) error {
	for s.Scan() {
		switch obj := s.Object().(type) {
		case *osm.Node:
			n := Node{ID: obj.ID, Lat: obj.Lat, Lon: obj.Lon}
			if err := checkCoord(n); err != nil {
				return err
			}
			rs.Nodes = append(rs.Nodes, n)
		case *osm.Way:
			rs.Ways = append(rs.Ways, NewWay(obj.ID, obj.Nodes.NodeIDs(), obj.Tags))
		}
	}
	return s.Err()
}

func checkCoord(n Node) error {
	if math.IsNaN(n.Lat) || math.IsInf(n.Lat, 0) || math.IsNaN(n.Lon) || math.IsInf(n.Lon, 0) {
		return errors.Wrapf(ErrMissingCoordinate, "node %d", n.ID)
	}
	return nil
}

// openDecompressed opens path and transparently unwraps gzip or zstd
// compression based on the file suffix.
func openDecompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open result set")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "gzip %s", path)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "zstd %s", path)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zstdCloser{zr}, f}}, nil
	}
	return f, nil
}

// stackedReader closes a decompressor and the file beneath it.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
