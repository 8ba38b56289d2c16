package graph

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"road_graph/pkg/geo"
)

// ErrUnmappedNode means an edge endpoint has no dense id. It cannot happen
// when the dense map was built from the same node table the edges were
// expanded against.
var ErrUnmappedNode = errors.New("edge endpoint has no dense id")

// Edge is a directed edge between dense node ids.
type Edge struct {
	From   uint32
	To     uint32
	Length uint32
}

// EdgeList is the content of an edge file.
type EdgeList struct {
	NumNodes uint32
	Edges    []Edge
}

// Paths names the two files of a graph.
type Paths struct {
	Edges string
	Nodes string
}

// Rewrite maps raw edges into dense id space.
func Rewrite(edges []RawEdge, dense *DenseMap) ([]Edge, error) {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		from, ok := dense.Dense(e.FromNodeID)
		if !ok {
			return nil, errors.Wrapf(ErrUnmappedNode, "node %d (edge %d)", e.FromNodeID, i)
		}
		to, ok := dense.Dense(e.ToNodeID)
		if !ok {
			return nil, errors.Wrapf(ErrUnmappedNode, "node %d (edge %d)", e.ToNodeID, i)
		}
		out[i] = Edge{From: from, To: to, Length: e.Length}
	}
	return out, nil
}

// WritePair writes the edge file and node file. Both are staged as temp files
// and renamed into place only once both are complete; on failure neither
// target is touched.
func WritePair(paths Paths, table *NodeTable, dense *DenseMap, edges []RawEdge) error {
	rewritten, err := Rewrite(edges, dense)
	if err != nil {
		return err
	}

	coords := make([]geo.Coord, dense.Len())
	for d := range coords {
		id := dense.Original(uint32(d))
		c, ok := table.Lookup(id)
		if !ok {
			return errors.Wrapf(ErrUnmappedNode, "dense id %d (node %d) has no coordinate", d, id)
		}
		coords[d] = c
	}

	return writeFiles(
		stagedFile{path: paths.Edges, write: func(w io.Writer) error {
			return WriteEdges(w, &EdgeList{NumNodes: uint32(len(coords)), Edges: rewritten})
		}},
		stagedFile{path: paths.Nodes, write: func(w io.Writer) error {
			return WriteNodes(w, coords)
		}},
	)
}

// WriteEdges writes the header and one line per edge.
func WriteEdges(w io.Writer, el *EdgeList) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	buf = strconv.AppendUint(buf[:0], uint64(el.NumNodes), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(len(el.Edges)), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for _, e := range el.Edges {
		buf = strconv.AppendUint(buf[:0], uint64(e.From), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(e.To), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(e.Length), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteNodes writes one line per node; coords is indexed by dense id.
func WriteNodes(w io.Writer, coords []geo.Coord) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for d, c := range coords {
		buf = strconv.AppendInt(buf[:0], int64(d), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, c.Lat, 'f', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, c.Lon, 'f', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type stagedFile struct {
	path  string
	write func(io.Writer) error
}

// writeFiles stages every file as <path>.tmp and renames them in order once
// all are written. A failed rename removes the targets already renamed.
func writeFiles(files ...stagedFile) (err error) {
	var tmps []string
	defer func() {
		if err != nil {
			for _, tmp := range tmps {
				os.Remove(tmp)
			}
		}
	}()

	for _, sf := range files {
		tmp, werr := stage(sf)
		if tmp != "" {
			tmps = append(tmps, tmp)
		}
		if werr != nil {
			return werr
		}
	}

	for i, sf := range files {
		if rerr := os.Rename(tmps[i], sf.path); rerr != nil {
			for _, done := range files[:i] {
				os.Remove(done.path)
			}
			return errors.Wrapf(rerr, "rename %s", sf.path)
		}
	}
	return nil
}

// WriteFile writes one file through the same staging as WritePair.
func WriteFile(path string, write func(io.Writer) error) error {
	return writeFiles(stagedFile{path: path, write: write})
}

func stage(sf stagedFile) (string, error) {
	if dir := filepath.Dir(sf.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrapf(err, "create directory for %s", sf.path)
		}
	}

	tmp := sf.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", tmp)
	}
	if err := sf.write(f); err != nil {
		f.Close()
		return tmp, errors.Wrapf(err, "write %s", sf.path)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return tmp, errors.Wrapf(err, "sync %s", tmp)
	}
	if err := f.Close(); err != nil {
		return tmp, errors.Wrapf(err, "close %s", tmp)
	}
	return tmp, nil
}

// ReadEdgeFile parses an edge file and validates its header and endpoints.
func ReadEdgeFile(path string) (*EdgeList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open edge file")
	}
	defer f.Close()

	el, err := ReadEdges(f)
	if err != nil {
		return nil, errors.Wrapf(err, "edge file %s", path)
	}
	return el, nil
}

// ReadEdges parses edge file content from r.
func ReadEdges(r io.Reader) (*EdgeList, error) {
	sc := newLineScanner(r)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("missing header")
	}
	header, err := parseUints(sc.Text(), 2)
	if err != nil {
		return nil, errors.Wrap(err, "line 1")
	}
	if header[0] > maxNodes {
		return nil, errors.Errorf("line 1: node count %d exceeds limit %d", header[0], maxNodes)
	}
	if header[1] > maxEdges {
		return nil, errors.Errorf("line 1: edge count %d exceeds limit %d", header[1], maxEdges)
	}

	el := &EdgeList{
		NumNodes: uint32(header[0]),
		Edges:    make([]Edge, 0, min(header[1], 1<<20)),
	}
	line := 1
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		v, err := parseUints(text, 3)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if v[0] >= header[0] || v[1] >= header[0] {
			return nil, errors.Errorf("line %d: endpoint out of range [0, %d)", line, header[0])
		}
		if v[2] > uint64(^uint32(0)) {
			return nil, errors.Errorf("line %d: length %d overflows", line, v[2])
		}
		el.Edges = append(el.Edges, Edge{From: uint32(v[0]), To: uint32(v[1]), Length: uint32(v[2])})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if uint64(len(el.Edges)) != header[1] {
		return nil, errors.Errorf("header announces %d edges, found %d", header[1], len(el.Edges))
	}
	return el, nil
}

// ReadNodeFile parses a node file into coordinates indexed by dense id.
func ReadNodeFile(path string) ([]geo.Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open node file")
	}
	defer f.Close()

	coords, err := ReadNodes(f)
	if err != nil {
		return nil, errors.Wrapf(err, "node file %s", path)
	}
	return coords, nil
}

// ReadNodes parses node file content. Lines may come in any order but the ids
// must cover [0, N) exactly once.
func ReadNodes(r io.Reader) ([]geo.Coord, error) {
	sc := newLineScanner(r)

	var coords []geo.Coord
	var seen []bool
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, errors.Errorf("line %d: want 3 fields, got %d", line, len(fields))
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if id >= maxNodes {
			return nil, errors.Errorf("line %d: node id %d exceeds limit %d", line, id, maxNodes)
		}
		for uint64(len(coords)) <= id {
			coords = append(coords, geo.Coord{})
			seen = append(seen, false)
		}
		if seen[id] {
			return nil, errors.Errorf("line %d: duplicate node id %d", line, id)
		}
		seen[id] = true
		coords[id] = geo.Coord{Lat: lat, Lon: lon}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for id, ok := range seen {
		if !ok {
			return nil, errors.Errorf("node id %d missing", id)
		}
	}
	return coords, nil
}

const (
	maxNodes = 1 << 31
	maxEdges = 1 << 32
)

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc
}

func parseUints(line string, n int) ([]uint64, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, errors.Errorf("want %d fields, got %d", n, len(fields))
	}
	out := make([]uint64, n)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i+1)
		}
		out[i] = v
	}
	return out, nil
}
