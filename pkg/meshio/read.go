package meshio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/medial/pkg/geom"
	"github.com/pkg/errors"
)

// Read parses a mesh. Face indices may refer only to vertices declared on
// earlier lines.
func Read(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			p, err := parseVertex(line, fields[1:])
			if err != nil {
				return nil, err
			}
			m.Points = append(m.Points, p)
		case "f":
			t, err := parseFace(line, fields[1:], len(m.Points))
			if err != nil {
				return nil, err
			}
			m.Triangles = append(m.Triangles, t)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "meshio: read after line %d", line)
	}
	return m, nil
}

// ReadFile parses the mesh stored at path.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "meshio: open")
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

func parseVertex(line int, fields []string) (geom.Point, error) {
	if len(fields) < 3 {
		return geom.Point{}, parseErrorf(line, "vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.Point{}, parseErrorf(line, "bad coordinate %q", fields[i])
		}
		c[i] = v
	}
	p := geom.Pt(c[0], c[1], c[2])
	if !p.IsFinite() {
		return geom.Point{}, parseErrorf(line, "non-finite vertex %s", p)
	}
	return p, nil
}

func parseFace(line int, fields []string, nverts int) ([3]int, error) {
	var t [3]int
	if len(fields) < 3 {
		return t, parseErrorf(line, "face needs 3 indices, got %d", len(fields))
	}
	for i := range t {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return t, parseErrorf(line, "bad index %q", fields[i])
		}
		if v < 1 || v > nverts {
			return t, parseErrorf(line, "index %d out of range [1, %d]", v, nverts)
		}
		t[i] = v - 1
	}
	return t, nil
}
