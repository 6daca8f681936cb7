package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/sureuv/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidOBJ    = errors.New("invalid OBJ data")
	ErrOBJIndexRange = errors.New("OBJ index out of range")
)

// maxOBJLine bounds the length of a single OBJ line.
const maxOBJLine = 1 << 20

// OBJFace is one polygon. Index slices are 0-based and parallel; TexCoords and
// Normals hold -1 for corners without a texture coordinate or normal.
type OBJFace struct {
	Vertices  []int
	TexCoords []int
	Normals   []int
	Object    string // most recent "o" name
	Group     string // most recent "g" name(s), space separated
	Material  string // most recent "usemtl" name
	Smooth    string // most recent "s" value
}

// HasTexCoords reports whether every corner references a texture coordinate.
func (f *OBJFace) HasTexCoords() bool {
	for _, vt := range f.TexCoords {
		if vt < 0 {
			return false
		}
	}
	return len(f.TexCoords) > 0
}

// OBJ is a parsed Wavefront OBJ file restricted to polygonal geometry.
type OBJ struct {
	MaterialLibs []string
	Positions    []math.Vec3
	TexCoords    []math.Vec2
	Normals      []math.Vec3
	Faces        []OBJFace
	// Warnings lists statements that were skipped while parsing.
	Warnings []string
}

// LoopCount returns the total number of face corners.
func (o *OBJ) LoopCount() int {
	n := 0
	for i := range o.Faces {
		n += len(o.Faces[i].Vertices)
	}
	return n
}

type objState struct {
	obj      *OBJ
	line     int
	object   string
	group    string
	material string
	smooth   string
}

// ParseOBJ parses OBJ data from a byte slice.
func ParseOBJ(data []byte) (*OBJ, error) {
	return DecodeOBJ(bytes.NewReader(data))
}

// DecodeOBJ parses OBJ data from a reader.
func DecodeOBJ(r io.Reader) (*OBJ, error) {
	st := &objState{obj: &OBJ{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)
	for scanner.Scan() {
		st.line++
		if err := st.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	return st.obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	defer f.Close()
	return DecodeOBJ(f)
}

func (st *objState) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidOBJ, st.line, fmt.Sprintf(format, args...))
}

func (st *objState) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	keyword, args := fields[0], fields[1:]
	switch keyword {
	case "v":
		p, err := st.parseFloats(args, 3, 3)
		if err != nil {
			return err
		}
		st.obj.Positions = append(st.obj.Positions, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	case "vt":
		// v defaults to 0 and the optional w is dropped
		p, err := st.parseFloats(args, 1, 2)
		if err != nil {
			return err
		}
		st.obj.TexCoords = append(st.obj.TexCoords, math.Vec2{X: p[0], Y: p[1]})
	case "vn":
		p, err := st.parseFloats(args, 3, 3)
		if err != nil {
			return err
		}
		st.obj.Normals = append(st.obj.Normals, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	case "f":
		return st.parseFace(args)
	case "o":
		st.object = strings.Join(args, " ")
	case "g":
		st.group = strings.Join(args, " ")
	case "usemtl":
		st.material = strings.Join(args, " ")
	case "s":
		st.smooth = strings.Join(args, " ")
	case "mtllib":
		st.obj.MaterialLibs = append(st.obj.MaterialLibs, args...)
	default:
		st.obj.Warnings = append(st.obj.Warnings, fmt.Sprintf("line %d: unsupported statement %q", st.line, keyword))
	}
	return nil
}

// parseFloats reads at least need values and keeps the first keep; missing ones stay zero.
// Extra values (w components, vertex colors) are ignored.
func (st *objState) parseFloats(args []string, need, keep int) ([]float32, error) {
	if len(args) < need {
		return nil, st.errorf("expected %d values, got %d", need, len(args))
	}
	out := make([]float32, keep)
	for i := 0; i < keep && i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, st.errorf("bad number %q", args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (st *objState) parseFace(args []string) error {
	if len(args) < 3 {
		return st.errorf("face needs at least 3 vertices, got %d", len(args))
	}

	face := OBJFace{
		Vertices:  make([]int, len(args)),
		TexCoords: make([]int, len(args)),
		Normals:   make([]int, len(args)),
		Object:    st.object,
		Group:     st.group,
		Material:  st.material,
		Smooth:    st.smooth,
	}

	for i, arg := range args {
		parts := strings.Split(arg, "/")
		if len(parts) > 3 {
			return st.errorf("bad face vertex %q", arg)
		}

		v, err := st.resolveIndex(parts[0], len(st.obj.Positions))
		if err != nil {
			return err
		}
		face.Vertices[i] = v

		face.TexCoords[i] = -1
		if len(parts) > 1 && parts[1] != "" {
			if face.TexCoords[i], err = st.resolveIndex(parts[1], len(st.obj.TexCoords)); err != nil {
				return err
			}
		}

		face.Normals[i] = -1
		if len(parts) > 2 && parts[2] != "" {
			if face.Normals[i], err = st.resolveIndex(parts[2], len(st.obj.Normals)); err != nil {
				return err
			}
		}
	}

	st.obj.Faces = append(st.obj.Faces, face)
	return nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into a 0-based one.
func (st *objState) resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, st.errorf("bad index %q", s)
	}

	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: line %d: index %d with %d elements", ErrOBJIndexRange, st.line, n, count)
	}
	return idx, nil
}

// Encode writes the OBJ in text form. Object, group, material and smoothing
// statements are emitted whenever they change between consecutive faces.
func (o *OBJ) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, lib := range o.MaterialLibs {
		fmt.Fprintf(bw, "mtllib %s\n", lib)
	}
	for _, p := range o.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}
	for _, t := range o.TexCoords {
		fmt.Fprintf(bw, "vt %s %s\n", formatFloat(t.X), formatFloat(t.Y))
	}
	for _, n := range o.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
	}

	var object, group, material, smooth string
	for i := range o.Faces {
		f := &o.Faces[i]
		if f.Object != object {
			object = f.Object
			fmt.Fprintf(bw, "o %s\n", object)
		}
		if f.Group != group {
			group = f.Group
			fmt.Fprintf(bw, "g %s\n", group)
		}
		if f.Material != material {
			material = f.Material
			fmt.Fprintf(bw, "usemtl %s\n", material)
		}
		if f.Smooth != smooth {
			smooth = f.Smooth
			fmt.Fprintf(bw, "s %s\n", smooth)
		}

		bw.WriteString("f")
		for j, v := range f.Vertices {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(v + 1))
			vt, vn := -1, -1
			if j < len(f.TexCoords) {
				vt = f.TexCoords[j]
			}
			if j < len(f.Normals) {
				vn = f.Normals[j]
			}
			switch {
			case vt >= 0 && vn >= 0:
				fmt.Fprintf(bw, "/%d/%d", vt+1, vn+1)
			case vt >= 0:
				fmt.Fprintf(bw, "/%d", vt+1)
			case vn >= 0:
				fmt.Fprintf(bw, "//%d", vn+1)
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// WriteFile writes the OBJ to disk, creating the parent directory if needed.
func (o *OBJ) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := o.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// formatFloat prints the shortest text that reads back to the same float32.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
