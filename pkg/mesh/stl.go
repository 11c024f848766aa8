package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// binaryHeaderSize is the fixed STL binary header length.
const binaryHeaderSize = 80

// ReadSTL loads a triangle mesh from an STL file, binary or ASCII.
// Duplicate vertices are welded so triangles share edges. Material and
// attribute metadata in the file is ignored; only vertex/triangle data is
// extracted.
func ReadSTL(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if isBinarySTL(f, info.Size()) {
		return readBinarySTL(f)
	}
	return readASCIISTL(f)
}

// isBinarySTL decides the file variant. A binary STL is exactly
// 84 + 50*count bytes; ASCII files start with "solid" but so may binary
// headers, so the size check is authoritative.
func isBinarySTL(f *os.File, size int64) bool {
	if size < binaryHeaderSize+4 {
		return false
	}
	var buf [4]byte
	if _, err := f.ReadAt(buf[:], binaryHeaderSize); err != nil {
		return false
	}
	count := binary.LittleEndian.Uint32(buf[:])
	return size == int64(binaryHeaderSize)+4+int64(count)*50
}

func readBinarySTL(f *os.File) (*Mesh, error) {
	if _, err := f.Seek(binaryHeaderSize, io.SeekStart); err != nil {
		return nil, err
	}
	r := bufio.NewReader(f)

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading triangle count: %w", err)
	}

	b := NewBuilder()
	// Per triangle: normal (3 float32), three vertices (9 float32),
	// attribute byte count (uint16). The stored normal is ignored; it is
	// recomputed from geometry where needed.
	var rec [12]float32
	var attr uint16
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("reading triangle %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &attr); err != nil {
			return nil, fmt.Errorf("reading triangle %d attributes: %w", i, err)
		}
		b.AddTriangle(
			Vec3{float64(rec[3]), float64(rec[4]), float64(rec[5])},
			Vec3{float64(rec[6]), float64(rec[7]), float64(rec[8])},
			Vec3{float64(rec[9]), float64(rec[10]), float64(rec[11])},
		)
	}
	return b.Build(), nil
}

func readASCIISTL(f *os.File) (*Mesh, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	b := NewBuilder()
	var corners []Vec3

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: malformed vertex", line)
			}
			var v Vec3
			var err error
			if v.X, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if v.Y, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if v.Z, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			corners = append(corners, v)
		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, want 3", line, len(corners))
			}
			b.AddTriangle(corners[0], corners[1], corners[2])
			corners = corners[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// WriteSTL writes the mesh as binary STL. Normals are computed from the
// triangle winding.
func WriteSTL(path string, m *Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)

	var header [binaryHeaderSize]byte
	copy(header[:], "flexion binary STL export")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return err
	}

	for ti, t := range m.Triangles {
		n := m.TriangleNormal(ti)
		rec := [12]float32{
			float32(n.X), float32(n.Y), float32(n.Z),
		}
		for ci, vi := range t {
			v := m.Vertices[vi]
			rec[3+ci*3] = float32(v.X)
			rec[4+ci*3] = float32(v.Y)
			rec[5+ci*3] = float32(v.Z)
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return w.Flush()
}
