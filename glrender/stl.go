package glrender

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/soypat/geometry/ms3"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 4*3*4 + 2 // normal and 3 vertices of 3 float32 plus attribute count.
)

// WriteBinarySTL writes triangles to w in binary STL format. Facet normals
// are calculated from each triangle's winding order. It returns the number of bytes written.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	if uint64(len(triangles)) > math.MaxUint32 {
		return 0, errors.New("too many triangles for STL")
	}
	var header [stlHeaderSize + 4]byte
	copy(header[:], "binary STL written by gshape")
	binary.LittleEndian.PutUint32(header[stlHeaderSize:], uint32(len(triangles)))
	n, err := w.Write(header[:])
	if err != nil {
		return n, err
	}
	const facetsPerWrite = 256
	buf := make([]byte, 0, facetsPerWrite*stlFacetSize)
	for i, t := range triangles {
		buf = appendSTLVec(buf, stlNormal(t))
		for _, v := range t {
			buf = appendSTLVec(buf, v)
		}
		buf = binary.LittleEndian.AppendUint16(buf, 0)
		if len(buf) == cap(buf) || i == len(triangles)-1 {
			ngot, err := w.Write(buf)
			n += ngot
			if err != nil {
				return n, err
			}
			buf = buf[:0]
		}
	}
	return n, nil
}

// stlNormal returns the unit normal of t or the zero vector for degenerate triangles.
func stlNormal(t ms3.Triangle) ms3.Vec {
	n := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
	if ms3.Norm(n) == 0 {
		return ms3.Vec{}
	}
	return ms3.Unit(n)
}

func appendSTLVec(b []byte, v ms3.Vec) []byte {
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.X))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Y))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Z))
	return b
}
