package glrender

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"github.com/soypat/gshape"
)

// WriteOBJ writes m to w in Wavefront OBJ format with positions, texture coordinates
// and normals sharing the same 1-based index per vertex. It returns the number of bytes written.
func WriteOBJ(w io.Writer, m *gshape.Mesh) (int, error) {
	if m == nil {
		return 0, errors.New("nil mesh")
	}
	err := m.Validate()
	if err != nil {
		return 0, err
	}
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	var scratch []byte
	scratch = append(scratch, "# gshape mesh\n"...)
	bw.Write(scratch)
	for _, p := range m.Positions {
		scratch = appendOBJFloats(append(scratch[:0], 'v'), p.X, p.Y, p.Z)
		bw.Write(scratch)
	}
	for _, t := range m.TexCoords {
		scratch = appendOBJFloats(append(scratch[:0], 'v', 't'), t.X, t.Y)
		bw.Write(scratch)
	}
	for _, n := range m.Normals {
		scratch = appendOBJFloats(append(scratch[:0], 'v', 'n'), n.X, n.Y, n.Z)
		bw.Write(scratch)
	}
	for _, tri := range m.Indices {
		scratch = append(scratch[:0], 'f')
		for _, idx := range tri {
			ref := strconv.AppendUint(nil, uint64(idx)+1, 10)
			scratch = append(scratch, ' ')
			scratch = append(scratch, ref...)
			scratch = append(scratch, '/')
			scratch = append(scratch, ref...)
			scratch = append(scratch, '/')
			scratch = append(scratch, ref...)
		}
		scratch = append(scratch, '\n')
		bw.Write(scratch)
	}
	err = bw.Flush()
	return cw.n, err
}

func appendOBJFloats(b []byte, v ...float32) []byte {
	for _, f := range v {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, float64(f), 'g', -1, 32)
	}
	return append(b, '\n')
}

type countWriter struct {
	w io.Writer
	n int
}

func (cw *countWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.n += n
	return n, err
}
