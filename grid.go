package gshape

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// surfaceFunc maps the outer parameter u and inner parameter v of a parametric surface
// to a position and the unit partial derivative directions t (along v) and b (along u).
type surfaceFunc func(u, v float32) (pos, t, b ms3.Vec)

// paramRange is the closed interval a surface parameter is sampled over.
type paramRange struct {
	start, end float32
}

func (pr paramRange) at(i, n int) float32 {
	if n <= 1 {
		return pr.start
	}
	return pr.start + (pr.end-pr.start)*float32(i)/float32(n-1)
}

// sampleGrid samples surf on a rows×cols grid spanning ur and vr and triangulates it.
// Rows advance the u parameter, columns advance v. Vertices are stored row major.
// The normal is the unit cross product t×b and texture coordinates span [0,1] in both directions.
func sampleGrid(rows, cols int, ur, vr paramRange, surf surfaceFunc) *Mesh {
	nv := rows * cols
	m := allocMesh(nv, 2*(rows-1)*(cols-1))
	idx := 0
	for i := 0; i < rows; i++ {
		u := ur.at(i, rows)
		tv := texcoord(i, rows)
		for j := 0; j < cols; j++ {
			v := vr.at(j, cols)
			p, t, b := surf(u, v)
			m.Positions[idx] = p
			m.Tangents[idx] = t
			m.Binormals[idx] = b
			m.Normals[idx] = ms3.Unit(ms3.Cross(t, b))
			m.TexCoords[idx] = ms2.Vec{X: texcoord(j, cols), Y: tv}
			idx++
		}
	}
	m.Indices = AppendGridIndices(m.Indices, rows, cols)
	return m
}

func texcoord(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// AppendGridIndices appends the triangulation of a regular grid of rows×cols vertices
// stored in row major order to dst and returns the result. Each grid cell is split
// into two triangles along the diagonal joining its first and last corner:
//
//	a, a+1, a+cols+1
//	a, a+cols+1, a+cols
//
// where a=i*cols+j is the cell's first vertex. If v is the parameter advanced along
// columns and u the parameter advanced along rows the triangles are counter clockwise
// when viewed from the side ∂P/∂v × ∂P/∂u points to.
// Grids with less than two rows or columns have no cells and dst is returned unchanged.
func AppendGridIndices(dst []Tri, rows, cols int) []Tri {
	if rows < 2 || cols < 2 {
		return dst
	}
	c := uint32(cols)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			a := uint32(i)*c + uint32(j)
			dst = append(dst,
				Tri{a, a + 1, a + c + 1},
				Tri{a, a + c + 1, a + c},
			)
		}
	}
	return dst
}
