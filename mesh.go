package gshape

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Tri is a triangle of vertex indices into a [Mesh]'s attribute slices.
// Vertices are ordered counter clockwise when viewed from the side the
// surface normals point to.
type Tri [3]uint32

// Mesh is the CPU side representation of a triangulated parametric surface.
// All attribute slices have the same length which is the vertex count.
type Mesh struct {
	Positions []ms3.Vec
	Normals   []ms3.Vec
	Tangents  []ms3.Vec
	Binormals []ms3.Vec
	TexCoords []ms2.Vec
	Indices   []Tri
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// IndexCount returns the number of indices the mesh's index buffer holds, 3 per triangle.
func (m *Mesh) IndexCount() int { return 3 * len(m.Indices) }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) }

// Bounds returns the axis aligned bounding box of the mesh positions.
// It returns the zero Box for a mesh with no vertices.
func (m *Mesh) Bounds() ms3.Box {
	if len(m.Positions) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		bb.Min = ms3.MinElem(bb.Min, p)
		bb.Max = ms3.MaxElem(bb.Max, p)
	}
	return bb
}

// Triangle returns the i'th triangle's vertex positions.
func (m *Mesh) Triangle(i int) ms3.Triangle {
	idx := m.Indices[i]
	return ms3.Triangle{m.Positions[idx[0]], m.Positions[idx[1]], m.Positions[idx[2]]}
}

// AppendTriangles appends the position triangles of the mesh to dst and returns the result.
func (m *Mesh) AppendTriangles(dst []ms3.Triangle) []ms3.Triangle {
	for i := range m.Indices {
		dst = append(dst, m.Triangle(i))
	}
	return dst
}

// Validate checks the mesh is well formed: attribute slices of equal length,
// indices within the vertex range and a vertex count addressable by uint32 indices.
func (m *Mesh) Validate() error {
	if m == nil {
		return errors.New("nil mesh")
	}
	nv := len(m.Positions)
	switch {
	case nv == 0:
		return errors.New("mesh has no vertices")
	case uint64(nv) > maxVertices:
		return fmt.Errorf("mesh vertex count %d overflows uint32 indices", nv)
	case len(m.Normals) != nv:
		return fmt.Errorf("normal count %d does not match vertex count %d", len(m.Normals), nv)
	case len(m.Tangents) != nv:
		return fmt.Errorf("tangent count %d does not match vertex count %d", len(m.Tangents), nv)
	case len(m.Binormals) != nv:
		return fmt.Errorf("binormal count %d does not match vertex count %d", len(m.Binormals), nv)
	case len(m.TexCoords) != nv:
		return fmt.Errorf("texture coordinate count %d does not match vertex count %d", len(m.TexCoords), nv)
	case len(m.Indices) == 0:
		return errors.New("mesh has no triangles")
	}
	for i, tri := range m.Indices {
		for _, idx := range tri {
			if int(idx) >= nv {
				return fmt.Errorf("triangle %d index %d out of range [0,%d)", i, idx, nv)
			}
		}
	}
	return nil
}

// allocMesh allocates a mesh with n vertices and room for ntri triangles.
func allocMesh(n, ntri int) *Mesh {
	return &Mesh{
		Positions: make([]ms3.Vec, n),
		Normals:   make([]ms3.Vec, n),
		Tangents:  make([]ms3.Vec, n),
		Binormals: make([]ms3.Vec, n),
		TexCoords: make([]ms2.Vec, n),
		Indices:   make([]Tri, 0, ntri),
	}
}
