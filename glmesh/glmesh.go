// Package glmesh uploads [gshape.Mesh] data to OpenGL buffers.
//
// A mesh is stored in a single non interleaved vertex buffer with each attribute
// in its own contiguous section, ordered as in [glbuild.Bindings]:
// positions, normals, texture coordinates, tangents and binormals.
// Sections are copied as laid out in memory by [gshape.Mesh] so elements
// may carry padding after their float32 components, see [Attrib.Stride].
// Each section is bound to its [glbuild.Binding] location in the vertex array.
// Indices are stored as unsigned 32 bit integers in an element buffer.
package glmesh

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshape"
	"github.com/soypat/gshape/glbuild"
)

var errNilMesh = errors.New("nil mesh")

// Attrib describes where a single vertex attribute's data lives in the vertex buffer.
type Attrib struct {
	Binding glbuild.Binding
	// Offset is the byte offset of the attribute section from the start of the buffer.
	Offset int
	// Size is the byte size of the attribute section.
	Size int
	// Components is the number of float32 components per vertex.
	Components int
	// Stride is the byte distance between consecutive vertex elements.
	// It may exceed 4*Components when the CPU vector type is padded.
	Stride int
}

// Layout is the vertex buffer layout of a mesh.
type Layout struct {
	attribs     [5]Attrib
	size        int
	vertexCount int
	indexSize   int
}

// NewLayout validates m and calculates its vertex buffer layout.
func NewLayout(m *gshape.Mesh) (Layout, error) {
	if m == nil {
		return Layout{}, errNilMesh
	}
	err := checkIndexCount(m.TriangleCount())
	if err != nil {
		return Layout{}, err
	}
	err = m.Validate()
	if err != nil {
		return Layout{}, fmt.Errorf("invalid mesh: %w", err)
	}
	var l Layout
	nv := m.VertexCount()
	l.vertexCount = nv
	offset := 0
	for i, b := range glbuild.Bindings() {
		stride := attribStride(b)
		size := nv * stride
		l.attribs[i] = Attrib{
			Binding:    b,
			Offset:     offset,
			Size:       size,
			Components: b.Components(),
			Stride:     stride,
		}
		offset += size
	}
	l.size = offset
	l.indexSize = len(m.Indices) * elemSize[gshape.Tri]()
	return l, nil
}

// Size returns the size of the vertex buffer in bytes.
func (l Layout) Size() int { return l.size }

// IndexSize returns the size of the index buffer in bytes.
func (l Layout) IndexSize() int { return l.indexSize }

// VertexCount returns the number of vertices laid out.
func (l Layout) VertexCount() int { return l.vertexCount }

// Attrib returns the layout of the attribute with the given binding.
func (l Layout) Attrib(b glbuild.Binding) Attrib {
	if !b.IsValid() {
		panic("invalid binding " + b.String())
	}
	return l.attribs[b]
}

// Data holds the OpenGL object names of an uploaded mesh.
// The zero value is an empty mesh that is not drawn.
type Data struct {
	VAO uint32
	VBO uint32
	IBO uint32
	// IndexCount is the number of indices drawn, 3 per triangle.
	IndexCount int32
}

// attribData returns a pointer to the first element of the attribute's data in m.
func attribData(m *gshape.Mesh, b glbuild.Binding) unsafe.Pointer {
	switch b {
	case glbuild.Vertices:
		return unsafe.Pointer(&m.Positions[0])
	case glbuild.Normals:
		return unsafe.Pointer(&m.Normals[0])
	case glbuild.TexCoords:
		return unsafe.Pointer(&m.TexCoords[0])
	case glbuild.Tangents:
		return unsafe.Pointer(&m.Tangents[0])
	case glbuild.Binormals:
		return unsafe.Pointer(&m.Binormals[0])
	}
	panic("invalid binding " + b.String())
}

// attribStride returns the in memory size of a single element of the attribute's mesh slice.
func attribStride(b glbuild.Binding) int {
	if b == glbuild.TexCoords {
		return elemSize[ms2.Vec]()
	}
	return elemSize[ms3.Vec]()
}

// checkIndexCount fails if the index count of the triangles does not fit
// the int32 count taken by glDrawElements.
func checkIndexCount(triangles int) error {
	if triangles > math.MaxInt32/3 {
		return fmt.Errorf("%d triangles overflow int32 index count", triangles)
	}
	return nil
}

func elemSize[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}
