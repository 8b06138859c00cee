package glrender

import (
	"errors"
	"io"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshape"
)

// Renderer streams triangles into dst. Implementations return io.EOF once
// no more triangles are left to be read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

var _ Renderer = (*MeshRenderer)(nil)

// MeshRenderer streams the position triangles of a [gshape.Mesh].
type MeshRenderer struct {
	m    *gshape.Mesh
	next int
}

// NewMeshRenderer returns a renderer over m's triangles. m is validated before use.
func NewMeshRenderer(m *gshape.Mesh) (*MeshRenderer, error) {
	var mr MeshRenderer
	err := mr.Reset(m)
	if err != nil {
		return nil, err
	}
	return &mr, nil
}

// Reset rewinds the renderer to the first triangle of m.
func (mr *MeshRenderer) Reset(m *gshape.Mesh) error {
	if m == nil {
		return errors.New("nil mesh")
	}
	err := m.Validate()
	if err != nil {
		return err
	}
	mr.m = m
	mr.next = 0
	return nil
}

// ReadTriangles implements [Renderer]. userData is unused.
func (mr *MeshRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	if mr.m == nil {
		return 0, errors.New("renderer not initialized")
	}
	total := mr.m.TriangleCount()
	if len(dst) == 0 && mr.next < total {
		return 0, io.ErrShortBuffer
	}
	for n < len(dst) && mr.next < total {
		dst[n] = mr.m.Triangle(mr.next)
		n++
		mr.next++
	}
	if mr.next >= total {
		return n, io.EOF
	}
	return n, nil
}
