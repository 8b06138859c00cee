//go:build !tinygo && cgo

package glmesh

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/gshape"
	"github.com/soypat/gshape/glbuild"
)

// Init1x1GLFW starts a 1x1 sized GLFW window so that user can start uploading meshes to the GPU.
// It returns a termination function that should be called when user is done with the GPU.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "glmesh",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// Upload validates m and copies its vertex attributes and indices to new GPU buffers
// bound to a new vertex array object. A current OpenGL context is required.
func Upload(m *gshape.Mesh) (Data, error) {
	layout, err := NewLayout(m)
	if err != nil {
		return Data{}, err
	}
	var d Data
	var p runtime.Pinner
	p.Pin(&d)
	defer p.Unpin()
	gl.GenVertexArrays(1, &d.VAO)
	if d.VAO == 0 {
		return Data{}, glErrOrMessage("zero id creating vertex array")
	}
	gl.BindVertexArray(d.VAO)
	gl.GenBuffers(1, &d.VBO)
	if d.VBO == 0 {
		d.Delete()
		return Data{}, glErrOrMessage("zero id creating vertex buffer")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, layout.Size(), nil, gl.STATIC_DRAW)
	for _, b := range glbuild.Bindings() {
		attr := layout.Attrib(b)
		gl.BufferSubData(gl.ARRAY_BUFFER, attr.Offset, attr.Size, attribData(m, b))
		gl.EnableVertexAttribArray(b.Location())
		gl.VertexAttribPointer(b.Location(), int32(attr.Components), gl.FLOAT, false, int32(attr.Stride), gl.PtrOffset(attr.Offset))
	}

	gl.GenBuffers(1, &d.IBO)
	if d.IBO == 0 {
		gl.BindVertexArray(0)
		d.Delete()
		return Data{}, glErrOrMessage("zero id creating index buffer")
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.IBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, layout.IndexSize(), unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	d.IndexCount = int32(m.IndexCount())

	// Unbind the vertex array first so it keeps its element buffer binding.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	if err = glgl.Err(); err != nil {
		d.Delete()
		return Data{}, fmt.Errorf("uploading mesh: %w", err)
	}
	return d, nil
}

// Draw draws the mesh's triangles with the currently bound program.
func (d *Data) Draw() error {
	if d.VAO == 0 || d.IndexCount == 0 {
		return nil
	}
	gl.BindVertexArray(d.VAO)
	gl.DrawElements(gl.TRIANGLES, d.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	return glgl.Err()
}

// Delete releases the GPU objects held by d and resets it to the zero value.
func (d *Data) Delete() error {
	var p runtime.Pinner
	p.Pin(d)
	defer p.Unpin()
	if d.IBO != 0 {
		gl.DeleteBuffers(1, &d.IBO)
	}
	if d.VBO != 0 {
		gl.DeleteBuffers(1, &d.VBO)
	}
	if d.VAO != 0 {
		gl.DeleteVertexArrays(1, &d.VAO)
	}
	*d = Data{}
	return nil
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
