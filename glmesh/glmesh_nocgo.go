//go:build tinygo || !cgo

package glmesh

import (
	"errors"

	"github.com/soypat/gshape"
)

var errNoCGO = errors.New("GPU mesh upload requires CGo and is not supported on TinyGo")

// Init1x1GLFW starts a 1x1 sized GLFW window so that user can start uploading meshes to the GPU.
func Init1x1GLFW() (terminate func(), err error) {
	return nil, errNoCGO
}

// Upload validates m and copies its vertex attributes and indices to new GPU buffers.
func Upload(m *gshape.Mesh) (Data, error) {
	_, err := NewLayout(m)
	if err != nil {
		return Data{}, err
	}
	return Data{}, errNoCGO
}

// Draw draws the mesh's triangles with the currently bound program.
func (d *Data) Draw() error { return errNoCGO }

// Delete releases the GPU objects held by d.
func (d *Data) Delete() error { return errNoCGO }
