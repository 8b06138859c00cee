//go:build !tinygo && cgo

package glmesh_test

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"runtime"
	"testing"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/gshape"
	"github.com/soypat/gshape/glmesh"
)

var gpuAvailable bool

// GL calls must be made from the main thread so the context is created and used within TestMain.
func TestMain(m *testing.M) {
	runtime.LockOSThread()
	var exit int
	terminate, err := glmesh.Init1x1GLFW()
	if err != nil {
		log.Println("skipping GPU tests:", err)
	} else {
		gpuAvailable = true
		if err = testUploadGPU(); err != nil {
			log.Println(err)
			exit = 1
		}
		terminate()
	}
	runtime.UnlockOSThread()
	os.Exit(m.Run() | exit)
}

func TestGPU(t *testing.T) {
	if !gpuAvailable {
		t.Skip("no OpenGL context")
	}
}

func testUploadGPU() error {
	var bld gshape.Builder
	meshes := []*gshape.Mesh{
		bld.NewQuad(2, 1, 3, 2),
		bld.NewSphere(1, 12, 6),
		bld.NewTorus(2, 0.5, 12, 8),
		bld.NewCircleRing(1, 0.5, 16, 1),
	}
	for _, m := range meshes {
		err := checkUpload(m)
		if err != nil {
			return err
		}
	}
	return nil
}

func checkUpload(m *gshape.Mesh) error {
	d, err := glmesh.Upload(m)
	if err != nil {
		return err
	}
	defer d.Delete()
	if d.IndexCount != int32(m.IndexCount()) {
		return fmt.Errorf("index count %d, want %d", d.IndexCount, m.IndexCount())
	}
	layout, _ := glmesh.NewLayout(m)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.VBO)
	vbo := make([]byte, layout.Size())
	gl.GetBufferSubData(gl.ARRAY_BUFFER, 0, len(vbo), unsafe.Pointer(&vbo[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	err = checkAttribValues(m, layout, vbo)
	if err != nil {
		return fmt.Errorf("GPU vertex buffer: %w", err)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.IBO)
	ibo := make([]byte, layout.IndexSize())
	gl.GetBufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(ibo), unsafe.Pointer(&ibo[0]))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	for i, tri := range m.Indices {
		for j, want := range tri {
			got := binary.LittleEndian.Uint32(ibo[4*(3*i+j):])
			if got != want {
				return fmt.Errorf("GPU triangle %d index %d is %d, want %d", i, j, got, want)
			}
		}
	}
	return nil
}
