package gshapeaux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/soypat/gshape"
	"github.com/soypat/gshape/glbuild"
	"github.com/soypat/gshape/glrender"
)

// RenderConfig configures the outputs written by [Render]. Nil outputs are skipped.
type RenderConfig struct {
	STLOutput io.Writer
	OBJOutput io.Writer
	// UVOutput receives a PNG of the mesh's texture coordinate layout. See [RenderUVPNG].
	UVOutput io.Writer
	// UVSize is the side length in pixels of the UV map. If zero a reasonable size is chosen.
	UVSize int
	// UVLabel is drawn on the top left corner of the UV map.
	UVLabel string
	Silent  bool
}

// UIConfig configures the interactive viewer started by [UI].
type UIConfig struct {
	Width, Height int
	// Mode is the initial shading mode. Number keys 1 through 5 switch modes while running.
	Mode glbuild.DebugMode
	// Context, if not nil, terminates the viewer when done.
	Context context.Context
}

const defaultUVSize = 1024

// Render is an auxiliary function to aid users in getting setup in using gshape quickly.
// It writes the mesh to the outputs configured in cfg, logging progress unless cfg.Silent is set.
func Render(m *gshape.Mesh, cfg RenderConfig) (err error) {
	if cfg.STLOutput == nil && cfg.OBJOutput == nil && cfg.UVOutput == nil {
		return errors.New("Render requires output parameter in config")
	}
	if m == nil {
		return errors.New("nil mesh")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	watch := stopwatch()
	err = m.Validate()
	if err != nil {
		return err
	}
	log("validated mesh with", m.VertexCount(), "vertices and", m.TriangleCount(), "triangles in", watch())

	if cfg.STLOutput != nil {
		watch = stopwatch()
		renderer, err := glrender.NewMeshRenderer(m)
		if err != nil {
			return err
		}
		triangles, err := glrender.RenderAll(renderer, nil)
		if err != nil {
			return fmt.Errorf("rendering triangles: %s", err)
		}
		_, err = glrender.WriteBinarySTL(cfg.STLOutput, triangles)
		if err != nil {
			return fmt.Errorf("writing STL file: %s", err)
		}
		log("wrote", outputName(cfg.STLOutput, "STL"), "in", watch())
	}

	if cfg.OBJOutput != nil {
		watch = stopwatch()
		_, err = glrender.WriteOBJ(cfg.OBJOutput, m)
		if err != nil {
			return fmt.Errorf("writing OBJ file: %s", err)
		}
		log("wrote", outputName(cfg.OBJOutput, "OBJ"), "in", watch())
	}

	if cfg.UVOutput != nil {
		watch = stopwatch()
		size := cfg.UVSize
		if size == 0 {
			size = defaultUVSize
		}
		err = RenderUVPNG(cfg.UVOutput, m, size, cfg.UVLabel)
		if err != nil {
			return fmt.Errorf("writing UV map: %s", err)
		}
		log("wrote", outputName(cfg.UVOutput, "UV map"), "in", watch())
	}
	return nil
}

// UI opens a window drawing m with a [glbuild] debug program. The camera orbits the
// mesh's bounding box center by dragging the mouse and zooms with the scroll wheel.
// UI must be called from the main thread and requires cgo.
func UI(m *gshape.Mesh, cfg UIConfig) error {
	if m == nil {
		return errors.New("nil mesh")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("UI requires positive window dimensions")
	}
	if !cfg.Mode.IsValid() {
		return fmt.Errorf("invalid debug mode %s", cfg.Mode)
	}
	return ui(m, cfg)
}

func outputName(w io.Writer, fallback string) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return fallback
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
