//go:build !tinygo && cgo

package gshapeaux

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/gshape"
	"github.com/soypat/gshape/glbuild"
	"github.com/soypat/gshape/glmesh"
)

// debugProgram is a compiled debug program and its uniform locations.
type debugProgram struct {
	prog        glgl.Program
	worldToClip int32
	light       int32 // -1 if the mode does not use a light.
}

func ui(m *gshape.Mesh, cfg UIConfig) error {
	bb := m.Bounds()
	diag := bb.Diagonal()
	if diag == 0 {
		diag = 1
	}
	center := bb.Center()
	window, term, err := startGLFW(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer term()

	programmer := glbuild.NewDefaultProgrammer()
	var programs []debugProgram
	defer func() {
		for i := range programs {
			programs[i].prog.Delete()
		}
	}()
	var src bytes.Buffer
	for mode := glbuild.DebugMode(0); mode.IsValid(); mode++ {
		src.Reset()
		_, err = programmer.WriteDebugProgram(&src, mode)
		if err != nil {
			return err
		}
		dp, err := compileDebugProgram(src.Bytes(), mode)
		if err != nil {
			return fmt.Errorf("compiling %s program: %w", mode, err)
		}
		programs = append(programs, dp)
	}

	data, err := glmesh.Upload(m)
	if err != nil {
		return err
	}
	defer data.Delete()

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	minZoom := float64(diag * 0.01)
	maxZoom := float64(diag * 10)
	var (
		mode                     = cfg.Mode
		yaw              float64
		pitch            float64 = 0.3
		lastMouseX       float64
		lastMouseY       float64
		camDist          float64 = 1.5 * float64(diag) // initial camera distance
		firstMouseMove           = true
		isMousePressed           = false
		yawSensitivity           = 0.005
		pitchSensitivity         = 0.005
		refresh                  = true
	)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos float64, ypos float64) {
		if !isMousePressed {
			return
		}
		refresh = true
		if firstMouseMove {
			lastMouseX = xpos
			lastMouseY = ypos
			firstMouseMove = false
		}
		yaw += (xpos - lastMouseX) * yawSensitivity
		pitch += (ypos - lastMouseY) * pitchSensitivity
		maxPitch := math.Pi/2 - 0.01
		pitch = max(-maxPitch, min(maxPitch, pitch))
		lastMouseX = xpos
		lastMouseY = ypos
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		refresh = true
		camDist -= yoff * (camDist*.1 + .01)
		camDist = max(minZoom, min(maxZoom, camDist))
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		refresh = true
		if action == glfw.Press {
			isMousePressed = true
			firstMouseMove = true
			window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else if action == glfw.Release {
			isMousePressed = false
			window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch {
		case key == glfw.KeyEscape:
			w.SetShouldClose(true)
		case key >= glfw.Key1 && key < glfw.Key1+glfw.Key(len(programs)):
			mode = glbuild.DebugMode(key - glfw.Key1)
			window.SetTitle(windowTitle(mode))
		}
		refresh = true
	})
	window.SetTitle(windowTitle(mode))

	ctx := cfg.Context
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.0, 0.0, 0.0, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		dir := mgl32.Vec3{
			float32(math.Cos(pitch) * math.Sin(yaw)),
			float32(math.Sin(pitch)),
			float32(math.Cos(pitch) * math.Cos(yaw)),
		}
		target := mgl32.Vec3{center.X, center.Y, center.Z}
		eye := target.Add(dir.Mul(float32(camDist)))
		aspect := float32(width) / float32(max(height, 1))
		proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, float32(camDist)*0.01, float32(camDist)+2*diag)
		view := mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
		worldToClip := proj.Mul4(view)

		dp := &programs[mode]
		dp.prog.Bind()
		gl.UniformMatrix4fv(dp.worldToClip, 1, false, &worldToClip[0])
		if dp.light >= 0 {
			gl.Uniform3f(dp.light, eye.X(), eye.Y(), eye.Z())
		}
		err = data.Draw()
		dp.prog.Unbind()
		if err != nil {
			return err
		}
		window.SwapBuffers()

		// Limit frame rate and only redraw on input.
		for {
			time.Sleep(time.Second / 60)
			glfw.PollEvents()
			if refresh || window.ShouldClose() {
				refresh = false
				break
			}
			if ctx != nil && ctx.Err() != nil {
				break
			}
		}
	}
	return nil
}

func compileDebugProgram(combined []byte, mode glbuild.DebugMode) (dp debugProgram, err error) {
	vertex, fragment, err := glbuild.SplitCombined(combined)
	if err != nil {
		return dp, err
	}
	dp.prog, err = glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   string(vertex) + "\x00",
		Fragment: string(fragment) + "\x00",
	})
	if err != nil {
		return dp, fmt.Errorf("%s\n\n%w", combined, err)
	}
	dp.worldToClip, err = dp.prog.UniformLocation(glbuild.UniformWorldToClip + "\x00")
	if err != nil {
		dp.prog.Delete()
		return dp, err
	}
	dp.light = -1
	if mode == glbuild.ShadeDiffuse {
		dp.light, err = dp.prog.UniformLocation(glbuild.UniformLightPosition + "\x00")
		if err != nil {
			dp.prog.Delete()
			return dp, err
		}
	}
	return dp, nil
}

func windowTitle(mode glbuild.DebugMode) string {
	return "gshape mesh viewer: " + mode.String() + " (keys 1-5 switch shading)"
}

func startGLFW(width, height int) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err = glfw.CreateWindow(width, height, "gshape mesh viewer", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
