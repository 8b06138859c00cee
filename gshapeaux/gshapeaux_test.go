package gshapeaux

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshape"
)

func TestRender(t *testing.T) {
	m, err := gshape.NewSphere(1, 16, 8)
	if err != nil {
		t.Fatal(err)
	}
	var stl, obj, uv bytes.Buffer
	err = Render(m, RenderConfig{
		STLOutput: &stl,
		OBJOutput: &obj,
		UVOutput:  &uv,
		UVSize:    128,
		UVLabel:   "sphere",
		Silent:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := 84 + 50*m.TriangleCount(); stl.Len() != want {
		t.Errorf("STL output %d bytes, want %d", stl.Len(), want)
	}
	if !bytes.Contains(obj.Bytes(), []byte("\nf ")) {
		t.Error("OBJ output contains no faces")
	}
	img, err := png.Decode(&uv)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 128, 128) {
		t.Errorf("UV map bounds %v", img.Bounds())
	}

	err = Render(m, RenderConfig{Silent: true})
	if err == nil {
		t.Error("expected error with no outputs")
	}
	m.Indices[0][0] = uint32(m.VertexCount())
	err = Render(m, RenderConfig{STLOutput: &stl, Silent: true})
	if err == nil {
		t.Error("expected error for invalid mesh")
	}
}

func TestRenderUVPNG(t *testing.T) {
	const size = 64
	m, err := gshape.NewQuad(2, 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = RenderUVPNG(&buf, m, size, "quad")
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	// Away from the diagonal edge and the label the quad is filled with its +Z normal color.
	want := color.RGBAModel.Convert(ColorFromNormal(ms3.Vec{Z: 1}))
	got := color.RGBAModel.Convert(img.At(3*size/4, 3*size/4))
	if got != want {
		t.Errorf("fill color %v, want %v", got, want)
	}
	if err = RenderUVPNG(&buf, m, 0, ""); err == nil {
		t.Error("expected error for zero size")
	}
	if err = RenderUVPNG(&buf, nil, size, ""); err == nil {
		t.Error("expected error for nil mesh")
	}
}

func TestColorFromNormal(t *testing.T) {
	for _, test := range []struct {
		n    ms3.Vec
		want color.RGBA
	}{
		{n: ms3.Vec{Z: 1}, want: color.RGBA{R: 128, G: 128, B: 255, A: 255}},
		{n: ms3.Vec{X: -1}, want: color.RGBA{R: 0, G: 128, B: 128, A: 255}},
		{n: ms3.Vec{Y: 3}, want: color.RGBA{R: 128, G: 255, B: 128, A: 255}},
	} {
		got := ColorFromNormal(test.n)
		if got != test.want {
			t.Errorf("ColorFromNormal(%v) = %v, want %v", test.n, got, test.want)
		}
	}
}

func TestColorFromTexCoord(t *testing.T) {
	got := ColorFromTexCoord(ms2.Vec{X: 1, Y: 0.5})
	want := color.RGBA{R: 255, G: 128, A: 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUIConfig(t *testing.T) {
	m, _ := gshape.NewQuad(1, 1, 0, 0)
	if err := UI(nil, UIConfig{Width: 10, Height: 10}); err == nil {
		t.Error("expected error for nil mesh")
	}
	if err := UI(m, UIConfig{}); err == nil {
		t.Error("expected error for zero window size")
	}
	if err := UI(m, UIConfig{Width: 10, Height: 10, Mode: 100}); err == nil {
		t.Error("expected error for invalid mode")
	}
}
