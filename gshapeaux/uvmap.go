package gshapeaux

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/chewxy/math32"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshape"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"
)

const (
	uvLabelSize  = 14 // Label font size in points at 72 DPI.
	uvEdgeWidth  = 1  // Triangle edge stroke width in pixels.
	uvMaxMapSize = 1 << 13
)

var uvEdgeColor = color.RGBA{R: 32, G: 32, B: 32, A: 255}

// RenderUVPNG draws the texture coordinate layout of m as a size×size PNG to w.
// Each triangle is filled with the color of its average normal (see [ColorFromNormal])
// and its edges are stroked. Texture coordinate v=0 lies on the bottom of the image.
// If label is not empty it is written on the top left corner with the Go regular font.
func RenderUVPNG(w io.Writer, m *gshape.Mesh, size int, label string) error {
	if size <= 0 || size > uvMaxMapSize {
		return errors.New("invalid UV map size")
	} else if m == nil {
		return errors.New("nil mesh")
	}
	err := m.Validate()
	if err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	var uvr uvRasterizer
	uvr.img = img
	fsize := float32(size)
	for _, tri := range m.Indices {
		var px [3]ms2.Vec
		var normal ms3.Vec
		for i, idx := range tri {
			uv := m.TexCoords[idx]
			px[i] = ms2.Vec{X: uv.X * fsize, Y: (1 - uv.Y) * fsize}
			normal = ms3.Add(normal, m.Normals[idx])
		}
		if ms3.Norm(normal) > 0 {
			normal = ms3.Unit(normal)
		}
		uvr.fill(px[:], ColorFromNormal(normal))
		for i := range px {
			uvr.stroke(px[i], px[(i+1)%3], uvEdgeWidth, uvEdgeColor)
		}
	}
	if label != "" {
		err = drawLabel(img, label)
		if err != nil {
			return err
		}
	}
	return png.Encode(w, img)
}

// uvRasterizer fills polygons on img one at a time. Each polygon is rasterized on a
// mask the size of its bounding box so small polygons are cheap to draw.
type uvRasterizer struct {
	img *image.RGBA
	ras vector.Rasterizer
	src image.Uniform
}

func (uvr *uvRasterizer) fill(poly []ms2.Vec, c color.RGBA) {
	if len(poly) < 3 {
		return
	}
	bb := ms2.Box{Min: poly[0], Max: poly[0]}
	for _, p := range poly[1:] {
		bb.Min = ms2.MinElem(bb.Min, p)
		bb.Max = ms2.MaxElem(bb.Max, p)
	}
	r := image.Rect(
		int(math32.Floor(bb.Min.X)), int(math32.Floor(bb.Min.Y)),
		int(math32.Ceil(bb.Max.X))+1, int(math32.Ceil(bb.Max.Y))+1,
	).Intersect(uvr.img.Bounds())
	if r.Empty() {
		return
	}
	origin := ms2.Vec{X: float32(r.Min.X), Y: float32(r.Min.Y)}
	uvr.ras.Reset(r.Dx(), r.Dy())
	p := ms2.Sub(poly[0], origin)
	uvr.ras.MoveTo(p.X, p.Y)
	for _, v := range poly[1:] {
		p = ms2.Sub(v, origin)
		uvr.ras.LineTo(p.X, p.Y)
	}
	uvr.ras.ClosePath()
	uvr.src.C = c
	uvr.ras.Draw(uvr.img, r, &uvr.src, image.Point{})
}

// stroke draws the segment from a to b as a quad of the given width.
func (uvr *uvRasterizer) stroke(a, b ms2.Vec, width float32, c color.RGBA) {
	dir := ms2.Sub(b, a)
	length := ms2.Norm(dir)
	if length == 0 {
		return
	}
	perp := ms2.Scale(0.5*width/length, ms2.Vec{X: -dir.Y, Y: dir.X})
	uvr.fill([]ms2.Vec{
		ms2.Add(a, perp),
		ms2.Add(b, perp),
		ms2.Sub(b, perp),
		ms2.Sub(a, perp),
	}, c)
}

func drawLabel(dst draw.Image, label string) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(uvLabelSize)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.Black)
	c.SetHinting(font.HintingFull)
	const margin = 4
	pt := freetype.Pt(margin, margin+int(c.PointToFixed(uvLabelSize)>>6))
	_, err = c.DrawString(label, pt)
	return err
}
