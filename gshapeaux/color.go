package gshapeaux

import (
	"image/color"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// ColorFromNormal maps a unit vector's components from [-1,1] to the [0,255] red, green and blue
// channels, the same convention used by the debug shaders. Components outside of range are clamped.
func ColorFromNormal(n ms3.Vec) color.RGBA {
	return color.RGBA{
		R: unitToUint8(0.5*n.X + 0.5),
		G: unitToUint8(0.5*n.Y + 0.5),
		B: unitToUint8(0.5*n.Z + 0.5),
		A: 255,
	}
}

// ColorFromTexCoord maps texture coordinates to the red and green channels.
func ColorFromTexCoord(uv ms2.Vec) color.RGBA {
	return color.RGBA{
		R: unitToUint8(uv.X),
		G: unitToUint8(uv.Y),
		A: 255,
	}
}

func unitToUint8(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(v*255 + 0.5)
}
