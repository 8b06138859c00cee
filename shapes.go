package gshape

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// NewQuad creates a width×height rectangle lying on the z=0 plane with a corner at the origin
// and its normals facing +Z. horizontalSplit subdivides the quad along its width (x axis)
// and verticalSplit along its height (y axis). With no splits the quad has 4 vertices
// stored row major as (0,0),(w,0),(0,h),(w,h) and the 2 triangles (0,1,3) and (0,3,2).
func (bld *Builder) NewQuad(width, height float32, horizontalSplit, verticalSplit int) *Mesh {
	if !isFinite(width) || !isFinite(height) || width <= 0 || height <= 0 {
		bld.shapeErrorf("invalid quad dimensions %vx%v", width, height)
		return nil
	}
	if horizontalSplit < 0 || verticalSplit < 0 {
		bld.shapeErrorf("negative quad split count")
		return nil
	}
	rows, cols := verticalSplit+2, horizontalSplit+2
	if _, ok := gridVertices(rows, cols); !ok {
		bld.shapeErrorf("quad split counts overflow vertex index")
		return nil
	}
	tangent := ms3.Vec{X: 1}
	binormal := ms3.Vec{Y: 1}
	return sampleGrid(rows, cols, paramRange{0, height}, paramRange{0, width}, func(y, x float32) (p, t, b ms3.Vec) {
		return ms3.Vec{X: x, Y: y}, tangent, binormal
	})
}

// NewSphere creates a UV sphere of given radius centered at the origin with its poles on the y axis.
// longitudeSplit subdivides the longitude angle θ∈[0,2π] going around the y axis and
// latitudeSplit subdivides the latitude angle φ∈[0,π] starting at the bottom pole.
// The longitude seam is duplicated so texture coordinates span [0,1].
func (bld *Builder) NewSphere(radius float32, longitudeSplit, latitudeSplit int) *Mesh {
	if !isFinite(radius) || radius <= 0 {
		bld.shapeErrorf("zero or negative sphere radius")
		return nil
	}
	if longitudeSplit < 2 || latitudeSplit < 1 {
		bld.shapeErrorf("sphere needs at least 2 longitude and 1 latitude splits, got %d and %d", longitudeSplit, latitudeSplit)
		return nil
	}
	rows, cols := latitudeSplit+2, longitudeSplit+2
	if _, ok := gridVertices(rows, cols); !ok {
		bld.shapeErrorf("sphere split counts overflow vertex index")
		return nil
	}
	return sampleGrid(rows, cols, paramRange{0, math32.Pi}, paramRange{0, twoPi}, func(phi, theta float32) (p, t, b ms3.Vec) {
		sinTheta, cosTheta := math32.Sincos(theta)
		sinPhi, cosPhi := math32.Sincos(phi)
		p = ms3.Vec{
			X: radius * sinTheta * sinPhi,
			Y: -radius * cosPhi,
			Z: radius * cosTheta * sinPhi,
		}
		t = ms3.Vec{X: cosTheta, Z: -sinTheta}
		b = ms3.Vec{X: sinTheta * cosPhi, Y: sinPhi, Z: cosTheta * cosPhi}
		return p, t, b
	})
}

// NewTorus creates a torus centered at the origin revolving around the y axis.
// majorRadius is the distance from the origin to the center of the tube and
// minorRadius is the radius of the tube. majorSplit subdivides the angle going around
// the y axis and minorSplit subdivides the angle going around the tube.
// minorRadius must be smaller than majorRadius.
func (bld *Builder) NewTorus(majorRadius, minorRadius float32, majorSplit, minorSplit int) *Mesh {
	if !isFinite(majorRadius) || !isFinite(minorRadius) || majorRadius <= 0 || minorRadius <= 0 {
		bld.shapeErrorf("invalid torus radii %v, %v", majorRadius, minorRadius)
		return nil
	}
	if minorRadius >= majorRadius {
		bld.shapeErrorf("torus minor radius %v must be less than major radius %v", minorRadius, majorRadius)
		return nil
	}
	if majorSplit < 2 || minorSplit < 2 {
		bld.shapeErrorf("torus needs at least 2 major and minor splits, got %d and %d", majorSplit, minorSplit)
		return nil
	}
	rows, cols := minorSplit+2, majorSplit+2
	if _, ok := gridVertices(rows, cols); !ok {
		bld.shapeErrorf("torus split counts overflow vertex index")
		return nil
	}
	R, r := majorRadius, minorRadius
	return sampleGrid(rows, cols, paramRange{0, twoPi}, paramRange{0, twoPi}, func(theta, phi float32) (p, t, b ms3.Vec) {
		sinTheta, cosTheta := math32.Sincos(theta)
		sinPhi, cosPhi := math32.Sincos(phi)
		d := R + r*cosTheta // Distance from y axis.
		p = ms3.Vec{
			X: d * cosPhi,
			Y: -r * sinTheta,
			Z: d * sinPhi,
		}
		t = ms3.Vec{X: -sinPhi, Z: cosPhi}
		b = ms3.Vec{X: -sinTheta * cosPhi, Y: -cosTheta, Z: -sinTheta * sinPhi}
		return p, t, b
	})
}

// NewCircleRing creates a flat ring (annulus) on the z=0 plane centered at the origin with
// normals facing +Z. radius is the distance from the origin to the middle of the ring and
// spreadLength is the ring's width, so the ring spans radii radius±spreadLength/2.
// circleSplit subdivides the angle going around the ring and spreadSplit its width.
func (bld *Builder) NewCircleRing(radius, spreadLength float32, circleSplit, spreadSplit int) *Mesh {
	if !isFinite(radius) || !isFinite(spreadLength) || radius <= 0 || spreadLength <= 0 {
		bld.shapeErrorf("invalid circle ring dimensions radius=%v spread=%v", radius, spreadLength)
		return nil
	}
	spreadStart := radius - 0.5*spreadLength
	if spreadStart < 0 {
		bld.shapeErrorf("circle ring spread %v larger than diameter %v", spreadLength, 2*radius)
		return nil
	}
	if circleSplit < 2 || spreadSplit < 0 {
		bld.shapeErrorf("circle ring needs at least 2 circle splits and non-negative spread split, got %d and %d", circleSplit, spreadSplit)
		return nil
	}
	rows, cols := circleSplit+2, spreadSplit+2
	if _, ok := gridVertices(rows, cols); !ok {
		bld.shapeErrorf("circle ring split counts overflow vertex index")
		return nil
	}
	spread := paramRange{spreadStart, spreadStart + spreadLength}
	return sampleGrid(rows, cols, paramRange{0, twoPi}, spread, func(theta, dist float32) (p, t, b ms3.Vec) {
		sinTheta, cosTheta := math32.Sincos(theta)
		p = ms3.Vec{X: dist * cosTheta, Y: dist * sinTheta}
		t = ms3.Vec{X: cosTheta, Y: sinTheta}
		b = ms3.Vec{X: -sinTheta, Y: cosTheta}
		return p, t, b
	})
}
