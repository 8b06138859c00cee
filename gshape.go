package gshape

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

const (
	twoPi = 2 * math32.Pi
	// maxVertices is the largest vertex count addressable by a uint32 index buffer.
	maxVertices = math.MaxUint32
)

// Builder wraps all parametric shape generation logic.
// Provides error handling strategies with panics or error accumulation during shape generation.
type Builder struct {
	NoDimensionPanic bool
	accumErrs        []error
}

// Err returns the errors accumulated during shape generation joined together.
// Only relevant when NoDimensionPanic is set.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated errors.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if !bld.NoDimensionPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

// NewQuad creates a quad mesh. See [Builder.NewQuad].
func NewQuad(width, height float32, horizontalSplit, verticalSplit int) (*Mesh, error) {
	bld := Builder{NoDimensionPanic: true}
	m := bld.NewQuad(width, height, horizontalSplit, verticalSplit)
	return m, bld.Err()
}

// NewSphere creates a UV sphere mesh. See [Builder.NewSphere].
func NewSphere(radius float32, longitudeSplit, latitudeSplit int) (*Mesh, error) {
	bld := Builder{NoDimensionPanic: true}
	m := bld.NewSphere(radius, longitudeSplit, latitudeSplit)
	return m, bld.Err()
}

// NewTorus creates a torus mesh. See [Builder.NewTorus].
func NewTorus(majorRadius, minorRadius float32, majorSplit, minorSplit int) (*Mesh, error) {
	bld := Builder{NoDimensionPanic: true}
	m := bld.NewTorus(majorRadius, minorRadius, majorSplit, minorSplit)
	return m, bld.Err()
}

// NewCircleRing creates a flat annulus mesh. See [Builder.NewCircleRing].
func NewCircleRing(radius, spreadLength float32, circleSplit, spreadSplit int) (*Mesh, error) {
	bld := Builder{NoDimensionPanic: true}
	m := bld.NewCircleRing(radius, spreadLength, circleSplit, spreadSplit)
	return m, bld.Err()
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// gridVertices returns the vertex count of a rows×cols grid and false if
// it cannot be indexed by a uint32 index buffer.
func gridVertices(rows, cols int) (int, bool) {
	if rows <= 0 || cols <= 0 {
		return 0, false // Split count overflowed int.
	}
	if uint64(rows) > maxVertices/uint64(cols) {
		return 0, false
	}
	return rows * cols, true
}
