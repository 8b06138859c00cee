//go:build tinygo || !cgo

package gshapeaux

import (
	"errors"

	"github.com/soypat/gshape"
)

func ui(m *gshape.Mesh, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
