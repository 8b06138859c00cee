package glbuild

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/soypat/geometry/ms3"
)

// VersionStr is the GLSL version directive heading every generated shader.
const VersionStr = "#version 410\n"

// Uniform names used by programs generated by [Programmer].
const (
	// UniformWorldToClip is the mat4 transforming world space vertices to clip space.
	UniformWorldToClip = "uVertexWorldToClip"
	// UniformLightPosition is the vec3 world space position of the point light used by [ShadeDiffuse].
	UniformLightPosition = "uLightPosition"
)

// Binding is a vertex attribute's shader input location.
// Bindings are fixed so that any mesh uploaded by glmesh can be drawn by any program
// whose inputs are declared with [Programmer.WriteVertexInputs].
type Binding uint32

const (
	Vertices Binding = iota
	Normals
	TexCoords
	Tangents
	Binormals
	numBindings
)

// Bindings returns all vertex attribute bindings in the order their data is laid out in a vertex buffer.
func Bindings() []Binding {
	return []Binding{Vertices, Normals, TexCoords, Tangents, Binormals}
}

// IsValid reports whether b is a defined attribute binding.
func (b Binding) IsValid() bool { return b < numBindings }

// Location returns the shader input location of the attribute.
func (b Binding) Location() uint32 { return uint32(b) }

// Components returns the number of float32 components in a single attribute element.
func (b Binding) Components() int {
	if b == TexCoords {
		return 2
	}
	return 3
}

// GLSLType returns the GLSL type of the attribute input.
func (b Binding) GLSLType() string {
	if b == TexCoords {
		return "vec2"
	}
	return "vec3"
}

// Name returns the GLSL identifier of the attribute input.
func (b Binding) Name() string {
	switch b {
	case Vertices:
		return "vertex"
	case Normals:
		return "normal"
	case TexCoords:
		return "texcoord"
	case Tangents:
		return "tangent"
	case Binormals:
		return "binormal"
	}
	return ""
}

// String implements fmt.Stringer.
func (b Binding) String() string {
	switch b {
	case Vertices:
		return "Vertices"
	case Normals:
		return "Normals"
	case TexCoords:
		return "TexCoords"
	case Tangents:
		return "Tangents"
	case Binormals:
		return "Binormals"
	}
	return "Binding(" + strconv.Itoa(int(b)) + ")"
}

// DebugMode selects what a debug program generated by [Programmer.WriteDebugProgram] shades fragments with.
type DebugMode uint8

const (
	// ShadeNormal colors fragments by their interpolated normal.
	ShadeNormal DebugMode = iota
	// ShadeTangent colors fragments by their interpolated tangent.
	ShadeTangent
	// ShadeBinormal colors fragments by their interpolated binormal.
	ShadeBinormal
	// ShadeTexCoord colors fragments by their texture coordinates as red and green.
	ShadeTexCoord
	// ShadeDiffuse lights fragments with a single point light at [UniformLightPosition].
	ShadeDiffuse
	numModes
)

// IsValid reports whether mode is a defined debug mode.
func (mode DebugMode) IsValid() bool { return mode < numModes }

// String implements fmt.Stringer.
func (mode DebugMode) String() string {
	switch mode {
	case ShadeNormal:
		return "normal"
	case ShadeTangent:
		return "tangent"
	case ShadeBinormal:
		return "binormal"
	case ShadeTexCoord:
		return "texcoord"
	case ShadeDiffuse:
		return "diffuse"
	}
	return "DebugMode(" + strconv.Itoa(int(mode)) + ")"
}

// ParseDebugMode returns the mode whose String representation is s.
func ParseDebugMode(s string) (DebugMode, error) {
	for mode := DebugMode(0); mode < numModes; mode++ {
		if mode.String() == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown debug mode %q", s)
}

//go:embed shading.glsl
var shadingSrc []byte

// Programmer generates GLSL programs whose vertex inputs match the vertex
// attribute layout of meshes uploaded with glmesh.
type Programmer struct {
	scratch []byte
	// Ambient and Diffuse are the light colors used by [ShadeDiffuse].
	Ambient ms3.Vec
	Diffuse ms3.Vec
}

// NewDefaultProgrammer returns a Programmer with reasonable default lighting parameters.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		scratch: make([]byte, 0, 2048),
		Ambient: ms3.Vec{X: 0.2, Y: 0.3, Z: 0.4},
		Diffuse: ms3.Vec{X: 0.8, Y: 0.7, Z: 0.5},
	}
}

// WriteVertexInputs writes the layout qualified input declarations of the given bindings.
// If no bindings are passed all bindings are declared.
func (p *Programmer) WriteVertexInputs(w io.Writer, bindings ...Binding) (int, error) {
	var err error
	p.scratch, err = AppendVertexInputs(p.scratch[:0], bindings...)
	if err != nil {
		return 0, err
	}
	return w.Write(p.scratch)
}

// WriteDebugProgram writes a vertex and fragment program in glgl's combined
// source format (see glgl.ParseCombined) that draws a mesh shaded by mode.
// The program expects the [UniformWorldToClip] uniform to be set and
// the [UniformLightPosition] uniform when shading with [ShadeDiffuse].
func (p *Programmer) WriteDebugProgram(w io.Writer, mode DebugMode) (int, error) {
	if !mode.IsValid() {
		return 0, fmt.Errorf("invalid debug mode %d", mode)
	}
	var err error
	b := p.scratch[:0]
	b = append(b, "#shader vertex\n"...)
	b = append(b, VersionStr...)
	b, err = AppendVertexInputs(b)
	if err != nil {
		return 0, err
	}
	b = append(b, "\nuniform mat4 "...)
	b = append(b, UniformWorldToClip...)
	b = append(b, ";\n\n"...)
	b = appendInterfaceBlock(b, "out", "vs_out")
	b = append(b, "\nvoid main() {\n"...)
	for _, binding := range Bindings() {
		name := binding.Name()
		b = append(b, "\tvs_out."...)
		b = append(b, name...)
		b = append(b, " = "...)
		b = append(b, name...)
		b = append(b, ";\n"...)
	}
	b = append(b, "\tgl_Position = "...)
	b = append(b, UniformWorldToClip...)
	b = append(b, " * vec4(vertex, 1.0);\n}\n\n"...)

	b = append(b, "#shader fragment\n"...)
	b = append(b, VersionStr...)
	b = append(b, "uniform vec3 "...)
	b = append(b, UniformLightPosition...)
	b = append(b, ";\n\n"...)
	b = appendInterfaceBlock(b, "in", "fs_in")
	b = append(b, "out vec4 fragColor;\n\n"...)
	b = append(b, shadingSrc...)
	b = append(b, "\nvoid main() {\n"...)
	b = AppendVec3Decl(b, "ambient", p.Ambient)
	b = AppendVec3Decl(b, "diffuse", p.Diffuse)
	b = append(b, "vec3 color = "...)
	switch mode {
	case ShadeNormal:
		b = append(b, "gshapeVecColor(fs_in.normal)"...)
	case ShadeTangent:
		b = append(b, "gshapeVecColor(fs_in.tangent)"...)
	case ShadeBinormal:
		b = append(b, "gshapeVecColor(fs_in.binormal)"...)
	case ShadeTexCoord:
		b = append(b, "vec3(fs_in.texcoord, 0.0)"...)
	case ShadeDiffuse:
		b = append(b, "gshapeDiffuse(fs_in.normal, "...)
		b = append(b, UniformLightPosition...)
		b = append(b, "-fs_in.vertex, ambient, diffuse)"...)
	}
	b = append(b, ";\nfragColor = vec4(color, 1.0);\n}\n"...)
	p.scratch = b
	return w.Write(b)
}

// AppendVertexInputs appends the layout qualified input declarations of the given
// bindings to dst. If no bindings are passed all bindings are declared.
func AppendVertexInputs(dst []byte, bindings ...Binding) ([]byte, error) {
	if len(bindings) == 0 {
		bindings = Bindings()
	}
	for _, binding := range bindings {
		if !binding.IsValid() {
			return dst, fmt.Errorf("invalid binding %s", binding)
		}
		dst = append(dst, "layout(location = "...)
		dst = strconv.AppendUint(dst, uint64(binding.Location()), 10)
		dst = append(dst, ") in "...)
		dst = append(dst, binding.GLSLType()...)
		dst = append(dst, ' ')
		dst = append(dst, binding.Name()...)
		dst = append(dst, ";\n"...)
	}
	return dst, nil
}

// appendInterfaceBlock appends the interface block passing all attributes from the vertex
// to the fragment stage. storage is either "in" or "out".
func appendInterfaceBlock(b []byte, storage, instance string) []byte {
	b = append(b, storage...)
	b = append(b, " VS_OUT {\n"...)
	for _, binding := range Bindings() {
		b = append(b, '\t')
		b = append(b, binding.GLSLType()...)
		b = append(b, ' ')
		b = append(b, binding.Name()...)
		b = append(b, ";\n"...)
	}
	b = append(b, "} "...)
	b = append(b, instance...)
	b = append(b, ";\n"...)
	return b
}

// AppendVec3Decl appends a GLSL vec3 variable declaration initialized to v.
func AppendVec3Decl(b []byte, vec3Varname string, v ms3.Vec) []byte {
	b = append(b, "vec3 "...)
	b = append(b, vec3Varname...)
	b = append(b, "=vec3("...)
	b = AppendFloats(b, ',', '-', '.', v.X, v.Y, v.Z)
	b = append(b, ')', ';', '\n')
	return b
}

const decimalDigits = 9

// AppendFloat appends v formatted as a GLSL float literal. neg and decimal replace
// the negative sign and the decimal point so the result may also be used in identifiers.
func AppendFloat(b []byte, neg, decimal byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', decimalDigits, 32)
	idx := bytes.IndexByte(b[start:], '.')
	if decimal != '.' && idx >= 0 {
		b[start+idx] = decimal
	}
	if b[start] == '-' {
		b[start] = neg
	}
	// Finally trim zeroes.
	end := len(b)
	for i := len(b) - 1; idx >= 0 && i > idx+start && b[i] == '0'; i-- {
		end--
	}
	return b[:end]
}

// AppendFloats appends the floats in s separated by sep. See [AppendFloat].
func AppendFloats(b []byte, sep, neg, decimal byte, s ...float32) []byte {
	for i, v := range s {
		b = AppendFloat(b, neg, decimal, v)
		if sep != 0 && i != len(s)-1 {
			b = append(b, sep)
		}
	}
	return b
}

var errNoSection = errors.New("missing shader section")

// SplitCombined splits a combined source as written by [Programmer.WriteDebugProgram]
// into its vertex and fragment sources.
func SplitCombined(src []byte) (vertex, fragment []byte, err error) {
	const vtxHeader, fragHeader = "#shader vertex\n", "#shader fragment\n"
	vi := bytes.Index(src, []byte(vtxHeader))
	fi := bytes.Index(src, []byte(fragHeader))
	if vi < 0 || fi < 0 {
		return nil, nil, errNoSection
	}
	if vi < fi {
		vertex = src[vi+len(vtxHeader) : fi]
		fragment = src[fi+len(fragHeader):]
	} else {
		fragment = src[fi+len(fragHeader) : vi]
		vertex = src[vi+len(vtxHeader):]
	}
	return vertex, fragment, nil
}
