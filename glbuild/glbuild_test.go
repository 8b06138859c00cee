package glbuild_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshape/glbuild"
)

func TestVertexInputs(t *testing.T) {
	prog := glbuild.NewDefaultProgrammer()
	var buf bytes.Buffer
	n, err := prog.WriteVertexInputs(&buf)
	if err != nil {
		t.Fatal(err)
	} else if n != buf.Len() {
		t.Fatalf("wrote %d bytes but counted %d", buf.Len(), n)
	}
	src := buf.String()
	for _, want := range []string{
		"layout(location = 0) in vec3 vertex;",
		"layout(location = 1) in vec3 normal;",
		"layout(location = 2) in vec2 texcoord;",
		"layout(location = 3) in vec3 tangent;",
		"layout(location = 4) in vec3 binormal;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in\n%s", want, src)
		}
	}

	buf.Reset()
	_, err = prog.WriteVertexInputs(&buf, glbuild.Normals)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "layout(location = 1) in vec3 normal;\n" {
		t.Errorf("single binding: got %q", got)
	}
	_, err = prog.WriteVertexInputs(&buf, glbuild.Binding(42))
	if err == nil {
		t.Error("expected error for invalid binding")
	}
}

func TestBindingProperties(t *testing.T) {
	seen := make(map[uint32]bool)
	for i, b := range glbuild.Bindings() {
		if b.Location() != uint32(i) {
			t.Errorf("%s: location %d does not follow buffer order %d", b, b.Location(), i)
		}
		if seen[b.Location()] {
			t.Errorf("%s: duplicate location", b)
		}
		seen[b.Location()] = true
		wantType := "vec3"
		if b.Components() == 2 {
			wantType = "vec2"
		}
		if b.GLSLType() != wantType {
			t.Errorf("%s: GLSL type %s does not match %d components", b, b.GLSLType(), b.Components())
		}
	}
	if glbuild.Binding(99).IsValid() {
		t.Error("out of range binding reported valid")
	}
}

func TestDebugProgram(t *testing.T) {
	prog := glbuild.NewDefaultProgrammer()
	prog.Ambient = ms3.Vec{X: 0.25, Y: -0.5, Z: 1}
	var buf bytes.Buffer
	for mode := glbuild.ShadeNormal; mode.IsValid(); mode++ {
		buf.Reset()
		n, err := prog.WriteDebugProgram(&buf, mode)
		if err != nil {
			t.Fatalf("%s: %s", mode, err)
		} else if n != buf.Len() {
			t.Fatalf("%s: wrote %d bytes but counted %d", mode, buf.Len(), n)
		}
		vertex, fragment, err := glbuild.SplitCombined(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(vertex, []byte(glbuild.VersionStr)) || !bytes.HasPrefix(fragment, []byte(glbuild.VersionStr)) {
			t.Errorf("%s: sections must start with version directive", mode)
		}
		if !bytes.Contains(vertex, []byte("uniform mat4 "+glbuild.UniformWorldToClip)) {
			t.Errorf("%s: vertex shader missing world to clip uniform", mode)
		}
		if !bytes.Contains(fragment, []byte("vec3 ambient=vec3(0.25,-0.5,1.);")) {
			t.Errorf("%s: fragment shader missing ambient declaration:\n%s", mode, fragment)
		}
		if bytes.Count(buf.Bytes(), []byte("void main()")) != 2 {
			t.Errorf("%s: expected two entrypoints", mode)
		}
		got, err := glbuild.ParseDebugMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("%s: parse roundtrip got %v, %v", mode, got, err)
		}
	}
	_, err := prog.WriteDebugProgram(&buf, glbuild.DebugMode(200))
	if err == nil {
		t.Error("expected error for invalid mode")
	}
	_, err = glbuild.ParseDebugMode("phong")
	if err == nil {
		t.Error("expected error parsing unknown mode")
	}
}

func TestAppendFloat(t *testing.T) {
	for _, test := range []struct {
		v    float32
		want string
	}{
		{1, "1."},
		{0.5, "0.5"},
		{-2.25, "n2p25"},
	} {
		neg, dec := byte('-'), byte('.')
		if test.v < 0 {
			neg, dec = 'n', 'p'
		}
		got := string(glbuild.AppendFloat(nil, neg, dec, test.v))
		if got != test.want {
			t.Errorf("AppendFloat(%v): got %q, want %q", test.v, got, test.want)
		}
	}
}
