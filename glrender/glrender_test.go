package glrender_test

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshape"
	"github.com/soypat/gshape/glrender"
)

func TestMeshRenderer(t *testing.T) {
	m, err := gshape.NewTorus(2, 0.5, 16, 8)
	if err != nil {
		t.Fatal(err)
	}
	mr, err := glrender.NewMeshRenderer(m)
	if err != nil {
		t.Fatal(err)
	}
	want := m.AppendTriangles(nil)
	got, err := glrender.RenderAll(mr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("rendered %d triangles, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("triangle %d mismatch: %v != %v", i, got[i], want[i])
		}
	}

	// Small buffers must be filled completely until the last read.
	err = mr.Reset(m)
	if err != nil {
		t.Fatal(err)
	}
	var buf [7]ms3.Triangle
	total := 0
	for {
		n, err := mr.ReadTriangles(buf[:], nil)
		total += n
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		} else if n != len(buf) {
			t.Fatalf("short read of %d triangles without EOF", n)
		}
	}
	if total != len(want) {
		t.Errorf("read %d triangles after reset, want %d", total, len(want))
	}
	_, err = mr.ReadTriangles(buf[:], nil)
	if err != io.EOF {
		t.Errorf("expected EOF after exhausting renderer, got %v", err)
	}
}

func TestMeshRendererInvalid(t *testing.T) {
	_, err := glrender.NewMeshRenderer(nil)
	if err == nil {
		t.Error("expected error for nil mesh")
	}
	var mr glrender.MeshRenderer
	_, err = mr.ReadTriangles(make([]ms3.Triangle, 1), nil)
	if err == nil {
		t.Error("expected error reading uninitialized renderer")
	}
}

func TestWriteBinarySTL(t *testing.T) {
	m, err := gshape.NewSphere(1, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	triangles := m.AppendTriangles(nil)
	var buf bytes.Buffer
	n, err := glrender.WriteBinarySTL(&buf, triangles)
	if err != nil {
		t.Fatal(err)
	}
	wantSize := 80 + 4 + 50*len(triangles)
	if n != wantSize || buf.Len() != wantSize {
		t.Fatalf("wrote %d (counted %d) bytes, want %d", buf.Len(), n, wantSize)
	}
	b := buf.Bytes()
	if count := binary.LittleEndian.Uint32(b[80:]); int(count) != len(triangles) {
		t.Fatalf("header triangle count %d, want %d", count, len(triangles))
	}
	readVec := func(off int) ms3.Vec {
		return ms3.Vec{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[off:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(b[off+8:])),
		}
	}
	for i, tri := range triangles {
		off := 84 + 50*i
		normal := readVec(off)
		for j := range tri {
			if v := readVec(off + 12 + 12*j); v != tri[j] {
				t.Fatalf("facet %d vertex %d: got %v, want %v", i, j, v, tri[j])
			}
		}
		// Sphere facets point outward. Pole slivers are skipped.
		area := ms3.Norm(ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0])))
		centroid := ms3.Scale(1./3, ms3.Add(ms3.Add(tri[0], tri[1]), tri[2]))
		if area > 1e-4 && ms3.Dot(normal, centroid) <= 0 {
			t.Errorf("facet %d normal %v points inward", i, normal)
		}
	}
}

func TestWriteOBJ(t *testing.T) {
	m, err := gshape.NewQuad(2, 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	n, err := glrender.WriteOBJ(&buf, m)
	if err != nil {
		t.Fatal(err)
	} else if n != buf.Len() {
		t.Fatalf("wrote %d bytes but counted %d", buf.Len(), n)
	}
	counts := make(map[string]int)
	var faces []string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] == "#" {
			continue
		}
		counts[fields[0]]++
		if fields[0] == "f" {
			faces = append(faces, strings.Join(fields[1:], " "))
		}
	}
	if counts["v"] != 4 || counts["vt"] != 4 || counts["vn"] != 4 || counts["f"] != 2 {
		t.Fatalf("unexpected record counts %v", counts)
	}
	if faces[0] != "1/1/1 2/2/2 4/4/4" || faces[1] != "1/1/1 4/4/4 3/3/3" {
		t.Errorf("unexpected faces %q", faces)
	}
	_, err = glrender.WriteOBJ(&buf, nil)
	if err == nil {
		t.Error("expected error for nil mesh")
	}
}
