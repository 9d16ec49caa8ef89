package common

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestIdentity(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			want := float32(0)
			if col == row {
				want = 1
			}
			if got := m[col*4+row]; got != want {
				t.Errorf("identity[%d][%d] = %v, want %v", col, row, got, want)
			}
		}
	}
}

func TestMul4Identity(t *testing.T) {
	var id, out [16]float32
	Identity(id[:])

	var m [16]float32
	Translation(m[:], 3, -2, 7)

	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Errorf("I * M != M: got %v", out)
	}

	Mul4(out[:], m[:], id[:])
	if out != m {
		t.Errorf("M * I != M: got %v", out)
	}
}

func TestTranslationMovesPoint(t *testing.T) {
	var m [16]float32
	Translation(m[:], 1, 2, 3)

	p := TransformVec4(m[:], 10, 20, 30, 1)
	want := [4]float32{11, 22, 33, 1}
	for i := range want {
		if !approxEqual(p[i], want[i]) {
			t.Fatalf("translated point = %v, want %v", p, want)
		}
	}

	// Direction vectors (w=0) must ignore translation.
	d := TransformVec4(m[:], 10, 20, 30, 0)
	if !approxEqual(d[0], 10) || !approxEqual(d[1], 20) || !approxEqual(d[2], 30) {
		t.Errorf("translated direction = %v, want unchanged", d)
	}
}

func TestRotationY(t *testing.T) {
	var m [16]float32
	RotationY(m[:], float32(math.Pi/2))

	// +Z rotates to +X under a quarter turn around Y.
	p := TransformVec4(m[:], 0, 0, 1, 1)
	if !approxEqual(p[0], 1) || !approxEqual(p[1], 0) || !approxEqual(p[2], 0) {
		t.Errorf("rotated point = %v, want (1, 0, 0, 1)", p)
	}
}

func TestRotationX(t *testing.T) {
	var m [16]float32
	RotationX(m[:], float32(math.Pi/2))

	// +Y rotates to +Z under a quarter turn around X.
	p := TransformVec4(m[:], 0, 1, 0, 1)
	if !approxEqual(p[0], 0) || !approxEqual(p[1], 0) || !approxEqual(p[2], 1) {
		t.Errorf("rotated point = %v, want (0, 0, 1, 1)", p)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var m [16]float32
	near, far := float32(0.1), float32(100.0)
	Perspective(m[:], float32(math.Pi/4), 16.0/9.0, near, far)

	cases := []struct {
		name string
		z    float32
		want float32
	}{
		{"near plane", -near, 0},
		{"far plane", -far, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clip := TransformVec4(m[:], 0, 0, c.z, 1)
			ndcZ := clip[2] / clip[3]
			if !approxEqual(ndcZ, c.want) {
				t.Errorf("ndc z at %v = %v, want %v", c.z, ndcZ, c.want)
			}
		})
	}
}

func TestPerspectiveW(t *testing.T) {
	var m [16]float32
	Perspective(m[:], float32(math.Pi/4), 1, 0.1, 100)

	// Clip w must carry the positive view depth for points in front of the camera.
	clip := TransformVec4(m[:], 0, 0, -5, 1)
	if !approxEqual(clip[3], 5) {
		t.Errorf("clip w = %v, want 5", clip[3])
	}
}

func TestBuildModelMatrix(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 5, 6, 7, 0, 0, 0, 2, 2, 2)

	p := TransformVec4(m[:], 1, 0, 0, 1)
	if !approxEqual(p[0], 7) || !approxEqual(p[1], 6) || !approxEqual(p[2], 7) {
		t.Errorf("model-transformed point = %v, want (7, 6, 7, 1)", p)
	}
}

func TestNormalize3(t *testing.T) {
	v := []float32{3, 4, 0}
	Normalize3(v)
	if !approxEqual(v[0], 0.6) || !approxEqual(v[1], 0.8) || !approxEqual(v[2], 0) {
		t.Errorf("normalized = %v, want (0.6, 0.8, 0)", v)
	}

	// Zero vectors must not produce NaN.
	z := []float32{0, 0, 0}
	Normalize3(z)
	for i, c := range z {
		if math.IsNaN(float64(c)) {
			t.Errorf("zero vector component %d is NaN", i)
		}
	}
}

func TestDot3(t *testing.T) {
	if got := Dot3([]float32{1, 0, 0}, []float32{0, 1, 0}); !approxEqual(got, 0) {
		t.Errorf("orthogonal dot = %v, want 0", got)
	}
	if got := Dot3([]float32{1, 2, 3}, []float32{4, 5, 6}); !approxEqual(got, 32) {
		t.Errorf("dot = %v, want 32", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name       string
		v, lo, hi  float32
		want       float32
	}{
		{"below", -1, 0, 1, 0},
		{"above", 2, 0, 1, 1},
		{"inside", 0.5, 0, 1, 0.5},
		{"at lower bound", 0, 0, 1, 0},
		{"at upper bound", 1, 0, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}

func TestStructToBytesSize(t *testing.T) {
	type block struct {
		MVP    [16]float32
		Params [4]float32
	}
	var b block
	if got := len(StructToBytes(&b)); got != 80 {
		t.Errorf("uniform block byte size = %d, want 80", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []uint32{1, 2, 3}
	raw := SliceToBytes(data)
	if len(raw) != 12 {
		t.Fatalf("byte length = %d, want 12", len(raw))
	}
	// Little-endian check on the first element.
	if raw[0] != 1 || raw[1] != 0 {
		t.Errorf("unexpected byte layout: % x", raw[:4])
	}
}
