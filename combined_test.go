package affine

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultParams(t *testing.T) {
	want := Params{SX: 1, SY: 1}
	if got := DefaultParams(); got != want {
		t.Errorf("DefaultParams() = %+v, want %+v", got, want)
	}
	if m := DefaultParams().Matrix(); !cmp.Equal(Identity(), m, approx) {
		t.Errorf("DefaultParams().Matrix() = %v, want identity", m)
	}
}

func TestParamsMatrixOrder(t *testing.T) {
	p := Params{SX: 2, SY: 0.5, Angle: 30, ShX: 0.2, ShY: 0.1}
	want := Scaling(2, 0.5).Multiply(Shear(0.2, 0.1)).Multiply(Rotation(30))
	if diff := cmp.Diff(want, p.Matrix(), approx); diff != "" {
		t.Errorf("Matrix() mismatch (-want +got):\n%s", diff)
	}
}

func TestParamsInverse(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"scale", Params{SX: 2, SY: 3}},
		{"rotate", Params{SX: 1, SY: 1, Angle: 75}},
		{"one-axis shear", Params{SX: 1.5, SY: 0.5, Angle: -20, ShX: 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []InverseMode{InverseCompat, InverseExact} {
				inv, ok := tt.p.Inverse(mode)
				if !ok {
					t.Fatalf("%v: Inverse() reported degenerate", mode)
				}
				if diff := cmp.Diff(Identity(), tt.p.Matrix().Multiply(inv), approx); diff != "" {
					t.Errorf("%v: M * Inverse != I (-want +got):\n%s", mode, diff)
				}
			}
		})
	}
}

func TestParamsInverseCompatConstruction(t *testing.T) {
	p := Params{SX: 2, SY: 4, Angle: 10, ShX: 0.5, ShY: 0.5}
	inv, ok := p.Inverse(InverseCompat)
	if !ok {
		t.Fatal("Inverse() reported degenerate")
	}
	want := Compose(
		Rotation(-10),
		Shear(-0.5/0.75, -0.5/0.75),
		Scaling(0.5, 0.25),
	)
	if diff := cmp.Diff(want, inv, approx); diff != "" {
		t.Errorf("compat inverse mismatch (-want +got):\n%s", diff)
	}

	// For a two-axis shear the per-factor inverse is not exact.
	if cmp.Equal(Identity(), p.Matrix().Multiply(inv), approx) {
		t.Error("compat inverse unexpectedly exact for a two-axis shear")
	}
}

func TestParamsInverseDegenerate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want Matrix
	}{
		{"zero scale", Params{SX: 0, SY: 1}, Identity()},
		{"singular shear", Params{SX: 1, SY: 1, ShX: 2, ShY: 0.5}, Identity()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.p.Inverse(InverseCompat)
			if ok {
				t.Error("Inverse() ok = true, want false")
			}
			if !cmp.Equal(tt.want, inv, approx) {
				t.Errorf("Inverse() = %v, want %v", inv, tt.want)
			}
		})
	}
}

func TestCornerBounds(t *testing.T) {
	r := CornerBounds(11, 5, Identity())
	want := Rect{Min: Pt(-5, -2), Max: Pt(5, 2)}
	if r != want {
		t.Errorf("CornerBounds(identity) = %+v, want %+v", r, want)
	}
	if mid := r.Mid(); mid != Pt(0, 0) {
		t.Errorf("Mid() = %v, want origin", mid)
	}

	r = CornerBounds(11, 5, Rotation(90))
	if math.Abs(r.Max.X-2) > 1e-9 || math.Abs(r.Max.Y-5) > 1e-9 {
		t.Errorf("CornerBounds(rot 90) = %+v, want max (2, 5)", r)
	}
}

func TestEdgeBounds(t *testing.T) {
	r := EdgeBounds(10, 6, Identity())
	want := Rect{Min: Pt(-5, -3), Max: Pt(5, 3)}
	if r != want {
		t.Errorf("EdgeBounds(identity) = %+v, want %+v", r, want)
	}

	r = EdgeBounds(10, 6, Scaling(2, 1))
	if r.Max.X != 10 || r.Min.X != -10 {
		t.Errorf("EdgeBounds(scale 2) x range = [%v, %v], want [-10, 10]", r.Min.X, r.Max.X)
	}
}

func TestTransformIdentity(t *testing.T) {
	src := gradient(9, 6)
	out := Transform(src, DefaultParams())

	if out.Width() != 9 || out.Height() != 6 {
		t.Fatalf("identity canvas = %dx%d, want 9x6", out.Width(), out.Height())
	}
	if diff := cmp.Diff(src.Pix(), out.Pix()); diff != "" {
		t.Errorf("identity transform changed pixels (-want +got):\n%s", diff)
	}
}

func TestTransformCanvas(t *testing.T) {
	tests := []struct {
		name         string
		p            Params
		wantW, wantH int
	}{
		{"scale x2", Params{SX: 2, SY: 1}, 19, 6},
		{"rotate 90", Params{SX: 1, SY: 1, Angle: 90}, 6, 10},
		{"translate", Params{SX: 1, SY: 1, TX: 5, TY: -3}, 15, 9},
		{"fractional translate", Params{SX: 1, SY: 1, TX: 2.5, TY: -0.5}, 12, 7},
		{"shear", Params{SX: 1, SY: 1, ShX: 1}, 15, 6},
	}

	src := gradient(10, 6)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.p.Canvas(10, 6)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Canvas() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			out := Transform(src, tt.p)
			if out.Width() != w || out.Height() != h {
				t.Errorf("Transform() = %dx%d, Canvas() = %dx%d", out.Width(), out.Height(), w, h)
			}
		})
	}
}

func TestTransformEdgeCornersCanvas(t *testing.T) {
	tests := []struct {
		name         string
		p            Params
		wantW, wantH int
	}{
		{"identity", DefaultParams(), 11, 7},
		{"scale x2", Params{SX: 2, SY: 1}, 21, 7},
		{"rotate 90", Params{SX: 1, SY: 1, Angle: 90}, 7, 11},
		{"translate", Params{SX: 1, SY: 1, TX: 5, TY: -3}, 16, 10},
	}

	src := gradient(10, 6)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.p.Canvas(10, 6, WithCorners(CornersEdge))
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Canvas(edge) = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			out := Transform(src, tt.p, WithCorners(CornersEdge))
			if out.Width() != w || out.Height() != h {
				t.Errorf("Transform(edge) = %dx%d, Canvas() = %dx%d", out.Width(), out.Height(), w, h)
			}
		})
	}
}

func TestTransformEdgeCornersHalfPixelOffset(t *testing.T) {
	src := gradient(10, 6)
	out := Transform(src, DefaultParams(), WithCorners(CornersEdge))

	// On the 11x7 canvas destination (x, y) reads source (x-0.5, y-0.5), so
	// (1, 1) weights source pixels (0..1, 0..1) equally.
	if got, want := out.At(1, 1), (Sample{5, 5, 1}); got != want {
		t.Errorf("out(1, 1) = %v, want %v", got, want)
	}
	// Column 0 straddles the left edge: half its weight is black.
	if got, want := out.At(0, 1), (Sample{0, 2, 0}); got != want {
		t.Errorf("out(0, 1) = %v, want %v", got, want)
	}
}

func TestTransformRotationFullTurnCanvas(t *testing.T) {
	for _, size := range [][2]int{{10, 6}, {7, 13}, {1, 1}} {
		w0, h0 := Params{SX: 1, SY: 1}.Canvas(size[0], size[1])
		w1, h1 := Params{SX: 1, SY: 1, Angle: 360}.Canvas(size[0], size[1])
		if w0 != w1 || h0 != h1 {
			t.Errorf("%v: rotate 0 canvas %dx%d != rotate 360 canvas %dx%d", size, w0, h0, w1, h1)
		}
	}
}

func TestTransformDegenerateDoesNotFail(t *testing.T) {
	src := gradient(6, 6)
	for _, p := range []Params{
		{SX: 0, SY: 1},
		{SX: 1, SY: 1, ShX: 2, ShY: 0.5},
		{SX: 0, SY: 0, Angle: 45},
	} {
		for _, mode := range []InverseMode{InverseCompat, InverseExact} {
			out := Transform(src, p, WithInverse(mode))
			w, h := p.Canvas(6, 6)
			if out.Width() != w || out.Height() != h {
				t.Errorf("%+v %v: size %dx%d, want %dx%d", p, mode, out.Width(), out.Height(), w, h)
			}
		}
	}
}

func TestTransformInverseModesAgreeWithoutTwoAxisShear(t *testing.T) {
	src := gradient(12, 8)
	p := Params{SX: 1.3, SY: 0.8, Angle: 25, ShX: 0.2}

	compat := Transform(src, p)
	exact := Transform(src, p, WithInverse(InverseExact))

	// Both inverses are mathematically identical here; allow off-by-one from
	// floating-point differences at truncation boundaries.
	if len(compat.Pix()) != len(exact.Pix()) {
		t.Fatal("inverse mode changed the canvas")
	}
	for i := range compat.Pix() {
		d := int(compat.Pix()[i]) - int(exact.Pix()[i])
		if d < -1 || d > 1 {
			t.Fatalf("sample %d differs by %d", i, d)
		}
	}
}

func TestTransformWorkersMatchSequential(t *testing.T) {
	src := gradient(15, 11)
	p := Params{SX: 1.5, SY: 1.2, Angle: -33, TX: 3, TY: 2, ShX: 0.1, ShY: 0.2}

	seq := Transform(src, p)
	par := Transform(src, p, WithWorkers(3))
	if diff := cmp.Diff(seq.Pix(), par.Pix()); diff != "" {
		t.Errorf("parallel transform differs (-seq +par):\n%s", diff)
	}
}
