package geom

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float64(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2Cross(t *testing.T) {
	tests := []struct {
		a, b Vec2
		want float64
	}{
		{Vec2{1, 0}, Vec2{0, 1}, 1},  // CCW turn
		{Vec2{0, 1}, Vec2{1, 0}, -1}, // CW turn
		{Vec2{2, 2}, Vec2{4, 4}, 0},  // parallel
	}

	for _, tc := range tests {
		if got := tc.a.Cross(tc.b); got != tc.want {
			t.Errorf("%v.Cross(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3XY(t *testing.T) {
	v := Vec3{7, -3, 12}
	got := v.XY()
	want := Vec2{7, -3}
	if got != want {
		t.Errorf("Vec3.XY() = %v, want %v", got, want)
	}
}
