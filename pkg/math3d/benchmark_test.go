package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := Rotate(V3(0, 1, 0), 0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(Rotate(V3(0, 1, 0), 0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkBiasedRay(b *testing.B) {
	p := V3(1, 2, 3)
	d := V3(1, 1, 0).Normalize()
	n := V3(0, 1, 0)

	for b.Loop() {
		_ = NewBiasedRay(p, d, n, 1e-4)
	}
}

func BenchmarkColorMul(b *testing.B) {
	c := Color{0.2, 0.4, 0.6}
	k := Color{0.5, 0.5, 0.5}

	for b.Loop() {
		_ = c.Mul(k).Add(c)
	}
}
