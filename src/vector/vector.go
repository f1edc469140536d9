// Package vector provides the plain geometric value types used for particle
// momenta and vertex positions.
//
// A FourVector is either a position (x, y, z, t) or a momentum
// (px, py, pz, E) depending on where it is used. Derived quantities such as
// the invariant mass or the pseudorapidity are always computed on demand and
// never stored.
package vector

import (
	"fmt"
	"math"
)

// etaLimit is returned by Eta for vectors parallel to the z axis.
const etaLimit = 9.0e10

// ThreeVector is a simple (x, y, z) vector.
type ThreeVector struct {
	X, Y, Z float64
}

// Mag returns the length of the vector.
func (v ThreeVector) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Perp returns the transverse component.
func (v ThreeVector) Perp() float64 {
	return math.Hypot(v.X, v.Y)
}

// Theta returns the polar angle.
func (v ThreeVector) Theta() float64 {
	if v.X == 0 && v.Y == 0 && v.Z == 0 {
		return 0
	}
	return math.Atan2(v.Perp(), v.Z)
}

// Phi returns the azimuthal angle in (-π, π].
func (v ThreeVector) Phi() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// Equal compares components exactly.
func (v ThreeVector) Equal(o ThreeVector) bool {
	return v == o
}

func (v ThreeVector) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// FourVector is a (x, y, z, t) or (px, py, pz, E) vector.
type FourVector struct {
	X, Y, Z, T float64
}

// NewFourVector builds a FourVector from its components.
func NewFourVector(x, y, z, t float64) FourVector {
	return FourVector{X: x, Y: y, Z: z, T: t}
}

// Px returns the x component of a momentum.
func (v FourVector) Px() float64 { return v.X }

// Py returns the y component of a momentum.
func (v FourVector) Py() float64 { return v.Y }

// Pz returns the z component of a momentum.
func (v FourVector) Pz() float64 { return v.Z }

// E returns the energy component of a momentum.
func (v FourVector) E() float64 { return v.T }

// ThreeVector drops the time component.
func (v FourVector) ThreeVector() ThreeVector {
	return ThreeVector{X: v.X, Y: v.Y, Z: v.Z}
}

// M2 returns the squared invariant mass, t² - |x|².
func (v FourVector) M2() float64 {
	return v.T*v.T - (v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// M returns the invariant mass. Space-like vectors yield a negative value.
func (v FourVector) M() float64 {
	mm := v.M2()
	if mm < 0 {
		return -math.Sqrt(-mm)
	}
	return math.Sqrt(mm)
}

// Perp2 returns the squared transverse component.
func (v FourVector) Perp2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Perp returns the transverse component (pT for a momentum).
func (v FourVector) Perp() float64 {
	return math.Sqrt(v.Perp2())
}

// Rho returns the length of the spatial part.
func (v FourVector) Rho() float64 {
	return v.ThreeVector().Mag()
}

// Theta returns the polar angle of the spatial part.
func (v FourVector) Theta() float64 {
	return v.ThreeVector().Theta()
}

// Phi returns the azimuthal angle of the spatial part.
func (v FourVector) Phi() float64 {
	return v.ThreeVector().Phi()
}

// Eta returns the pseudorapidity. A null spatial part yields 0 and vectors
// along the z axis yield ±9e10.
func (v FourVector) Eta() float64 {
	m := v.Rho()
	switch {
	case m == 0:
		return 0
	case m == v.Z:
		return etaLimit
	case m == -v.Z:
		return -etaLimit
	}
	return 0.5 * math.Log((m+v.Z)/(m-v.Z))
}

// Add returns the component-wise sum.
func (v FourVector) Add(o FourVector) FourVector {
	return FourVector{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.T + o.T}
}

// Sub returns the component-wise difference.
func (v FourVector) Sub(o FourVector) FourVector {
	return FourVector{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.T - o.T}
}

// Scale multiplies every component by f.
func (v FourVector) Scale(f float64) FourVector {
	return FourVector{v.X * f, v.Y * f, v.Z * f, v.T * f}
}

// Equal compares components exactly.
func (v FourVector) Equal(o FourVector) bool {
	return v == o
}

func (v FourVector) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", v.X, v.Y, v.Z, v.T)
}
