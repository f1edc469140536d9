package hepmc

import (
	"fmt"
	"math"
)

// Polarization holds the polarization angles of a particle. Theta is kept in
// [0,π] and Phi in [0,2π).
type Polarization struct {
	theta   float64
	phi     float64
	defined bool
}

// NewPolarization returns a defined Polarization with normalized angles.
func NewPolarization(theta, phi float64) Polarization {
	return Polarization{
		theta:   validTheta(theta),
		phi:     validPhi(phi),
		defined: true,
	}
}

// Theta returns the polar angle in radians.
func (p Polarization) Theta() float64 { return p.theta }

// Phi returns the azimuthal angle in radians.
func (p Polarization) Phi() float64 { return p.phi }

// IsDefined reports whether the angles were ever set.
func (p Polarization) IsDefined() bool { return p.defined }

// Equal compares the angles.
func (p Polarization) Equal(o Polarization) bool {
	return p.theta == o.theta && p.phi == o.phi
}

func (p Polarization) String() string {
	if !p.defined {
		return "(undefined)"
	}
	return fmt.Sprintf("(%g,%g)", p.theta, p.phi)
}

// validTheta folds theta into [0,π]. Values already in range are returned
// unchanged.
func validTheta(theta float64) float64 {
	theta = math.Mod(math.Abs(theta), 2*math.Pi)
	if theta > math.Pi {
		theta = 2*math.Pi - theta
	}
	return theta
}

// validPhi folds phi into [0,2π). Values already in range are returned
// unchanged.
func validPhi(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi >= 2*math.Pi {
		phi = 0
	}
	return phi
}
