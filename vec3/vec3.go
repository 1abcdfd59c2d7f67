// Package vec3 provides the 3D coordinate type shared by the electron-scattering
// core and its supporting packages (grid traversal, mesh export, preview rendering).
//
// Coordinates are ordered (Z, Y, X) to match the simulation volume convention:
// Z is the vertical axis, Y and X span the top face.
package vec3

import "math"

// Vec is a point or direction in nanometers (or a unitless direction cosine triple).
type Vec struct {
	Z, Y, X float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.Z + o.Z, v.Y + o.Y, v.X + o.X}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.Z - o.Z, v.Y - o.Y, v.X - o.X}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.Z * s, v.Y * s, v.X * s}
}

// Length returns the Euclidean norm of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.Z*v.Z + v.Y*v.Y + v.X*v.X)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Length()
}

// Floor returns the componentwise floor of v.
func (v Vec) Floor() Vec {
	return Vec{math.Floor(v.Z), math.Floor(v.Y), math.Floor(v.X)}
}

// Array returns v as a [3]float64 in (z, y, x) order, matching the row layout
// expected by the host-facing points matrix (see mc.Trajectory).
func (v Vec) Array() [3]float64 {
	return [3]float64{v.Z, v.Y, v.X}
}
