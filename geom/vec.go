/*package geom contains the small amount of geometry needed to place turbines
and sample points in the frame of the ambient wind.
*/
package geom

import (
	"math"
)

// Vec is a point or displacement in meters. Depending on context the axes are
// either world (east, north, up) or wind frame (streamwise, crosswise, up).
type Vec [3]float64

// Add returns v1 + v2.
func (v1 Vec) Add(v2 Vec) Vec {
	return Vec{v1[0] + v2[0], v1[1] + v2[1], v1[2] + v2[2]}
}

// Sub returns v1 - v2.
func (v1 Vec) Sub(v2 Vec) Vec {
	return Vec{v1[0] - v2[0], v1[1] - v2[1], v1[2] - v2[2]}
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// EpsEq returns true if every component of v1 and v2 differs by no more than
// eps.
func (v1 Vec) EpsEq(v2 Vec, eps float64) bool {
	for i := 0; i < 3; i++ {
		diff := v1[i] - v2[i]
		if diff > eps || diff < -eps {
			return false
		}
	}
	return true
}
