// Package terra converts between WGS84 geodetic coordinates and
// earth-centered earth-fixed (ECEF) cartesian coordinates, bridging both to
// the geometry kernel's float64 points.
package terra

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"geode/src/geometry"
)

// WGS84 ellipsoid constants.
const (
	SemiMajorAxis = 6378137.0         // a, meters
	Flattening    = 1 / 298.257223563 // f
	SemiMinorAxis = SemiMajorAxis * (1 - Flattening)

	eccSq     = Flattening * (2 - Flattening) // first eccentricity squared
	ePrimeSq  = eccSq / (1 - eccSq)           // second eccentricity squared
	polarSnap = 1e-9                          // equatorial radius below which a point counts as polar
)

// Geodetic is a WGS84 latitude/longitude/ellipsoidal-height triple.
type Geodetic struct {
	Lat    s1.Angle
	Lon    s1.Angle
	Height float64 // meters above the ellipsoid
}

// FromDegrees builds a Geodetic from latitude and longitude in degrees.
func FromDegrees(latDeg, lonDeg, height float64) Geodetic {
	return Geodetic{
		Lat:    s1.Angle(latDeg) * s1.Degree,
		Lon:    s1.Angle(lonDeg) * s1.Degree,
		Height: height,
	}
}

// ECEF converts geodetic coordinates to an earth-centered earth-fixed vector
// in meters.
func ECEF(g Geodetic) r3.Vector {
	sinLat := math.Sin(g.Lat.Radians())
	cosLat := math.Cos(g.Lat.Radians())
	sinLon := math.Sin(g.Lon.Radians())
	cosLon := math.Cos(g.Lon.Radians())

	// Prime vertical radius of curvature.
	n := SemiMajorAxis / math.Sqrt(1-eccSq*sinLat*sinLat)

	return r3.Vector{
		X: (n + g.Height) * cosLat * cosLon,
		Y: (n + g.Height) * cosLat * sinLon,
		Z: (n*(1-eccSq) + g.Height) * sinLat,
	}
}

// FromECEF converts an earth-centered earth-fixed vector back to geodetic
// coordinates using Bowring's closed-form approximation, which is accurate to
// well under a millimeter for terrestrial heights.
func FromECEF(v r3.Vector) Geodetic {
	p := math.Hypot(v.X, v.Y)
	if p < polarSnap {
		// On the polar axis the longitude is arbitrary; pin it to zero.
		lat := math.Pi / 2
		if v.Z < 0 {
			lat = -lat
		}
		return Geodetic{
			Lat:    s1.Angle(lat),
			Lon:    0,
			Height: math.Abs(v.Z) - SemiMinorAxis,
		}
	}

	theta := math.Atan2(v.Z*SemiMajorAxis, p*SemiMinorAxis)
	sinT := math.Sin(theta)
	cosT := math.Cos(theta)
	lat := math.Atan2(
		v.Z+ePrimeSq*SemiMinorAxis*sinT*sinT*sinT,
		p-eccSq*SemiMajorAxis*cosT*cosT*cosT,
	)
	lon := math.Atan2(v.Y, v.X)

	sinLat := math.Sin(lat)
	n := SemiMajorAxis / math.Sqrt(1-eccSq*sinLat*sinLat)
	h := p/math.Cos(lat) - n

	return Geodetic{
		Lat:    s1.Angle(lat),
		Lon:    s1.Angle(lon),
		Height: h,
	}
}

// PointFromGeodetic places a geodetic position into the kernel as a float64
// point in the ECEF frame.
func PointFromGeodetic(ar geometry.Arith[float64], g Geodetic) *geometry.Point[float64] {
	return PointFromECEF(ar, ECEF(g))
}

// PointFromECEF wraps an ECEF vector as a kernel point.
func PointFromECEF(ar geometry.Arith[float64], v r3.Vector) *geometry.Point[float64] {
	return geometry.NewPoint(ar, v.X, v.Y, v.Z)
}

// ECEFFromPoint reads a kernel point's effective position as an ECEF vector.
func ECEFFromPoint(ar geometry.Arith[float64], p *geometry.Point[float64]) r3.Vector {
	pos := p.Position(ar)
	return r3.Vector{X: pos.DX, Y: pos.DY, Z: pos.DZ}
}

// GeodeticFromPoint converts a kernel point in the ECEF frame back to
// geodetic coordinates.
func GeodeticFromPoint(ar geometry.Arith[float64], p *geometry.Point[float64]) Geodetic {
	return FromECEF(ECEFFromPoint(ar, p))
}
