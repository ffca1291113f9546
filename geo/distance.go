package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	// Equator circumference in kilometers (24830 statute miles).
	equatorCircumferenceKm = 24830.0 * 1.609344

	// WGS-84 ellipsoid.
	wgs84SemiMajorM = 6378137.0
	wgs84Flattening = 1 / 298.257223563

	vincentyTolerance     = 1e-12
	vincentyMaxIterations = 200
)

// SphericalDistanceKm returns the great-circle distance between two
// points in kilometers, on a sphere whose radius is derived from the
// equator circumference.
func SphericalDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return equatorCircumferenceKm * p1.Distance(p2).Radians() / (2 * math.Pi)
}

// VincentyDistanceKm returns the geodesic distance between two points
// in kilometers on the WGS-84 ellipsoid, using Vincenty's inverse
// formula. If the lambda iteration has not converged after 200 rounds
// the last computed value is returned; nearly-antipodal point pairs
// are the only inputs that get there and the error stays small.
func VincentyDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	a := wgs84SemiMajorM
	f := wgs84Flattening
	b := (1 - f) * a

	u1 := math.Atan((1 - f) * math.Tan(radians(lat1)))
	u2 := math.Atan((1 - f) * math.Tan(radians(lat2)))
	l := radians(lon2 - lon1)

	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := l
	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64
	for i := 0; i < vincentyMaxIterations; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Hypot(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
		if sinSigma == 0 {
			// coincident points
			return 0
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			// both points on the equator
			cos2SigmaM = 0
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}
		c := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		prev := lambda
		lambda = l + (1-c)*f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-prev) < vincentyTolerance {
			break
		}
	}

	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	kA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	kB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := kB * sinSigma * (cos2SigmaM + kB/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			kB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return b * kA * (sigma - deltaSigma) / 1000
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
