package geometry

import (
	"math"

	"github.com/rfield/go-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere. A negative radius is clamped to zero,
// leaving a point sphere that can only be grazed tangentially.
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: math.Max(0, radius),
	}
}

// Hit tests if a ray intersects with the sphere, returning the nearest
// intersection with t strictly inside rayT.
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic coefficients with b = -2h factored out:
	// t = (h +/- sqrt(h^2 - a*c)) / a
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c

	// No real roots means the ray misses the sphere entirely
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root inside the acceptance interval. Boundary
	// roots are rejected so surfaces don't self-intersect.
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:     root,
		Point: ray.At(root),
	}

	// Outward normal from center to hit point, unit length since the
	// point lies on the surface
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
