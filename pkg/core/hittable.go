package core

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Unit surface normal, always opposing the incoming ray
	T         float64 // Parameter t along the ray
	FrontFace bool    // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is the interface for anything a ray can be tested against.
// Hit returns the nearest intersection with t inside rayT, or false if
// there is none.
type Hittable interface {
	Hit(ray Ray, rayT Interval) (*HitRecord, bool)
}

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}
