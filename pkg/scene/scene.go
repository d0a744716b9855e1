package scene

import (
	"github.com/rfield/go-raytracer/pkg/core"
)

// Scene is an ordered collection of hittable objects. It implements
// core.Hittable itself, reducing a ray to the globally nearest hit
// across all members. Objects are held by pointer, so identical
// geometry can be shared between scenes without duplication.
type Scene struct {
	Objects []core.Hittable
}

// NewScene creates a scene containing the given objects
func NewScene(objects ...core.Hittable) *Scene {
	return &Scene{Objects: objects}
}

// Add appends an object to the scene
func (s *Scene) Add(object core.Hittable) {
	s.Objects = append(s.Objects, object)
}

// Clear removes all objects from the scene
func (s *Scene) Clear() {
	s.Objects = nil
}

// Hit tests the ray against every object, narrowing the upper bound to
// the closest t found so far. Later objects are pruned against earlier
// hits, so the result is the nearest intersection across all members.
func (s *Scene) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := rayT.Max

	for _, object := range s.Objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
