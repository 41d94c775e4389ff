package physics

import "github.com/plus3/planets/ecs"

// G is the gravitational constant in SI units.
const G = 6.674e-11

// Attraction returns the gravitational force a body of mass m1 at p1 feels from a body
// of mass m2 at p2. Coincident points attract with zero force, which covers the
// self pair.
func Attraction(p1 Vec2, m1 float64, p2 Vec2, m2 float64) Vec2 {
	distance := Distance(p1, p2)
	if distance == 0 {
		return Vec2{}
	}
	magnitude := G * m1 * m2 / (distance * distance)
	return p2.Sub(p1).Normalized().Scale(magnitude)
}

// GravitySystem adds the pairwise Newtonian attraction between all bodies carrying
// Mass and Motion to their Force. Every ordered pair is visited, the self pair
// included, so the cost is O(n²) per tick.
type GravitySystem struct {
	Bodies ecs.Query[struct {
		Mass   *Mass
		Motion *Motion
		Force  *Force `ecs:"optional"`
	}]

	sources []source
}

type source struct {
	position Vec2
	mass     float64
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) error {
	s.sources = s.sources[:0]
	for body := range s.Bodies.Values() {
		s.sources = append(s.sources, source{body.Motion.Position, body.Mass.Kg})
	}

	for body := range s.Bodies.Values() {
		if body.Force == nil {
			continue
		}
		var net Vec2
		for _, other := range s.sources {
			net = net.Add(Attraction(body.Motion.Position, body.Mass.Kg, other.position, other.mass))
		}
		body.Force.Net = body.Force.Net.Add(net)
	}
	return nil
}
