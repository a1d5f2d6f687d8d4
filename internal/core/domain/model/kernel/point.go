package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrPointIsNotConstructed is returned when validating a zero-value Point.
var ErrPointIsNotConstructed = errs.NewValueIsRequiredError(
	"point must be created via NewPoint")

// ErrRectIsNotConstructed is returned when validating a zero-value Rect.
var ErrRectIsNotConstructed = errs.NewValueIsRequiredError(
	"rect must be created via NewRect")

// Point is a position on the warehouse floor in meters from the south-west
// corner. Coordinates are continuous and non-negative.
type Point struct { //nolint:recvcheck //using for validation
	x     float64
	y     float64
	guard guard.ConstructorGuard
}

// NewPoint creates a Point with validated coordinates. Both coordinates must be
// finite and non-negative.
func NewPoint(x, y float64) (Point, error) {
	p := Point{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setX(x), p.setY(y)); err != nil {
		return Point{}, err
	}

	return p, nil
}

// Validate checks the Point was created via NewPoint.
func (p Point) Validate() error {
	return p.guard.Validate(ErrPointIsNotConstructed)
}

// X returns the east-west coordinate in meters.
func (p Point) X() float64 {
	return p.x
}

// Y returns the north-south coordinate in meters.
func (p Point) Y() float64 {
	return p.y
}

// DistanceTo returns the straight-line distance to another point. It is used as
// the default edge weight when a path carries no explicit distance.
func (p Point) DistanceTo(other Point) float64 {
	dx := p.x - other.x
	dy := p.y - other.y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsEqual compares two points by coordinates.
func (p Point) IsEqual(other Point) bool {
	return p.x == other.x && p.y == other.y
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("Point(%.2f,%.2f)", p.x, p.y)
}

func (p *Point) setX(x float64) error {
	if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return errs.NewValueIsInvalidErrorWithCause("x",
			fmt.Errorf("%v is not a finite non-negative coordinate", x))
	}
	p.x = x
	return nil
}

func (p *Point) setY(y float64) error {
	if y < 0 || math.IsNaN(y) || math.IsInf(y, 0) {
		return errs.NewValueIsInvalidErrorWithCause("y",
			fmt.Errorf("%v is not a finite non-negative coordinate", y))
	}
	p.y = y
	return nil
}

// Rect is an axis-aligned bounding rectangle used for zone footprints.
type Rect struct { //nolint:recvcheck //using for validation
	origin Point
	width  float64
	height float64
	guard  guard.ConstructorGuard
}

// NewRect creates a Rect anchored at origin with positive width and height.
func NewRect(origin Point, width, height float64) (Rect, error) {
	if err := origin.Validate(); err != nil {
		return Rect{}, err
	}

	if width <= 0 || height <= 0 {
		return Rect{}, errs.NewValueIsInvalidErrorWithCause("rect",
			fmt.Errorf("%vx%v is not a positive extent", width, height))
	}

	return Rect{
		origin: origin,
		width:  width,
		height: height,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the Rect was created via NewRect.
func (r Rect) Validate() error {
	return r.guard.Validate(ErrRectIsNotConstructed)
}

// Origin returns the south-west corner of the rectangle.
func (r Rect) Origin() Point {
	return r.origin
}

// Width returns the east-west extent in meters.
func (r Rect) Width() float64 {
	return r.width
}

// Height returns the north-south extent in meters.
func (r Rect) Height() float64 {
	return r.height
}

// Contains reports whether the point lies inside the rectangle, borders
// included.
func (r Rect) Contains(p Point) bool {
	return p.x >= r.origin.x && p.x <= r.origin.x+r.width &&
		p.y >= r.origin.y && p.y <= r.origin.y+r.height
}
