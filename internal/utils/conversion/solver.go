package conversion

import (
	"fmt"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultMaxIterations caps the convergence loop.
const DefaultMaxIterations = 50

// ErrAmountTooSmall is returned when fitting drives a leg to zero.
var ErrAmountTooSmall = fmt.Errorf("%w: amount too small to pay with accepted denominations", apperrors.ErrValidation)

// Side describes how one leg of a conversion must be paid.
type Side struct {
	Denominations []decimal.Decimal
	Adjust        bool // false when the leg is not handled in cash
}

// Problem is a conversion to make payable on both legs.
type Problem struct {
	Anchor    domain.Leg
	Amount    decimal.Decimal
	Received  Side
	Delivered Side
	Forward   func(decimal.Decimal) decimal.Decimal // received -> delivered
	Backward  func(decimal.Decimal) decimal.Decimal // delivered -> received
}

// Solution is a pair of amounts payable on both legs.
type Solution struct {
	Received   decimal.Decimal
	Delivered  decimal.Decimal
	Iterations int
}

func (s Solution) equal(o Solution) bool {
	return s.Received.Equal(o.Received) && s.Delivered.Equal(o.Delivered)
}

// Resolution is the outcome of applying the rounding policy.
type Resolution struct {
	Solution
	Direction   domain.RoundingDirection
	NeedsChoice bool
	// Narrowed is set when alternatives were wanted but only one direction resolved.
	Narrowed    bool
	Under       *Solution
	Over        *Solution
}

// Solver runs the bounded convergence loop.
type Solver struct {
	Tolerance     decimal.Decimal
	MaxIterations int
}

// NewSolver creates a Solver, falling back to defaults for zero values.
func NewSolver(tolerance decimal.Decimal, maxIterations int) Solver {
	if tolerance.IsNegative() {
		tolerance = DefaultTolerance
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return Solver{Tolerance: tolerance, MaxIterations: maxIterations}
}

func (s Solver) fit(side Side, amount decimal.Decimal, direction domain.RoundingDirection) (decimal.Decimal, bool, error) {
	if !side.Adjust {
		return RoundAmount(amount), true, nil
	}
	return Fits(side.Denominations, amount, direction, s.Tolerance)
}

type orientation struct {
	anchor, other     Side
	toOther, toAnchor func(decimal.Decimal) decimal.Decimal
}

func (p Problem) orient() orientation {
	if p.Anchor == domain.LegDelivered {
		return orientation{anchor: p.Delivered, other: p.Received, toOther: p.Backward, toAnchor: p.Forward}
	}
	return orientation{anchor: p.Received, other: p.Delivered, toOther: p.Forward, toAnchor: p.Backward}
}

// Solve finds amounts payable on both legs, adjusting in a single direction.
//
// Each pass makes the other leg payable, recomputes the anchor from it and makes the anchor
// payable. The loop stops when the anchor needs no adjustment and converting it again
// reproduces the other leg, or when the payable anchor maps back onto itself. Rounding can
// also bounce the anchor between a few payable amounts; that cycle resolves to its largest
// anchor when rounding up and its smallest when rounding down.
//
// Denomination sets with no nearby common amount make the legs drift together in the
// rounding direction. The other leg may be realigned once; when it would move again the
// last pair, which already round-trips, is returned.
func (s Solver) Solve(p Problem, direction domain.RoundingDirection) (Solution, error) {
	anchor := RoundAmount(p.Amount)
	if !anchor.IsPositive() {
		return Solution{}, apperrors.ErrInvalidAmount
	}
	o := p.orient()
	solution := func(anchor, other decimal.Decimal, iterations int) Solution {
		if p.Anchor == domain.LegDelivered {
			return Solution{Received: other, Delivered: anchor, Iterations: iterations}
		}
		return Solution{Received: anchor, Delivered: other, Iterations: iterations}
	}

	var visited []pass
	for i := 1; i <= s.MaxIterations; i++ {
		other, _, err := s.fit(o.other, o.toOther(anchor), direction)
		if err != nil {
			return Solution{}, err
		}
		if n := len(visited); n >= 2 && !other.Equal(visited[n-1].other) && !visited[n-1].other.Equal(visited[0].other) {
			last := visited[n-1]
			return solution(last.anchor, last.other, i-1), nil
		}
		if !other.IsPositive() {
			return Solution{}, ErrAmountTooSmall
		}

		fitted, unchanged, err := s.fit(o.anchor, o.toAnchor(other), direction)
		if err != nil {
			return Solution{}, err
		}
		if !fitted.IsPositive() {
			return Solution{}, ErrAmountTooSmall
		}

		if unchanged {
			check, _, err := s.fit(o.other, o.toOther(fitted), direction)
			if err != nil {
				return Solution{}, err
			}
			if check.Equal(other) {
				return solution(fitted, other, i), nil
			}
		}

		visited = append(visited, pass{anchor: anchor, other: other})
		if from := seenAt(visited, fitted); from >= 0 {
			best := pickInCycle(visited[from:], direction)
			return solution(best.anchor, best.other, i), nil
		}
		anchor = fitted
	}
	return Solution{}, fmt.Errorf("%w after %d iterations", apperrors.ErrConvergence, s.MaxIterations)
}

// pass is one anchor together with the payable other leg derived from it.
type pass struct {
	anchor, other decimal.Decimal
}

func seenAt(visited []pass, anchor decimal.Decimal) int {
	for i, v := range visited {
		if v.anchor.Equal(anchor) {
			return i
		}
	}
	return -1
}

func pickInCycle(cycle []pass, direction domain.RoundingDirection) pass {
	best := cycle[0]
	for _, c := range cycle[1:] {
		if direction == domain.RoundUp && c.anchor.GreaterThan(best.anchor) ||
			direction != domain.RoundUp && c.anchor.LessThan(best.anchor) {
			best = c
		}
	}
	return best
}

// Resolve applies the rounding policy.
//
// A caller-chosen direction is used as is. A payable anchor resolves rounding down. Otherwise
// both directions are solved; identical outcomes resolve, different ones are returned as
// alternatives for the caller to choose from. When one direction fails the other is used
// and the resolution is marked Narrowed.
func (s Solver) Resolve(p Problem, choice *domain.RoundingDirection) (Resolution, error) {
	if choice != nil {
		sol, err := s.Solve(p, *choice)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Solution: sol, Direction: *choice}, nil
	}

	if !RoundAmount(p.Amount).IsPositive() {
		return Resolution{}, apperrors.ErrInvalidAmount
	}
	_, representable, err := s.fit(p.orient().anchor, p.Amount, domain.RoundDown)
	if err != nil {
		return Resolution{}, err
	}
	if representable {
		sol, err := s.Solve(p, domain.RoundDown)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Solution: sol, Direction: domain.RoundDown}, nil
	}

	under, errDown := s.Solve(p, domain.RoundDown)
	over, errUp := s.Solve(p, domain.RoundUp)
	switch {
	case errDown != nil && errUp != nil:
		return Resolution{}, errDown
	case errDown != nil:
		return Resolution{Solution: over, Direction: domain.RoundUp, Narrowed: true}, nil
	case errUp != nil:
		return Resolution{Solution: under, Direction: domain.RoundDown, Narrowed: true}, nil
	case under.equal(over):
		return Resolution{Solution: under, Direction: domain.RoundDown}, nil
	}
	return Resolution{NeedsChoice: true, Under: &under, Over: &over}, nil
}
