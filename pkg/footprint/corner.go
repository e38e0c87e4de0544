package footprint

import (
	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
)

// =============================================================================
// Round Radius
// =============================================================================

// DefaultRoundRadius is the rounding applied to roundrect pads when the
// caller gives no handler of its own: a quarter of the shorter pad
// side, capped at 0.25 mm.
var DefaultRoundRadius = RoundRadius{Ratio: 0.25, MaxRadius: 0.25}

// RoundRadius determines the corner radius of roundrect pads. An Exact
// radius takes precedence when UseExact is set; otherwise Ratio applies,
// capped by MaxRadius when MaxRadius is positive.
type RoundRadius struct {
	// Ratio is the radius as a fraction of the shorter pad side, in
	// [0, 0.5].
	Ratio float64

	// MaxRadius caps the resulting radius in millimetres. Zero means no
	// cap.
	MaxRadius float64

	// Exact is an absolute radius in millimetres, used when UseExact is
	// set. An exact radius of zero disables rounding.
	Exact    float64
	UseExact bool
}

// RoundRadiusExact builds a handler that requests an absolute corner
// radius.
func RoundRadiusExact(radius float64) RoundRadius {
	return RoundRadius{Exact: radius, UseExact: true}
}

// RoundRadiusRatio builds a handler from a plain ratio without a cap.
func RoundRadiusRatio(ratio float64) RoundRadius {
	return RoundRadius{Ratio: ratio}
}

// Requested reports whether the handler asks for any rounding at all.
func (r RoundRadius) Requested() bool {
	if r.UseExact {
		return r.Exact != 0
	}
	return r.Ratio != 0
}

// LimitMax tightens the radius cap. Handlers that request no rounding
// are left alone.
func (r RoundRadius) LimitMax(limit float64) RoundRadius {
	if !r.Requested() {
		return r
	}
	if r.MaxRadius > 0 && r.MaxRadius < limit {
		return r
	}
	r.MaxRadius = limit
	return r
}

// ratioFor resolves the effective radius ratio for a pad with the given
// shortest side length.
func (r RoundRadius) ratioFor(shortestSide float64) (float64, error) {
	if r.Ratio < 0 || r.Ratio > 0.5 {
		return 0, kfperrors.New(kfperrors.ErrCodeInvalidPad, "round radius ratio %v outside [0, 0.5]", r.Ratio)
	}
	if r.UseExact {
		if r.Exact > shortestSide/2 {
			return 0, kfperrors.New(kfperrors.ErrCodeInvalidPad,
				"round radius %v too large for pad side %v", r.Exact, shortestSide)
		}
		exact := r.Exact
		if r.MaxRadius > 0 && r.MaxRadius < exact {
			exact = r.MaxRadius
		}
		return exact / shortestSide, nil
	}
	if r.MaxRadius > 0 && r.Ratio*shortestSide > r.MaxRadius {
		return r.MaxRadius / shortestSide, nil
	}
	return r.Ratio, nil
}

// RadiusFor resolves the effective corner radius in millimetres for a
// pad with the given shortest side length.
func (r RoundRadius) RadiusFor(shortestSide float64) (float64, error) {
	ratio, err := r.ratioFor(shortestSide)
	if err != nil {
		return 0, err
	}
	return ratio * shortestSide, nil
}

// =============================================================================
// Chamfer
// =============================================================================

// DefaultChamferRatio is the chamfer fraction used when corners are
// selected without an explicit size.
const DefaultChamferRatio = 0.25

// ChamferSize determines the chamfer size of roundrect pads, mirroring
// [RoundRadius]: Exact wins when UseExact is set, otherwise Ratio
// applies, capped by MaxSize.
type ChamferSize struct {
	Ratio    float64
	MaxSize  float64
	Exact    float64
	UseExact bool
}

// Requested reports whether the handler asks for any chamfer at all.
func (c ChamferSize) Requested() bool {
	if c.UseExact {
		return c.Exact != 0
	}
	return c.Ratio != 0
}

// ratioFor resolves the effective chamfer ratio for a pad with the
// given shortest side length.
func (c ChamferSize) ratioFor(shortestSide float64) (float64, error) {
	if c.Ratio < 0 || c.Ratio > 0.5 {
		return 0, kfperrors.New(kfperrors.ErrCodeInvalidPad, "chamfer ratio %v outside [0, 0.5]", c.Ratio)
	}
	if c.UseExact {
		if c.Exact > shortestSide/2 {
			return 0, kfperrors.New(kfperrors.ErrCodeInvalidPad,
				"chamfer of %v too large for pad side %v", c.Exact, shortestSide)
		}
		exact := c.Exact
		if c.MaxSize > 0 && c.MaxSize < exact {
			exact = c.MaxSize
		}
		return exact / shortestSide, nil
	}
	if c.MaxSize > 0 && c.Ratio*shortestSide > c.MaxSize {
		return c.MaxSize / shortestSide, nil
	}
	return c.Ratio, nil
}

// =============================================================================
// Corner Selection
// =============================================================================

// ChamferCorners selects which pad corners are chamfered.
type ChamferCorners struct {
	TopLeft     bool
	TopRight    bool
	BottomLeft  bool
	BottomRight bool
}

// ChamferAll selects every corner.
func ChamferAll() ChamferCorners {
	return ChamferCorners{TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true}
}

// Any reports whether at least one corner is selected.
func (c ChamferCorners) Any() bool {
	return c.TopLeft || c.TopRight || c.BottomLeft || c.BottomRight
}

// RotatedCW returns the selection after rotating the pad a quarter turn
// clockwise on screen.
func (c ChamferCorners) RotatedCW() ChamferCorners {
	return ChamferCorners{
		TopLeft:     c.BottomLeft,
		TopRight:    c.TopLeft,
		BottomRight: c.TopRight,
		BottomLeft:  c.BottomRight,
	}
}

// RotatedCCW returns the selection after rotating the pad a quarter
// turn counterclockwise on screen.
func (c ChamferCorners) RotatedCCW() ChamferCorners {
	return ChamferCorners{
		TopLeft:     c.TopRight,
		TopRight:    c.BottomRight,
		BottomRight: c.BottomLeft,
		BottomLeft:  c.TopLeft,
	}
}

// Union returns the corners selected in either selection.
func (c ChamferCorners) Union(o ChamferCorners) ChamferCorners {
	return ChamferCorners{
		TopLeft:     c.TopLeft || o.TopLeft,
		TopRight:    c.TopRight || o.TopRight,
		BottomRight: c.BottomRight || o.BottomRight,
		BottomLeft:  c.BottomLeft || o.BottomLeft,
	}
}
