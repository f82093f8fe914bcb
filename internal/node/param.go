package node

import (
	"fmt"
	"strings"

	"github.com/cbegin/modsynth-go/internal/dspmath"
)

// Curve selects how a normalized value maps onto a parameter range.
type Curve uint8

const (
	// CurveIdentity passes the value through. Min and Max only document the
	// expected range. Used for audio and trigger signals.
	CurveIdentity Curve = iota
	CurveLinear
	CurveExp
	CurveExp4
)

// ParamSpec describes one node input.
type ParamSpec struct {
	Name    string
	Min     float32
	Max     float32
	Curve   Curve
	Default float32 // denormalized
	Unit    string
}

// DenormV maps a normalized value onto the parameter range. Values outside
// [0, 1] are not clamped; modulation may push a parameter past its range.
func (p ParamSpec) DenormV(v float32) float32 {
	switch p.Curve {
	case CurveLinear:
		return dspmath.P2Range(v, p.Min, p.Max)
	case CurveExp:
		return dspmath.P2RangeExp(v, p.Min, p.Max)
	case CurveExp4:
		return dspmath.P2RangeExp4(v, p.Min, p.Max)
	default:
		return v
	}
}

func (p ParamSpec) Denorm(buf ProcBuf, frame int) float32 {
	return p.DenormV(buf.Read(frame))
}

// Norm is the inverse of DenormV for values inside the range.
func (p ParamSpec) Norm(v float32) float32 {
	switch p.Curve {
	case CurveLinear:
		return dspmath.Range2P(v, p.Min, p.Max)
	case CurveExp:
		return dspmath.Range2PExp(v, p.Min, p.Max)
	case CurveExp4:
		return dspmath.Range2PExp4(v, p.Min, p.Max)
	default:
		return v
	}
}

// DefaultNorm returns the normalized default.
func (p ParamSpec) DefaultNorm() float32 {
	return p.Norm(p.Default)
}

// Format renders a normalized value in the parameter's unit.
func (p ParamSpec) Format(v float32) string {
	d := p.DenormV(v)
	if p.Unit == "" {
		return fmt.Sprintf("%.3f", d)
	}
	return fmt.Sprintf("%.2f %s", d, p.Unit)
}

type atomKind uint8

const (
	atomSetting atomKind = iota
	atomParam
)

// Atom is a non-signal node setting: either a discrete selection or a
// plain float.
type Atom struct {
	kind atomKind
	i    int64
	f    float32
}

func Setting(i int64) Atom { return Atom{kind: atomSetting, i: i} }

func Param(f float32) Atom { return Atom{kind: atomParam, f: f} }

func (a Atom) IsSetting() bool { return a.kind == atomSetting }

func (a Atom) Int() int64 {
	if a.kind == atomParam {
		return int64(a.f)
	}
	return a.i
}

func (a Atom) Float() float32 {
	if a.kind == atomSetting {
		return float32(a.i)
	}
	return a.f
}

// EnumAtom describes a setting atom with a fixed list of choices.
type EnumAtom struct {
	Name    string
	Labels  []string
	Default int64
}

func (e EnumAtom) Valid(i int64) bool {
	return i >= 0 && i < int64(len(e.Labels))
}

// Clamp forces i into the valid choices.
func (e EnumAtom) Clamp(i int64) int64 {
	if i < 0 || len(e.Labels) == 0 {
		return 0
	}
	if n := int64(len(e.Labels)); i >= n {
		return n - 1
	}
	return i
}

// Format returns the label for the atom or "?" if it selects nothing.
func (e EnumAtom) Format(a Atom) string {
	i := a.Int()
	if !e.Valid(i) {
		return "?"
	}
	return e.Labels[i]
}

// Parse maps a label back to its setting. Matching ignores case.
func (e EnumAtom) Parse(s string) (Atom, error) {
	s = strings.TrimSpace(s)
	for i, l := range e.Labels {
		if strings.EqualFold(s, l) {
			return Setting(int64(i)), nil
		}
	}
	return Atom{}, fmt.Errorf("%s: unknown choice %q (want one of %s)", e.Name, s, strings.Join(e.Labels, ", "))
}

// DefaultAtoms returns the default atom of every entry.
func DefaultAtoms(atoms []EnumAtom) []Atom {
	out := make([]Atom, len(atoms))
	for i, a := range atoms {
		out[i] = Setting(a.Default)
	}
	return out
}
