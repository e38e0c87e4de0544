package footprint

import (
	"strconv"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// PadArray replicates a prototype pad along a line. The prototype's
// number and position are replaced per pad; everything else carries
// over. The generated pads are virtual children, so transform wrappers
// above the array apply to them and the array itself emits nothing.
type PadArray struct {
	BaseNode

	// Prototype supplies every pad field except number and position.
	Prototype *Pad

	Start geometry.Vec
	Pitch geometry.Vec
	Count int

	// Numbering: Numbers wins when non-empty and must cover every
	// surviving position. Otherwise numbers count up from FirstNumber
	// (default 1) in steps of Increment (default 1).
	FirstNumber int
	Increment   int
	Numbers     []string

	// SkipNumbers drops pads by their assigned number, leaving a gap
	// in the numbering. SkipIndices drops pads by position; the
	// numbering continues on the survivors. The two are mutually
	// exclusive.
	SkipNumbers []string
	SkipIndices []int

	// Customize mutates each pad after number and position are set and
	// before validation. Index is the position in the array.
	Customize func(index int, p *Pad)

	pads []*Pad
}

// NewPadArray validates the array definition, builds the pads and
// returns the usable node.
func NewPadArray(a PadArray) (*PadArray, error) {
	errs := &kfperrors.FieldErrors{Code: kfperrors.ErrCodeInvalidPad}

	if a.Prototype == nil {
		errs.Add("prototype", "pad array needs a prototype pad")
	}
	if a.Count <= 0 {
		errs.Add("count", "pad count must be positive, got %d", a.Count)
	}
	if len(a.SkipNumbers) > 0 && len(a.SkipIndices) > 0 {
		errs.Add("skip", "skip by number and skip by index cannot be combined")
	}

	skipIdx := make(map[int]bool, len(a.SkipIndices))
	for _, i := range a.SkipIndices {
		if i < 0 || i >= a.Count {
			errs.Add("skip_indices", "index %d outside the array", i)
			continue
		}
		skipIdx[i] = true
	}
	if len(a.Numbers) > 0 {
		if want := a.Count - len(skipIdx); len(a.Numbers) != want {
			errs.Add("numbers", "got %d numbers for %d pads", len(a.Numbers), want)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	arr := a
	arr.BaseNode = BaseNode{}
	arr.pads = nil
	arr.Prototype = a.Prototype.Copy().(*Pad)
	arr.Numbers = append([]string(nil), a.Numbers...)
	arr.SkipNumbers = append([]string(nil), a.SkipNumbers...)
	arr.SkipIndices = append([]int(nil), a.SkipIndices...)
	arr.bind(&arr, "PadArray")

	increment := arr.Increment
	if increment == 0 {
		increment = 1
	}
	first := arr.FirstNumber
	if first == 0 {
		first = 1
	}
	skipNum := make(map[string]bool, len(arr.SkipNumbers))
	for _, n := range arr.SkipNumbers {
		skipNum[n] = true
	}

	seq := 0
	for i := 0; i < arr.Count; i++ {
		if skipIdx[i] {
			continue
		}
		number := strconv.Itoa(first + seq*increment)
		if len(arr.Numbers) > 0 {
			number = arr.Numbers[seq]
		}
		seq++
		if skipNum[number] {
			continue
		}

		at := arr.Start.Add(arr.Pitch.Scale(float64(i)))
		pad, err := arr.Prototype.CopyWith(func(p *Pad) {
			p.Number = number
			p.At = at
			if arr.Customize != nil {
				arr.Customize(i, p)
			}
		})
		if err != nil {
			return nil, kfperrors.Wrap(kfperrors.ErrCodeInvalidPad, err, "pad %s of array", number)
		}
		pad.base().parent = &arr
		arr.pads = append(arr.pads, pad)
	}
	return &arr, nil
}

// MustNewPadArray is NewPadArray for static definitions; it panics on
// invalid input.
func MustNewPadArray(a PadArray) *PadArray {
	arr, err := NewPadArray(a)
	if err != nil {
		panic(err)
	}
	return arr
}

// Pads returns the generated pads in array order.
func (a *PadArray) Pads() []*Pad {
	out := make([]*Pad, len(a.pads))
	copy(out, a.pads)
	return out
}

// VirtualChildren returns the generated pads.
func (a *PadArray) VirtualChildren() []Node {
	out := make([]Node, len(a.pads))
	for i, p := range a.pads {
		out[i] = p
	}
	return out
}

func (a *PadArray) contentID() *identity {
	id := newIdentity(a.kind).
		vec("start", a.Start).
		vec("pitch", a.Pitch).
		num("count", a.Count).
		num("first_number", a.FirstNumber).
		num("increment", a.Increment).
		strs("numbers", a.Numbers).
		strs("skip_numbers", a.SkipNumbers)
	idx := make([]float64, len(a.SkipIndices))
	for i, v := range a.SkipIndices {
		idx[i] = float64(v)
	}
	id.floats("skip_indices", idx)
	if a.Prototype != nil {
		id.str("prototype", a.Prototype.ContentHash())
	}
	return id
}

// Copy returns a deep copy with the parent cleared. The pads are
// rebuilt from the copied prototype.
func (a *PadArray) Copy() Node {
	clone, err := NewPadArray(*a)
	if err != nil {
		// The source array was already validated.
		panic(err)
	}
	a.copyInto(clone)
	return clone
}

// RectLine builds a rectangle outline node from two opposite corners,
// grown by the per-axis offset on every side.
func RectLine(c1, c2, offset geometry.Vec, attrs DrawAttrs) *Rect {
	r := geometry.NewRect(c1, c2)
	r.Min = r.Min.Sub(offset)
	r.Max = r.Max.Add(offset)
	n := NewRect(r.Min, r.Max, attrs.Layer)
	n.Width = attrs.Width
	n.Style = attrs.style()
	n.Filled = attrs.Filled
	return n
}
