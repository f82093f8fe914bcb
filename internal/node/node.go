// Package node defines how a DSP node is driven by a host and contains the
// nodes of the demo rack.
//
// A host owns every buffer. It calls Process once per block with the input
// buffers already filled with normalized values, the current atoms and one
// output buffer per declared output. Nodes keep their own state between
// blocks and never allocate inside Process.
package node

// Context describes the block being processed.
type Context interface {
	NFrames() int
}

// Block is the Context hosts pass for a fixed number of frames.
type Block int

func (b Block) NFrames() int { return int(b) }

// ExecContext carries host state that outlives a single block.
type ExecContext struct {
	Block uint64
}

// ProcBuf holds one signal for the duration of a block.
type ProcBuf []float32

func (b ProcBuf) Read(frame int) float32 { return b[frame] }

func (b ProcBuf) Write(frame int, v float32) { b[frame] = v }

// Fill sets every frame to v, for constant inputs.
func (b ProcBuf) Fill(v float32) {
	for i := range b {
		b[i] = v
	}
}

type Node interface {
	Outputs() int
	SetSampleRate(sr float32)
	Reset()
	Process(ctx Context, ectx *ExecContext, atoms []Atom, inputs []ProcBuf, outputs []ProcBuf, leds LedValues)
}

// Info describes the inputs and atoms a node expects, in Process order.
type Info interface {
	Inputs() []ParamSpec
	Atoms() []EnumAtom
}

// GraphAtomData gives a GraphFunc read access to the node's current
// parameter values.
type GraphAtomData interface {
	Norm(input int) float32
	Denorm(input int) float32
	Atom(idx int) Atom
}

// GraphFunc computes one point of a preview plot. It is called with
// init set for the first point of every redraw, x runs from 0 to 1 and xn is
// the x of the next point.
type GraphFunc func(gd GraphAtomData, init bool, x, xn float32) float32

// Grapher is implemented by nodes that can draw a preview of their output.
// The returned function owns its state and never touches the live node.
type Grapher interface {
	GraphFunc() GraphFunc
}

// finish stores the last frame of every output in the LEDs.
func finish(nframes int, outputs []ProcBuf, leds LedValues) {
	if nframes == 0 {
		return
	}
	for i, out := range outputs {
		leds.Set(i, out.Read(nframes-1))
	}
}

// Snapshot serves GraphAtomData from a copy of a node's normalized inputs
// and atoms. Hosts take one per redraw.
type Snapshot struct {
	Specs  []ParamSpec
	Values []float32
	Atoms  []Atom
}

func (s *Snapshot) Norm(input int) float32 {
	if input < len(s.Values) {
		return s.Values[input]
	}
	if input < len(s.Specs) {
		return s.Specs[input].DefaultNorm()
	}
	return 0
}

func (s *Snapshot) Denorm(input int) float32 {
	if input >= len(s.Specs) {
		return s.Norm(input)
	}
	return s.Specs[input].DenormV(s.Norm(input))
}

func (s *Snapshot) Atom(idx int) Atom {
	if idx < len(s.Atoms) {
		return s.Atoms[idx]
	}
	return Setting(0)
}

// DefaultInputs returns the normalized defaults of specs.
func DefaultInputs(specs []ParamSpec) []float32 {
	out := make([]float32, len(specs))
	for i, s := range specs {
		out[i] = s.DefaultNorm()
	}
	return out
}
