// Package modsynth plays a small fixed rack of DSP nodes: white noise shaped
// by a TriSaw LFO through an amplifier into a stereo plate reverb.
package modsynth

import (
	"math"
	"sync/atomic"

	"github.com/cbegin/modsynth-go/internal/dspmath"
	"github.com/cbegin/modsynth-go/internal/node"
	"github.com/cbegin/modsynth-go/internal/reverb"
	"github.com/cbegin/modsynth-go/internal/rng"
	"github.com/cbegin/modsynth-go/internal/trigger"
)

// InitTables builds the shared lookup tables. Calling it before opening an
// audio stream keeps the first block from paying for it.
func InitTables() {
	dspmath.InitTables()
	rng.WhiteNoiseTable()
}

type NodeID int

const (
	NodeNoise NodeID = iota
	NodeLfo
	NodeAmp
	NodeReverb
	nodeCount
)

var nodeNames = [nodeCount]string{"noise", "tslfo", "amp", "plate"}

func (id NodeID) String() string {
	if id < 0 || id >= nodeCount {
		return "?"
	}
	return nodeNames[id]
}

const DefaultBlockSize = 128

// RackConfig holds the initial, plain (denormalized) settings of the rack.
type RackConfig struct {
	NoiseSeed uint64
	NoiseMode int64
	NoiseGain float32

	LfoTimeMs float32
	LfoRev    float32

	NegAtt  int64
	AmpGain float32
	Reverb  reverb.Params
	Mix     float32
	Volume  float32
}

func DefaultRackConfig() RackConfig {
	return RackConfig{
		NoiseSeed: 1,
		NoiseMode: node.NoiseBipolar,
		NoiseGain: 0.5,
		LfoTimeMs: 800,
		LfoRev:    0.1,
		NegAtt:    node.NegAttAllow,
		AmpGain:   1,
		Reverb:    reverb.DefaultParams(),
		Mix:       0.35,
		Volume:    0.8,
	}
}

type atomicFloat struct {
	bits atomic.Uint32
}

func (f *atomicFloat) Load() float32   { return math.Float32frombits(f.bits.Load()) }
func (f *atomicFloat) Store(v float32) { f.bits.Store(math.Float32bits(v)) }

// RackControls are the settings that may change while audio runs. Any
// goroutine may call the setters; the rack picks changes up at the start of
// the next block.
type RackControls struct {
	lfoTimeMs atomicFloat
	lfoRev    atomicFloat
	decay     atomicFloat
	size      atomicFloat
	preDelay  atomicFloat
	mix       atomicFloat
	volume    atomicFloat
	negAtt    atomic.Int64
	reset     atomic.Bool
}

func (c *RackControls) init(cfg RackConfig) {
	c.SetLfoTimeMs(cfg.LfoTimeMs)
	c.SetLfoRev(cfg.LfoRev)
	c.SetDecay(cfg.Reverb.Decay)
	c.SetSize(cfg.Reverb.TimeScale)
	c.SetPreDelayMs(cfg.Reverb.PreDelayMs)
	c.SetMix(cfg.Mix)
	c.SetVolume(cfg.Volume)
	c.SetNegAtt(cfg.NegAtt)
}

func (c *RackControls) SetLfoTimeMs(ms float32) { c.lfoTimeMs.Store(ms) }
func (c *RackControls) LfoTimeMs() float32      { return c.lfoTimeMs.Load() }

func (c *RackControls) SetLfoRev(rev float32) { c.lfoRev.Store(dspmath.Clamp(rev, 0, 1)) }
func (c *RackControls) LfoRev() float32       { return c.lfoRev.Load() }

func (c *RackControls) SetDecay(v float32) { c.decay.Store(dspmath.Clamp(v, 0, 1)) }
func (c *RackControls) Decay() float32     { return c.decay.Load() }

func (c *RackControls) SetSize(v float32) {
	c.size.Store(dspmath.Clamp(v, reverb.MinTimeScale, reverb.MaxTimeScale))
}
func (c *RackControls) Size() float32 { return c.size.Load() }

func (c *RackControls) SetPreDelayMs(ms float32) {
	c.preDelay.Store(dspmath.Clamp(ms, 0, reverb.MaxPreDelayMs))
}
func (c *RackControls) PreDelayMs() float32 { return c.preDelay.Load() }

func (c *RackControls) SetMix(v float32) { c.mix.Store(dspmath.Clamp(v, 0, 1)) }
func (c *RackControls) Mix() float32     { return c.mix.Load() }

func (c *RackControls) SetVolume(v float32) {
	if v < 0 {
		v = 0
	}
	c.volume.Store(v)
}
func (c *RackControls) Volume() float32 { return c.volume.Load() }

func (c *RackControls) SetNegAtt(v int64) { c.negAtt.Store(v) }
func (c *RackControls) NegAtt() int64     { return c.negAtt.Load() }

// RequestReset silences every node before the next block.
func (c *RackControls) RequestReset() { c.reset.Store(true) }

type describedNode interface {
	node.Node
	node.Info
}

// slot owns the buffers of one node. Unpatched inputs are filled with the
// normalized constant from values before every block.
type slot struct {
	node    describedNode
	specs   []node.ParamSpec
	values  []float32
	patched []bool
	inputs  []node.ProcBuf
	outputs []node.ProcBuf
	atoms   []node.Atom
	leds    node.LedValues
}

func newSlot(n describedNode, blockSize int) *slot {
	s := &slot{
		node:    n,
		specs:   n.Inputs(),
		values:  node.DefaultInputs(n.Inputs()),
		patched: make([]bool, len(n.Inputs())),
		inputs:  make([]node.ProcBuf, len(n.Inputs())),
		outputs: make([]node.ProcBuf, n.Outputs()),
		atoms:   node.DefaultAtoms(n.Atoms()),
		leds:    node.NewLedValues(n.Outputs()),
	}
	for i := range s.inputs {
		s.inputs[i] = make(node.ProcBuf, blockSize)
	}
	for i := range s.outputs {
		s.outputs[i] = make(node.ProcBuf, blockSize)
	}
	return s
}

// set stores a plain value for an unpatched input.
func (s *slot) set(input int, plain float32) {
	s.values[input] = s.specs[input].Norm(plain)
}

func (s *slot) patch(input int, from *slot, output int) {
	s.inputs[input] = from.outputs[output]
	s.patched[input] = true
}

func (s *slot) fill(nframes int) {
	for i, buf := range s.inputs {
		if !s.patched[i] {
			buf[:nframes].Fill(s.values[i])
		}
	}
}

// Rack renders the fixed patch. Process must only be called from one
// goroutine; everything else goes through Controls.
type Rack struct {
	sampleRate int
	blockSize  int
	cfg        RackConfig
	controls   RackControls

	slots [nodeCount]*slot
	lfo   *node.TsLfo
	ectx  node.ExecContext

	peak   trigger.Trigger
	onPeak func()
}

func NewRack(sampleRate, blockSize int, cfg RackConfig) *Rack {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	r := &Rack{
		sampleRate: sampleRate,
		blockSize:  blockSize,
		cfg:        cfg,
		lfo:        node.NewTsLfo(),
	}
	r.controls.init(cfg)

	noise := newSlot(node.NewNoise(cfg.NoiseSeed), blockSize)
	noise.atoms[node.NoiseMode] = node.Setting(cfg.NoiseMode)
	noise.set(node.NoiseGain, cfg.NoiseGain)

	lfo := newSlot(r.lfo, blockSize)

	amp := newSlot(node.NewAmp(), blockSize)
	amp.set(node.AmpGain, cfg.AmpGain)
	amp.patch(node.AmpInp, noise, 0)
	amp.patch(node.AmpAtt, lfo, 0)

	plate := newSlot(node.NewPlateReverb(), blockSize)
	plate.patch(node.PlateInL, amp, 0)
	plate.patch(node.PlateInR, amp, 0)
	p := cfg.Reverb
	plate.set(node.PlateInputLPF, p.InputHighCutHz)
	plate.set(node.PlateInputHPF, p.InputLowCutHz)
	plate.set(node.PlateDiffusion, p.Diffusion)
	plate.set(node.PlateDiffusionMix, p.InputDiffusionMix)
	plate.set(node.PlateModSpeed, p.ModSpeed)
	plate.set(node.PlateModShape, p.ModShape)
	plate.set(node.PlateModDepth, p.ModDepth)
	plate.set(node.PlateReverbLPF, p.ReverbHighCutHz)
	plate.set(node.PlateReverbHPF, p.ReverbLowCutHz)

	r.slots = [nodeCount]*slot{NodeNoise: noise, NodeLfo: lfo, NodeAmp: amp, NodeReverb: plate}
	for _, s := range r.slots {
		s.node.SetSampleRate(float32(sampleRate))
	}
	r.applyControls()
	return r
}

func (r *Rack) SampleRate() int { return r.sampleRate }

// Config returns the settings the rack was built with.
func (r *Rack) Config() RackConfig { return r.cfg }

func (r *Rack) BlockSize() int { return r.blockSize }

func (r *Rack) Controls() *RackControls { return &r.controls }

// Leds returns the live output monitors of a node. They are safe to read
// from any goroutine.
func (r *Rack) Leds(id NodeID) node.LedValues {
	return r.slots[id].leds
}

// OnLfoPeak installs a callback run on the audio goroutine whenever the LFO
// crosses into the top of its swing. Set it before audio starts.
func (r *Rack) OnLfoPeak(fn func()) { r.onPeak = fn }

// LfoGraph returns a preview of the LFO waveform for the current controls.
// It may be called from any goroutine.
func (r *Rack) LfoGraph() (node.GraphFunc, node.GraphAtomData) {
	specs := r.lfo.Inputs()
	s := &node.Snapshot{Specs: specs, Values: node.DefaultInputs(specs)}
	s.Values[node.TsLfoTime] = specs[node.TsLfoTime].Norm(r.controls.LfoTimeMs())
	s.Values[node.TsLfoRev] = specs[node.TsLfoRev].Norm(r.controls.LfoRev())
	return r.lfo.GraphFunc(), s
}

// Reset silences every node immediately. Only call it while no audio
// goroutine is running; use Controls().RequestReset otherwise.
func (r *Rack) Reset() {
	for _, s := range r.slots {
		s.node.Reset()
	}
	r.peak.Reset()
}

func (r *Rack) applyControls() {
	c := &r.controls
	if c.reset.Swap(false) {
		r.Reset()
	}
	lfo := r.slots[NodeLfo]
	lfo.set(node.TsLfoTime, c.LfoTimeMs())
	lfo.set(node.TsLfoRev, c.LfoRev())

	r.slots[NodeAmp].atoms[node.AmpNegAtt] = node.Setting(c.NegAtt())

	plate := r.slots[NodeReverb]
	plate.set(node.PlateDecay, c.Decay())
	plate.set(node.PlateSize, c.Size())
	plate.set(node.PlatePreDelay, c.PreDelayMs())
	plate.set(node.PlateMix, c.Mix())
}

func (r *Rack) processBlock(nframes int) {
	r.applyControls()
	ctx := node.Block(nframes)
	for _, s := range r.slots {
		s.fill(nframes)
		s.node.Process(ctx, &r.ectx, s.atoms, s.inputs, s.outputs, s.leds)
	}
	r.ectx.Block++

	if r.onPeak != nil {
		out := r.slots[NodeLfo].outputs[0]
		for f := 0; f < nframes; f++ {
			if r.peak.Check(out.Read(f)) {
				r.onPeak()
			}
		}
	}
}

// Process renders len(dst)/2 interleaved stereo frames.
func (r *Rack) Process(dst []float32) {
	frames := len(dst) / 2
	plate := r.slots[NodeReverb]
	outL := plate.outputs[node.PlateOutL]
	outR := plate.outputs[node.PlateOutR]

	for off := 0; off < frames; {
		n := frames - off
		if n > r.blockSize {
			n = r.blockSize
		}
		r.processBlock(n)
		vol := r.controls.Volume()
		for f := 0; f < n; f++ {
			dst[(off+f)*2] = outL[f] * vol
			dst[(off+f)*2+1] = outR[f] * vol
		}
		off += n
	}
}

// Blocks returns how many blocks have been processed. Like Process it
// belongs to the audio goroutine.
func (r *Rack) Blocks() uint64 { return r.ectx.Block }
