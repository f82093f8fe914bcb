package reverb

// Params are the per-sample controls of the plate. The reverb reads them on
// every Process call, so a host may change any field between samples.
type Params struct {
	PreDelayMs float32
	// TimeScale stretches the tank all-passes and delays. 1 is the
	// reference plate size.
	TimeScale float32
	// Decay is the gain of the cross feedback between the two tanks.
	Decay float32

	InputLowCutHz  float32
	InputHighCutHz float32
	ReverbLowCutHz  float32
	ReverbHighCutHz float32

	// Diffusion scales the coefficient of the modulated tank all-passes.
	Diffusion float32
	// InputDiffusionMix blends the pre-delayed input (0) into the output of
	// the input diffusers (1).
	InputDiffusionMix float32

	// ModSpeed multiplies the base LFO rates, ModShape is the TriSaw rise
	// ratio and ModDepth scales the excursion.
	ModSpeed float32
	ModShape float32
	ModDepth float32
}

func DefaultParams() Params {
	return Params{
		PreDelayMs:        0,
		TimeScale:         1,
		Decay:             0.5,
		InputLowCutHz:     0,
		InputHighCutHz:    22000,
		ReverbLowCutHz:    0,
		ReverbHighCutHz:   10000,
		Diffusion:         1,
		InputDiffusionMix: 1,
		ModSpeed:          1,
		ModShape:          0.5,
		ModDepth:          0.2,
	}
}
