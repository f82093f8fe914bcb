package modsynth

import (
	"encoding/binary"
	"math"
)

// RenderSamples renders seconds of the rack offline into interleaved stereo.
// The result only depends on the arguments.
func RenderSamples(cfg RackConfig, sampleRate int, seconds float64) []float32 {
	return RenderSamplesBlock(cfg, sampleRate, DefaultBlockSize, seconds)
}

func RenderSamplesBlock(cfg RackConfig, sampleRate, blockSize int, seconds float64) []float32 {
	InitTables()
	rack := NewRack(sampleRate, blockSize, cfg)
	frames := int(float64(sampleRate) * seconds)
	if frames < 0 {
		frames = 0
	}
	out := make([]float32, frames*2)
	rack.Process(out)
	return out
}

func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3) // IEEE float
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
