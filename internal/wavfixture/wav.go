// Package wavfixture decodes/encodes 16-bit PCM WAV files for test
// fixtures and the demo CLI. Container decoding is out of the core's
// scope; this package is the embedder-side
// convenience the core itself never depends on.
package wavfixture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/aulei-sync/syncalign/model"
)

// Header holds metadata extracted from a WAV file.
type Header struct {
	SampleRate    int
	NumChannels   int
	BitsPerSample int
}

// Read parses a 16-bit PCM WAV file from raw bytes into a mono
// AudioBuffer, normalized to [-1.0, +1.0]. Stereo inputs are mixed
// down to mono by averaging left and right channels.
func Read(data []byte) (model.AudioBuffer, error) {
	if len(data) < 12 {
		return model.AudioBuffer{}, errors.New("wavfixture: file too short")
	}
	if string(data[0:4]) != "RIFF" {
		return model.AudioBuffer{}, errors.New("wavfixture: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return model.AudioBuffer{}, errors.New("wavfixture: missing WAVE identifier")
	}

	var header *Header
	var pcmData []byte

	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		chunkStart := pos + 8

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return model.AudioBuffer{}, errors.New("wavfixture: fmt chunk too small")
			}
			if chunkStart+16 > len(data) {
				return model.AudioBuffer{}, errors.New("wavfixture: fmt chunk truncated")
			}
			audioFormat := binary.LittleEndian.Uint16(data[chunkStart : chunkStart+2])
			if audioFormat != 1 {
				return model.AudioBuffer{}, fmt.Errorf("wavfixture: unsupported audio format %d (only PCM/1 supported)", audioFormat)
			}
			header = &Header{
				NumChannels:   int(binary.LittleEndian.Uint16(data[chunkStart+2 : chunkStart+4])),
				SampleRate:    int(binary.LittleEndian.Uint32(data[chunkStart+4 : chunkStart+8])),
				BitsPerSample: int(binary.LittleEndian.Uint16(data[chunkStart+14 : chunkStart+16])),
			}
			if header.BitsPerSample != 16 {
				return model.AudioBuffer{}, fmt.Errorf("wavfixture: unsupported bits per sample %d (only 16 supported)", header.BitsPerSample)
			}

		case "data":
			end := chunkStart + chunkSize
			if end > len(data) {
				end = len(data) // allow truncated data chunks
			}
			pcmData = data[chunkStart:end]
		}

		pos = chunkStart + chunkSize
		if chunkSize%2 != 0 {
			pos++ // padding byte
		}
	}

	if header == nil {
		return model.AudioBuffer{}, errors.New("wavfixture: no fmt chunk found")
	}
	if pcmData == nil {
		return model.AudioBuffer{}, errors.New("wavfixture: no data chunk found")
	}

	numSamples := len(pcmData) / 2
	raw := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		s := int16(binary.LittleEndian.Uint16(pcmData[i*2 : i*2+2]))
		raw[i] = float32(s) / 32768.0
	}

	if header.NumChannels == 2 {
		monoLen := numSamples / 2
		mono := make([]float32, monoLen)
		for i := 0; i < monoLen; i++ {
			mono[i] = (raw[i*2] + raw[i*2+1]) / 2.0
		}
		return model.AudioBuffer{Samples: mono, SampleRate: header.SampleRate}, nil
	}

	return model.AudioBuffer{Samples: raw, SampleRate: header.SampleRate}, nil
}

// Write encodes a mono AudioBuffer (samples in [-1.0, +1.0]) as a
// 16-bit PCM WAV file.
func Write(buf model.AudioBuffer) []byte {
	numSamples := len(buf.Samples)
	dataSize := numSamples * 2
	fileSize := 36 + dataSize

	out := &bytes.Buffer{}
	out.Grow(44 + dataSize)

	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(fileSize))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	binary.Write(out, binary.LittleEndian, uint32(16))
	binary.Write(out, binary.LittleEndian, uint16(1))
	binary.Write(out, binary.LittleEndian, uint16(1))
	binary.Write(out, binary.LittleEndian, uint32(buf.SampleRate))
	binary.Write(out, binary.LittleEndian, uint32(buf.SampleRate*2))
	binary.Write(out, binary.LittleEndian, uint16(2))
	binary.Write(out, binary.LittleEndian, uint16(16))

	out.WriteString("data")
	binary.Write(out, binary.LittleEndian, uint32(dataSize))

	for _, s := range buf.Samples {
		v := float64(s)
		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}
		var i16 int16
		if v >= 0 {
			i16 = int16(math.Round(v * 32767))
		} else {
			i16 = int16(math.Round(v * 32768))
		}
		binary.Write(out, binary.LittleEndian, i16)
	}

	return out.Bytes()
}
