package config

import (
	"github.com/aulei-sync/syncalign/model"
	"gopkg.in/yaml.v3"
)

// document version stamped into every serialized Config; bump when the
// on-disk shape changes in a way that needs a migration.
const currentVersion = 1

// doc is the YAML-on-disk shape: a version header plus the primary
// knobs. Unrecognized keys are tolerated by yaml.v3's default decode
// behavior (they are simply ignored); missing keys keep the
// DefaultConfig values Unmarshal fills doc with before decoding.
type doc struct {
	Version               int     `yaml:"version"`
	ConfidenceThreshold    float64 `yaml:"confidence_threshold"`
	WindowSize            int     `yaml:"window_size"`
	HopSize               int     `yaml:"hop_size"`
	NoiseGateDB           float64 `yaml:"noise_gate_db"`
	MaxOffsetSamples      int64   `yaml:"max_offset_samples"`
	EnableDriftCorrection bool    `yaml:"enable_drift_correction"`
}

// Marshal serializes cfg as a versioned YAML document.
func Marshal(cfg model.Config) ([]byte, error) {
	d := doc{
		Version:               currentVersion,
		ConfidenceThreshold:    cfg.ConfidenceThreshold,
		WindowSize:            cfg.WindowSize,
		HopSize:               cfg.HopSize,
		NoiseGateDB:           cfg.NoiseGateDB,
		MaxOffsetSamples:      cfg.MaxOffsetSamples,
		EnableDriftCorrection: cfg.EnableDriftCorrection,
	}
	return yaml.Marshal(d)
}

// Unmarshal parses a serialized Config document. Unknown keys are
// ignored; missing keys default from DefaultConfig() before the
// document is decoded over them, and the result is validated with
// AutoCorrect so a hand-edited file can never produce an invalid Config.
func Unmarshal(data []byte) (model.Config, error) {
	base := DefaultConfig()
	d := doc{
		Version:               currentVersion,
		ConfidenceThreshold:    base.ConfidenceThreshold,
		WindowSize:            base.WindowSize,
		HopSize:               base.HopSize,
		NoiseGateDB:           base.NoiseGateDB,
		MaxOffsetSamples:      base.MaxOffsetSamples,
		EnableDriftCorrection: base.EnableDriftCorrection,
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return model.Config{}, err
	}

	cfg := base
	cfg.ConfidenceThreshold = d.ConfidenceThreshold
	cfg.WindowSize = d.WindowSize
	cfg.HopSize = d.HopSize
	cfg.NoiseGateDB = d.NoiseGateDB
	cfg.MaxOffsetSamples = d.MaxOffsetSamples
	cfg.EnableDriftCorrection = d.EnableDriftCorrection

	return AutoCorrect(cfg), nil
}
