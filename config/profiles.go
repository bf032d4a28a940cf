package config

import "github.com/aulei-sync/syncalign/model"

// Profile selects a base Config preset.
type Profile int

const (
	Custom Profile = iota
	Fast
	Accurate
	Balanced
	HighQuality
	LowResource
)

// WithProfile returns the Config for profile p, starting from
// DefaultConfig for Custom.
func WithProfile(p Profile) model.Config {
	cfg := DefaultConfig()
	switch p {
	case Fast:
		cfg.WindowSize = 1024
		cfg.HopSize = cfg.WindowSize / 4
		cfg.ConfidenceThreshold = 0.5
	case Accurate:
		cfg.WindowSize = 4096
		cfg.HopSize = cfg.WindowSize / 4
		cfg.ConfidenceThreshold = 0.75
	case Balanced:
		cfg.WindowSize = 2048
		cfg.HopSize = cfg.WindowSize / 4
		cfg.ConfidenceThreshold = 0.6
	case HighQuality:
		cfg.WindowSize = 8192
		cfg.HopSize = cfg.WindowSize / 4
		cfg.ConfidenceThreshold = 0.8
		cfg.NumMFCCCoeffs = 20
		cfg.NumMelFilters = 40
	case LowResource:
		cfg.WindowSize = 512
		cfg.HopSize = cfg.WindowSize / 2
		cfg.ConfidenceThreshold = 0.45
	case Custom:
		// DefaultConfig already applied.
	}
	return cfg
}

// ContentType selects a content-type overlay applied on top of a
// profile: "presets compose: withProfile(p).forContentType(c)
// applies profile first, then overlays the content-type optimization."
type ContentType int

const (
	General ContentType = iota
	Music
	Speech
	Ambient
	Broadcast
	Podcast
	MultiCam
)

// ForContentType overlays content-type tuning on top of cfg.
func ForContentType(cfg model.Config, c ContentType) model.Config {
	switch c {
	case Music:
		if cfg.WindowSize < 2048 {
			cfg.WindowSize = 2048
		}
		cfg.HopSize = cfg.WindowSize / 4
		if cfg.NoiseGateDB > -45 {
			cfg.NoiseGateDB = -45
		}
		if cfg.ConfidenceThreshold < 0.75 {
			cfg.ConfidenceThreshold = 0.75
		}
	case Speech:
		cfg.WindowSize = 1024
		cfg.HopSize = cfg.WindowSize / 4
		cfg.NoiseGateDB = -35
		if cfg.ConfidenceThreshold < 0.65 {
			cfg.ConfidenceThreshold = 0.65
		}
	case Ambient:
		cfg.WindowSize = 4096
		cfg.HopSize = cfg.WindowSize / 4
		cfg.NoiseGateDB = -55
		if cfg.ConfidenceThreshold > 0.55 {
			cfg.ConfidenceThreshold = 0.55
		}
	case Broadcast:
		cfg.WindowSize = 2048
		cfg.HopSize = cfg.WindowSize / 4
		cfg.NoiseGateDB = -40
		if cfg.ConfidenceThreshold < 0.7 {
			cfg.ConfidenceThreshold = 0.7
		}
	case Podcast:
		cfg.WindowSize = 1024
		cfg.HopSize = cfg.WindowSize / 4
		cfg.NoiseGateDB = -38
		if cfg.ConfidenceThreshold < 0.65 {
			cfg.ConfidenceThreshold = 0.65
		}
	case MultiCam:
		cfg.WindowSize = 2048
		cfg.HopSize = cfg.WindowSize / 4
		cfg.NoiseGateDB = -42
		if cfg.ConfidenceThreshold < 0.7 {
			cfg.ConfidenceThreshold = 0.7
		}
	case General:
		// no overlay.
	}
	return cfg
}

// ForUseCase maps the ABI's config_for_use_case() string names onto
// ContentType overlays applied to the Balanced profile.
func ForUseCase(name string) model.Config {
	base := WithProfile(Balanced)
	switch name {
	case "music":
		return ForContentType(base, Music)
	case "speech":
		return ForContentType(base, Speech)
	case "ambient":
		return ForContentType(base, Ambient)
	case "multicam":
		return ForContentType(base, MultiCam)
	case "broadcast":
		return ForContentType(base, Broadcast)
	default:
		return base
	}
}
