// Command syncalign-cli is a demo embedder: it decodes two WAV files,
// runs one alignment method, and prints the result. It exists to
// exercise the public API end-to-end; production embedders are
// expected to use the C ABI (package capi) or link the Go API
// directly.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	syncalign "github.com/aulei-sync/syncalign"
	"github.com/aulei-sync/syncalign/config"
	"github.com/aulei-sync/syncalign/internal/wavfixture"
)

var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	Debug   bool   `short:"d" help:"Enable debug logging"`
	Method  string `short:"m" default:"energy" enum:"flux,chroma,energy,mfcc,hybrid" help:"Alignment method"`
	Profile string `short:"p" default:"balanced" enum:"fast,accurate,balanced,highquality,lowresource" help:"Config profile"`
	Ref     string `arg:"" name:"ref" help:"Reference WAV file" type:"existingfile"`
	Target  string `arg:"" name:"target" help:"Target WAV file" type:"existingfile"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("syncalign-cli"),
		kong.Description("Demo embedder for the syncalign alignment core"),
		kong.UsageOnError(),
	)

	if cli.Version {
		fmt.Println(syncalign.BuildInfo())
		os.Exit(0)
	}

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Level: charmlog.InfoLevel})
	if cli.Debug {
		logger.SetLevel(charmlog.DebugLevel)
	}

	refData, err := os.ReadFile(cli.Ref)
	if err != nil {
		logger.Fatal("reading reference file", "err", err)
	}
	tgtData, err := os.ReadFile(cli.Target)
	if err != nil {
		logger.Fatal("reading target file", "err", err)
	}

	ref, err := wavfixture.Read(refData)
	if err != nil {
		logger.Fatal("decoding reference WAV", "err", err)
	}
	tgt, err := wavfixture.Read(tgtData)
	if err != nil {
		logger.Fatal("decoding target WAV", "err", err)
	}

	cfg := profileConfig(cli.Profile)
	method := methodFromName(cli.Method)

	logger.Debug("running alignment", "method", cli.Method, "ref_samples", ref.Len(), "target_samples", tgt.Len())
	result := syncalign.Align(ref, tgt, method, cfg)

	if result.Error != syncalign.Success {
		logger.Error("alignment failed", "error", syncalign.ErrorDescription(result.Error), "method", result.Method)
		os.Exit(1)
	}

	fmt.Printf("method:              %s\n", result.Method)
	fmt.Printf("offset_samples:      %d\n", result.OffsetSamples)
	fmt.Printf("confidence:          %.3f\n", result.Confidence)
	fmt.Printf("peak_correlation:    %.6f\n", result.PeakCorrelation)
	fmt.Printf("secondary_peak_ratio:%.3f\n", result.SecondaryPeakRatio)
	fmt.Printf("snr_estimate_db:     %.2f\n", result.SNREstimate)
	fmt.Printf("noise_floor_db:      %.2f\n", result.NoiseFloorDB)
}

func methodFromName(name string) syncalign.Method {
	switch name {
	case "flux":
		return syncalign.SpectralFlux
	case "chroma":
		return syncalign.Chroma
	case "mfcc":
		return syncalign.MFCC
	case "hybrid":
		return syncalign.Hybrid
	default:
		return syncalign.Energy
	}
}

func profileConfig(name string) syncalign.Config {
	switch name {
	case "fast":
		return config.WithProfile(config.Fast)
	case "accurate":
		return config.WithProfile(config.Accurate)
	case "highquality":
		return config.WithProfile(config.HighQuality)
	case "lowresource":
		return config.WithProfile(config.LowResource)
	default:
		return config.WithProfile(config.Balanced)
	}
}
