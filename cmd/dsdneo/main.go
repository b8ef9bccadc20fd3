// Command dsdneo is the entry point for the digital voice/trunking radio
// decoder: it loads configuration, builds the input ring and the
// demod/trunking engine, and runs the engine until interrupted. It opens
// no sample source, so nothing writes to the input ring.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	dsdneo "github.com/arancormonk/dsd-neo-go/src"
	"github.com/spf13/pflag"
)

func main() {
	var configFile = pflag.StringP("config-file", "c", "", "YAML configuration file name.")
	var inputDevice = pflag.StringP("input-device", "i", "", "RTL-SDR device path or index (overrides config).")
	var mode = pflag.StringP("mode", "m", "", "Demod mode: fm, qpsk, raw (overrides config).")
	var trunking = pflag.BoolP("trunking", "t", false, "Enable trunking follow mode.")
	var ccCacheFile = pflag.StringP("cc-cache", "C", "", "Control-channel candidate cache file (overrides config).")
	var listDevices = pflag.BoolP("list-devices", "l", false, "List discovered RTL-SDR devices and exit.")
	var debug = pflag.BoolP("debug", "d", false, "Enable debug-level logging.")
	var telemetryAddr = pflag.StringP("telemetry-addr", "T", "", "Listen address for websocket telemetry (empty disables).")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dsdneo - a software digital voice and trunking radio decoder.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dsdneo [options]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *debug {
		dsdneo.SetLogLevel(log.DebugLevel)
	}

	if *listDevices {
		devices, err := dsdneo.DiscoverRTLSDRDevices()
		if err != nil {
			dsdneo.Logger.Error("device discovery failed", "error", err)
			os.Exit(1)
		}
		for _, d := range devices {
			fmt.Println(d)
		}
		os.Exit(0)
	}

	cfg := dsdneo.DefaultConfig()
	if *configFile != "" {
		loaded, err := dsdneo.LoadConfigFile(*configFile)
		if err != nil {
			dsdneo.Logger.Error("failed to load config file", "path", *configFile, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *inputDevice != "" {
		cfg.Input.Device = *inputDevice
	}
	if *mode != "" {
		cfg.Demod.Mode = *mode
	}
	if *trunking {
		cfg.Trunking.Enabled = true
	}
	if *ccCacheFile != "" {
		cfg.Trunking.CacheFile = *ccCacheFile
	}

	ring := dsdneo.NewInputRing(1<<20, dsdneo.OverflowDrop)
	demodCfg := demodConfigFromYAML(cfg.Demod)
	demod := dsdneo.NewDemodState(demodCfg)

	// nil, nil: NewEngine fills in its default sync template set and the
	// full protocol decoder table (DefaultSyncTemplates/DefaultDecoderHandles).
	engine := dsdneo.NewEngine(cfg, ring, demod, nil, nil)

	if *telemetryAddr != "" {
		broadcaster := dsdneo.NewTelemetryBroadcaster()
		engine.Telemetry = broadcaster.Hook()
		go func() {
			if err := startTelemetryServer(*telemetryAddr, broadcaster); err != nil {
				dsdneo.Logger.Error("telemetry server stopped", "error", err)
			}
		}()
	}

	if cfg.Trunking.Enabled {
		if freqs, err := dsdneo.LoadCCCache(cfg.Trunking.CacheFile); err == nil {
			dsdneo.Logger.Info("loaded control-channel cache", "candidates", len(freqs))
		}
	}

	engine.Run()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	dsdneo.Logger.Info("shutting down")
	engine.Shutdown()
}

func startTelemetryServer(addr string, b *dsdneo.TelemetryBroadcaster) error {
	mux := http.NewServeMux()
	mux.Handle("/telemetry", b)
	return http.ListenAndServe(addr, mux)
}

func demodConfigFromYAML(c dsdneo.DemodYAMLConfig) dsdneo.DemodConfig {
	mode := dsdneo.ModeFM
	switch c.Mode {
	case "qpsk":
		mode = dsdneo.ModeQPSKDifferential
	case "raw":
		mode = dsdneo.ModeRaw
	}
	return dsdneo.DemodConfig{
		Mode:                 mode,
		Input:                dsdneo.InputU8IQ,
		HalfbandStages:       c.HalfbandStages,
		ResampleL:            c.ResampleL,
		ResampleM:            c.ResampleM,
		ResampleTapsPerPhase: 8,
		UseFLL:               mode != dsdneo.ModeFM,
		UseTED:               mode != dsdneo.ModeFM,
		TEDMuNom:             0.0,
		UseRRC:               mode != dsdneo.ModeFM,
		UseIQBalance:         true,
		UseDCBlock:           true,
		UseAGC:               mode == dsdneo.ModeFM,
		UseCQPSK:             c.UseCQPSK,
		SquelchThreshold:     float32(c.SquelchThreshold),
	}
}
