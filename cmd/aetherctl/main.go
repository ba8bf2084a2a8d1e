// Command aetherctl drives the config core against a payload file from the
// command line: "process" runs the full validate-apply-verify pipeline and
// prints the resulting record status; "describe-schema" dumps the bound
// default schema table for operator inspection. It plays the role the
// firmware main or an aggregator's message-arrival callback plays in
// production — an external driver of the core, never part of it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/danmuck/aethercfg/internal/appconfig"
	"github.com/danmuck/aethercfg/internal/cfgerr"
	"github.com/danmuck/aethercfg/internal/logging"
	"github.com/danmuck/aethercfg/internal/orchestrate"
	"github.com/danmuck/aethercfg/internal/payload"
	"github.com/danmuck/aethercfg/internal/record"
	"github.com/danmuck/aethercfg/internal/schema"
	"github.com/danmuck/aethercfg/internal/verify"
)

func main() {
	logging.ConfigureRuntime()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "process":
		err = runProcess(os.Args[2:])
	case "describe-schema":
		err = runDescribeSchema(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logging.Logger.Error().Err(err).Msg("aetherctl failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: aetherctl <process|describe-schema> [flags]")
}

func runProcess(args []string) error {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	mode := fs.String("mode", "", "payload mode: file|message (defaults to the config's default_mode)")
	input := fs.String("input", "", "path to the payload (tag-tree text for file mode, raw bytes for message mode)")
	configPath := fs.String("config", "", "optional aetherctl TOML settings file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("process: --input is required")
	}

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.LogLevel)
	resolvedMode := *mode
	if resolvedMode == "" {
		resolvedMode = cfg.DefaultMode
	}

	runID := uuid.New().String()
	log := logging.Logger.With().Str("run_id", runID).Logger()
	sink := logging.Sink{}

	// Loading failures surface through the same sink as core errors, in
	// the same packed-code vocabulary, without ever constructing an
	// orchestrator.
	buf, ioCode, err := payload.Read(*input, payload.DefaultMaxSize)
	if err != nil {
		ioErrs := cfgerr.NewBuffer(cfg.ErrorBufferCapacity)
		ioErrs.Add(ioCode)
		ioErrs.Emit(sink, "load error: ")
		return fmt.Errorf("process: %w", err)
	}

	table := schema.Default()
	rules := verify.DefaultRules()
	rec := record.New()

	switch resolvedMode {
	case "file":
		orch := orchestrate.NewFile(table, rules, sink)
		procErr := orch.Process(string(buf), rec)
		return reportResult(log, rec, procErr)

	case "message":
		orch := orchestrate.NewMessage(table, rules, sink)
		procErr := orch.Process(buf, rec)
		return reportResult(log, rec, procErr)

	default:
		return fmt.Errorf("process: unknown mode %q (want file|message)", resolvedMode)
	}
}

func reportResult(log zerolog.Logger, rec *record.Record, procErr error) error {
	if procErr != nil {
		log.Warn().Str("status", rec.Status.String()).Msg("processing failed, record reset to defaults")
		return nil
	}
	log.Info().Str("status", rec.Status.String()).Str("device_name", rec.DeviceName).Msg("processing succeeded")
	return nil
}

func runDescribeSchema(args []string) error {
	fs := flag.NewFlagSet("describe-schema", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries := schema.Describe(schema.Default())
	out := make([]describeYAML, 0, len(entries))
	for _, e := range entries {
		y := describeYAML{
			ID:        e.ID,
			Name:      e.Name,
			TagPath:   e.TagPath,
			Necessity: e.Necessity,
		}
		if e.HasBits {
			pos, width := e.BitPos, e.BitWidth
			y.BitPos = &pos
			y.BitWidth = &width
		}
		out = append(out, y)
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(out)
}

// describeYAML carries the yaml struct tags describe-schema's output uses;
// kept at the cmd layer so internal/schema never needs a yaml import.
type describeYAML struct {
	ID        uint32  `yaml:"id"`
	Name      string  `yaml:"name"`
	TagPath   string  `yaml:"tag_path,omitempty"`
	BitPos    *uint16 `yaml:"bit_pos,omitempty"`
	BitWidth  *uint8  `yaml:"bit_width,omitempty"`
	Necessity string  `yaml:"necessity"`
}
