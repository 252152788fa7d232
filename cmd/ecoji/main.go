// Command ecoji encodes data from standard input as emojis, or decodes it,
// and prints the result to standard output.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ecoji/core/alphabet"
	"github.com/FocuswithJustin/ecoji/core/codec"
	"github.com/FocuswithJustin/ecoji/core/digest"
	"github.com/FocuswithJustin/ecoji/core/errors"
	"github.com/FocuswithJustin/ecoji/core/selfcheck"
	"github.com/FocuswithJustin/ecoji/internal/config"
	"github.com/FocuswithJustin/ecoji/internal/logging"
	"github.com/FocuswithJustin/ecoji/internal/validation"
)

const version = "0.1.0"

// Globals are flags accepted by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Config file (default: user config dir ecoji/config.yaml)" type:"path" env:"ECOJI_CONFIG"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error (default: warn)" env:"ECOJI_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format: text or json (default: text)" env:"ECOJI_LOG_FORMAT"`
}

// CLI defines the command-line interface for ecoji.
type CLI struct {
	Globals

	Codec      CodecCmd     `cmd:"" default:"withargs" help:"Encode or decode data (default command)"`
	Selfcheck  SelfcheckCmd `cmd:"" help:"Verify the alphabet tables and the codec"`
	Digest     DigestCmd    `cmd:"" help:"Print the SHA-256 and BLAKE3 fingerprint of an alphabet"`
	ShowConfig ConfigCmd    `cmd:"" name:"config" help:"Print the effective configuration"`
	Version    VersionCmd   `cmd:"" help:"Print version information"`
}

// Env is the runtime state shared by all commands.
type Env struct {
	Context context.Context
	Config  *config.Config
	Stdin   io.Reader
	Stdout  io.Writer
}

// newEnv resolves configuration, sets up logging and assigns a run ID.
func newEnv(g *Globals, stdin io.Reader, stdout, stderr io.Writer) (*Env, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath())
	}
	if err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.LogFormat = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate has accepted both values.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logging.InitLoggerWithWriter(stderr, level, format)

	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
	logging.DebugContext(ctx, "config_loaded", "version", cfg.Version, "log_level", cfg.LogLevel, "log_format", cfg.LogFormat)

	return &Env{
		Context: ctx,
		Config:  cfg,
		Stdin:   stdin,
		Stdout:  stdout,
	}, nil
}

// CodecCmd encodes or decodes a stream.
type CodecCmd struct {
	Decode bool   `short:"d" help:"Decode data"`
	V1     bool   `name:"v1" xor:"alphabet" help:"Use version 1 (default)"`
	V2     bool   `name:"v2" xor:"alphabet" help:"Use version 2"`
	Input  string `short:"i" help:"Read from file instead of standard input" type:"path"`
	Output string `short:"o" help:"Write to file instead of standard output" type:"path"`
}

// alphabetVersion applies --v1/--v2 over the configured version.
func alphabetVersion(v1, v2 bool, configured int) int {
	switch {
	case v1:
		return 1
	case v2:
		return 2
	}
	return configured
}

func (c *CodecCmd) Run(env *Env) error {
	enc, err := codec.For(alphabetVersion(c.V1, c.V2, env.Config.Version))
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(c.Input, env.Stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(c.Output, env.Stdout)
	if err != nil {
		return err
	}

	op := "encode"
	if c.Decode {
		op = "decode"
	}
	name := enc.Alphabet().String()
	logging.CodecStart(env.Context, op, name, "input", displayName(c.Input, "stdin"), "output", displayName(c.Output, "stdout"))
	start := time.Now()

	// Output produced before an error is still delivered.
	w := bufio.NewWriter(out)
	var n int
	if c.Decode {
		d := enc.NewDecoder(in)
		var n64 int64
		n64, err = d.WriteTo(w)
		n = int(n64)
		if d.SwitchedAt() >= 0 {
			logging.AlphabetFallback(env.Context, name, d.Active().String(), d.SwitchedAt())
		}
	} else {
		n, err = enc.Encode(w, in)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = errors.NewIO("write", c.Output, ferr)
	}
	if cerr := closeOut(); cerr != nil && err == nil {
		err = errors.NewIO("close", c.Output, cerr)
	}

	if err != nil {
		logging.CodecError(env.Context, op, err, "alphabet", name)
		return fmt.Errorf("failed to %s data: %w", op, err)
	}
	logging.CodecDone(env.Context, op, name, n, time.Since(start))
	return nil
}

func displayName(path, fallback string) string {
	if path == "" || path == "-" {
		return fallback
	}
	return path
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	if err := validation.ValidatePath(path); err != nil {
		return nil, nil, fmt.Errorf("invalid input path: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewIO("open", path, err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	if err := validation.ValidatePath(path); err != nil {
		return nil, nil, fmt.Errorf("invalid output path: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.NewIO("create", path, err)
	}
	return f, f.Close, nil
}

// SelfcheckCmd runs the self-check verification plan.
type SelfcheckCmd struct {
	Plan string `help:"Run a JSON plan file instead of the built-in plan" type:"existingfile"`
	JSON bool   `help:"Output as JSON"`
}

func (c *SelfcheckCmd) Run(env *Env) error {
	plan := selfcheck.DefaultPlan()
	if c.Plan != "" {
		var err error
		if plan, err = selfcheck.LoadPlan(c.Plan); err != nil {
			return err
		}
	}

	report, err := selfcheck.NewExecutor().Execute(plan)
	if err != nil {
		return fmt.Errorf("selfcheck execution failed: %w", err)
	}
	logging.InfoContext(env.Context, "selfcheck_done", "plan_id", report.PlanID, "status", report.Status, "report_sha256", report.Hash())

	if c.JSON {
		data, err := report.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to serialize report: %w", err)
		}
		fmt.Fprintln(env.Stdout, string(data))
	} else {
		fmt.Fprintf(env.Stdout, "Self-Check Report\n")
		fmt.Fprintf(env.Stdout, "  Plan: %s\n", report.PlanID)
		fmt.Fprintf(env.Stdout, "  Status: %s\n", report.Status)
		fmt.Fprintf(env.Stdout, "  Created: %s\n", report.CreatedAt)
		fmt.Fprintln(env.Stdout)
		for _, result := range report.Results {
			status := "PASS"
			if !result.Pass {
				status = "FAIL"
			}
			fmt.Fprintf(env.Stdout, "  [%s] %s: %s\n", status, result.CheckType, result.Label)
			if !result.Pass && result.Details != nil {
				fmt.Fprintf(env.Stdout, "         %v\n", result.Details)
			}
		}
	}

	if report.Status != selfcheck.StatusPass {
		return fmt.Errorf("selfcheck failed: %d of %d checks failed", len(report.Failed()), len(report.Results))
	}
	return nil
}

// DigestCmd prints alphabet fingerprints.
type DigestCmd struct {
	V1 bool `name:"v1" xor:"alphabet" help:"Only version 1"`
	V2 bool `name:"v2" xor:"alphabet" help:"Only version 2"`
}

func (c *DigestCmd) Run(env *Env) error {
	versions := alphabet.All()
	if c.V1 || c.V2 {
		v, err := alphabet.Lookup(alphabetVersion(c.V1, c.V2, 0))
		if err != nil {
			return err
		}
		versions = []*alphabet.Version{v}
	}

	for _, v := range versions {
		h := digest.Table(v)
		fmt.Fprintf(env.Stdout, "%s  sha256:%s\n", v, h.SHA256)
		fmt.Fprintf(env.Stdout, "%s  blake3:%s\n", v, h.BLAKE3)
	}
	return nil
}

// ConfigCmd prints the configuration after file, environment and flags
// have been applied.
type ConfigCmd struct{}

func (c *ConfigCmd) Run(env *Env) error {
	data, err := env.Config.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	fmt.Fprintf(env.Stdout, "ecoji version %s\n", version)
	return nil
}

// newParser builds the kong parser. Tests pass their own writers and exit
// function.
func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("ecoji"),
		kong.Description("Encode or decode data in standard input as emojis and print results to standard output."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)
	return kong.New(cli, options...)
}

// run executes the parsed command with the given standard streams.
func run(kctx *kong.Context, cli *CLI, stdin io.Reader, stdout, stderr io.Writer) error {
	env, err := newEnv(&cli.Globals, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	return kctx.Run(env)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = run(ctx, &cli, os.Stdin, os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)
}
