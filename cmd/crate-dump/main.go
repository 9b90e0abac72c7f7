// Command crate-dump prints the contents of Serato crates, the track
// database, or a whole library directory.
//
// Usage:
//
//	crate-dump [flags] <file.crate | "database V2" | _Serato_ dir>
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/natefinch/atomic"
	"github.com/prometheus/common/version"
	flag "github.com/spf13/pflag"

	"github.com/simonhull/cratekit"
)

func init() {
	version.Version = cratekit.Version
}

func main() {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:], env))
}

// run is the testable entry point. Returns the exit code.
func run(out, errOut io.Writer, args []string, env map[string]string) int {
	flagSet := flag.NewFlagSet("crate-dump", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	configFile := flagSet.String("config", "", "Config file (JSON with comments) [default: $XDG_CONFIG_HOME/crate-dump/config.json]")
	outPath := flagSet.StringP("out", "o", "", "Write output to this file instead of stdout")
	jsonOut := flagSet.Bool("json", false, "Print JSON instead of text")
	strict := flagSet.Bool("strict", false, "Treat warnings as errors")
	verbose := flagSet.BoolP("verbose", "v", false, "Log debug messages to stderr")
	dropUnknown := flagSet.Bool("drop-unknown", false, "Discard database fields without a decoder")
	rawFields := flagSet.StringArray("raw-field", nil, "Keep this field tag undecoded (repeatable)")
	showVersion := flagSet.Bool("version", false, "Print version information")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.Print("crate-dump"))
		return 0
	}

	if flagSet.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: crate-dump [flags] <path>")
		flagSet.PrintDefaults()
		return 2
	}

	path := *configFile
	if path == "" {
		path = configPath(env)
	}
	cfg, err := loadConfig(path, *configFile != "")
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	// Flags win over the config file.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "json":
			cfg.JSON = *jsonOut
		case "strict":
			cfg.Strict = *strict
		case "verbose":
			cfg.Verbose = *verbose
		case "drop-unknown":
			cfg.DropUnknown = *dropUnknown
		case "raw-field":
			cfg.RawFields = *rawFields
		}
	})
	for _, tag := range cfg.RawFields {
		if !cratekit.Tag(tag).Valid() {
			fmt.Fprintf(errOut, "error: --raw-field %q is not a 4-byte tag\n", tag)
			return 2
		}
	}

	logger := newLogger(errOut, cfg.Verbose)
	level.Debug(logger).Log("msg", "starting crate-dump", "version", version.Info())
	opts := append(cfg.options(), cratekit.WithLogger(logger))

	doc, err := load(flagSet.Arg(0), opts)
	if err != nil {
		level.Error(logger).Log("msg", "load failed", "path", flagSet.Arg(0), "err", err)
		return 1
	}

	var buf bytes.Buffer
	if cfg.JSON {
		err = writeJSON(&buf, doc)
	} else {
		err = writeText(&buf, doc)
	}
	if err != nil {
		level.Error(logger).Log("msg", "format output", "err", err)
		return 1
	}

	if *outPath == "" {
		_, err = out.Write(buf.Bytes())
	} else {
		err = atomic.WriteFile(*outPath, &buf)
	}
	if err != nil {
		level.Error(logger).Log("msg", "write output", "path", *outPath, "err", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowWarn())
}

// load reads a library directory, or a single file whose kind is detected
// from its header.
func load(path string, opts []cratekit.Option) (any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return cratekit.OpenLibrary(path, opts...)
	}

	format, err := detect(path, info.Size())
	if err != nil {
		return nil, err
	}
	switch format {
	case cratekit.FormatCrate:
		return cratekit.OpenCrate(path, opts...)
	default:
		return cratekit.OpenDatabase(path, opts...)
	}
}

func detect(path string, size int64) (cratekit.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return cratekit.FormatUnknown, err
	}
	defer f.Close()
	return cratekit.DetectFormat(f, size, path)
}

func writeJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
