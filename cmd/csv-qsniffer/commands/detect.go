package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oleg578/csvqsniffer"
	"github.com/oleg578/csvqsniffer/internal/config"
	"github.com/oleg578/csvqsniffer/internal/csvlog"
)

// Version is the build version printed by -V/--version. main.go overwrites
// it with the linker-injected build version before building the command.
var Version = "dev"

// DetectOptions collects the flag values a detect run needs. NewDetectCommand
// fills one from its cobra flags; runDetect then resolves MaxRows/MinRows
// through the viper-backed config.Load.
type DetectOptions struct {
	File       string
	Format     OutputFormat
	Verbose    bool
	ConfigFile string
	MaxRows    int
	MinRows    int
}

// NewDetectCommand builds the default (and only) cobra subcommand: read a
// file or stdin, sniff its dialect, print it in the requested format.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}
	var formatFlag string
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "csv-qsniffer [FILE]",
		Short: "Detect the dialect of a CSV file by table uniformity",
		Long: "csv-qsniffer reads a CSV sample from FILE (or stdin when FILE is '-' " +
			"or omitted) and reports its delimiter, quote character, escape " +
			"character, and header presence without being told any of them in advance.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return exitError{code: 2, err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), "csv-qsniffer version "+Version)
				return nil
			}
			format, err := ParseOutputFormat(formatFlag)
			if err != nil {
				return exitError{code: 2, err: err}
			}
			opts.Format = format
			if len(args) == 1 {
				opts.File = args[0]
			} else {
				opts.File = "-"
			}
			return runDetect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(FormatHuman), "output format: human, json, csv")
	cmd.Flags().IntVar(&opts.MaxRows, "max-rows", 0, "maximum rows to analyze per candidate (default 1000)")
	cmd.Flags().IntVar(&opts.MinRows, "min-rows", 0, "minimum rows required to detect a dialect (default 2)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print extra diagnostics to stderr and extra fields in human output")
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to a .csvqsniffer.yaml config file")
	// Registered explicitly rather than left to cobra.Command.Version: since
	// --verbose already claims -v, cobra's InitDefaultVersionFlag would add
	// --version with no shorthand at all instead of falling back to another
	// letter, silently dropping -V.
	cmd.Flags().BoolVarP(&showVersion, "version", "V", false, "print version and exit")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitError{code: 2, err: err}
	})

	return cmd
}

func runDetect(cmd *cobra.Command, opts *DetectOptions) error {
	cfg, err := config.Load(opts.ConfigFile, opts.MaxRows, opts.MinRows)
	if err != nil {
		return exitError{code: 2, err: fmt.Errorf("loading config: %w", err)}
	}

	log := csvlog.New(opts.Verbose)
	entry := csvlog.WithRequestID(log)
	entry.WithFields(logrus.Fields{
		"file":     opts.File,
		"max_rows": cfg.MaxRows,
		"min_rows": cfg.MinRows,
	}).Debug("starting detection")

	src, closer, err := openSource(opts.File)
	if err != nil {
		return exitError{code: 2, err: err}
	}
	if closer != nil {
		defer closer.Close()
	}

	// Peek before handing the reader to Sniff: a pipe with nothing behind it
	// would otherwise block Sniff on a read-to-EOF that never resolves into
	// anything useful. This mirrors the reference CLI's empty-input check.
	buffered := bufio.NewReader(src)
	if empty, err := isEffectivelyEmpty(buffered); err != nil {
		return exitError{code: 2, err: fmt.Errorf("reading input: %w", err)}
	} else if empty {
		return exitError{code: 1, err: fmt.Errorf("no input data provided")}
	}

	sniffer := &csvqsniffer.Sniffer{MaxRows: cfg.MaxRows, MinRows: cfg.MinRows}
	dialect, err := sniffer.Sniff(buffered)
	if err != nil {
		entry.WithError(err).Warn("detection failed")
		if se, ok := err.(*csvqsniffer.SniffError); ok && se.Kind == csvqsniffer.KindIoError {
			return exitError{code: 2, err: err}
		}
		return exitError{code: 1, err: err}
	}

	entry.WithField("dialect", dialect.String()).Debug("detection succeeded")

	if err := Render(cmd.OutOrStdout(), dialect, opts.Format, opts.Verbose); err != nil {
		return exitError{code: 2, err: err}
	}
	return nil
}

// isEffectivelyEmpty peeks at the start of r without consuming it, reporting
// whether everything visible so far is whitespace. It only inspects r's
// buffer capacity worth of bytes, so input that is whitespace for that long
// and then has content is treated as empty; that trade favors not blocking
// on an open pipe over perfect accuracy for pathological inputs.
func isEffectivelyEmpty(r *bufio.Reader) (bool, error) {
	peek, err := r.Peek(r.Size())
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return false, err
	}
	return len(bytes.TrimSpace(peek)) == 0, nil
}

func openSource(file string) (io.Reader, io.Closer, error) {
	if file == "" || file == "-" {
		return os.Stdin, nil, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", file, err)
	}
	return f, f, nil
}

// exitError carries the process exit code that spec section 6 assigns to a
// failure mode: 1 for a detection failure, 2 for a usage or I/O error.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

// ExitCode extracts the process exit code from an error returned by
// NewDetectCommand's RunE, defaulting to 1 for anything not tagged.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee exitError
	if ok := asExitError(err, &ee); ok {
		return ee.code
	}
	return 1
}

func asExitError(err error, target *exitError) bool {
	for err != nil {
		if ee, ok := err.(exitError); ok {
			*target = ee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
