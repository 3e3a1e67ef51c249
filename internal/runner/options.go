package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/lanbeacon/pkg/peerdiscovery/peertable"
	"github.com/projectdiscovery/lanbeacon/pkg/protocol"
	"github.com/projectdiscovery/lanbeacon/pkg/version"
)

var au *aurora.Aurora

// ErrUsage is returned when the positional arguments are not exactly <name> <interface>
var ErrUsage = errors.New("expected exactly two arguments: <name> <interface>")

// Options contains the configuration options for the agent
type Options struct {
	// Name is the identity announced to peers
	Name string
	// Interface is the network interface whose addresses get an announcer
	Interface string

	Dedupe       time.Duration
	DedupeSize   int
	StrictDecode bool
	ReuseAddr    bool

	Verbose bool
	Silent  bool
	NoColor bool
	JSON    bool
	Version bool
}

// Usage returns the one-line usage message
func Usage() string {
	return fmt.Sprintf("Usage: %s [flags] <name> <interface>", filepath.Base(os.Args[0]))
}

// ParseOptions parses the command line flags and the two positional arguments
func ParseOptions() (*Options, error) {
	options := &Options{}
	flagSet := goflags.NewFlagSet()
	// flags are the only configuration source, nothing is read from or written to disk
	flagSet.SetConfigFilePath(os.DevNull)

	flagSet.SetDescription(`lanbeacon announces a name on the local network and reports the peers that answer`)

	flagSet.CreateGroup("discovery", "Discovery",
		flagSet.DurationVarP(&options.Dedupe, "dedupe", "d", 0, "suppress repeated observations of the same peer within this window (0 = off)"),
		flagSet.IntVar(&options.DedupeSize, "dedupe-size", peertable.DefaultSize, "maximum number of peers remembered for dedupe"),
		flagSet.BoolVar(&options.StrictDecode, "strict-decode", false, "stop an announcer on the first malformed record it receives"),
		flagSet.BoolVar(&options.ReuseAddr, "reuse-addr", false, "set SO_REUSEADDR on the discovery port"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only discovered peers"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write output in JSONL(ines) format"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		return nil, err
	}

	au = aurora.New(aurora.WithColors(!options.NoColor))
	options.configureOutput()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s", version.UserAgent(protocol.Latest.Version))
		os.Exit(0)
	}

	if err := options.setPositional(flagSet.CommandLine.Args()); err != nil {
		return nil, err
	}

	if !options.Silent {
		showBanner()
	}
	return options, nil
}

// setPositional validates and stores the <name> <interface> pair
func (options *Options) setPositional(args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	if args[0] == "" || args[1] == "" {
		return ErrUsage
	}
	options.Name = args[0]
	options.Interface = args[1]
	return nil
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.JSON {
		gologger.DefaultLogger.SetFormatter(&formatter.JSON{})
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
