package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/mosaicnetworks/hepmc/src/ascii"
	"github.com/mosaicnetworks/hepmc/src/common"
	"github.com/mosaicnetworks/hepmc/src/units"
)

// Default filenames.
const (
	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"

	// DefaultConfigFile is the base name of the configuration file looked up
	// in the data directory. Any extension supported by viper is accepted.
	DefaultConfigFile = "hepmc"
)

// Default configuration values.
const (
	DefaultLogLevel         = "info"
	DefaultLogFile          = ""
	DefaultCacheSize        = 1000
	DefaultStore            = true
	DefaultFormat           = "genevent"
	DefaultMomentumUnit     = "GEV"
	DefaultLengthUnit       = "MM"
	DefaultPrecision        = 0
	DefaultStrictReferences = false
)

// Config contains all the configuration properties of the hepmc tools.
type Config struct {
	// DataDir is the top-level directory containing the configuration file
	// and the event archive.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, receives a copy of every log line.
	LogFile string `mapstructure:"log-file"`

	// Store activates the persistent event archive. Without it, archived
	// events only live in memory for the duration of a command.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// CacheSize is the max number of events kept in memory by the archive.
	CacheSize int `mapstructure:"cache-size"`

	// Format is the listing format written by the tools: genevent, extended
	// or ascii.
	Format string `mapstructure:"format"`

	// MomentumUnit and LengthUnit are given to events read from records that
	// do not declare their units.
	MomentumUnit string `mapstructure:"momentum-unit"`
	LengthUnit   string `mapstructure:"length-unit"`

	// Precision is the number of significant digits of written floating
	// point values. 0 writes the shortest exact representation.
	Precision int `mapstructure:"precision"`

	// StrictReferences discards events referencing unknown end vertices.
	StrictReferences bool `mapstructure:"strict"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:          DefaultDataDir(),
		LogLevel:         DefaultLogLevel,
		LogFile:          DefaultLogFile,
		Store:            DefaultStore,
		DatabaseDir:      DefaultDatabaseDir(),
		CacheSize:        DefaultCacheSize,
		Format:           DefaultFormat,
		MomentumUnit:     DefaultMomentumUnit,
		LengthUnit:       DefaultLengthUnit,
		Precision:        DefaultPrecision,
		StrictReferences: DefaultStrictReferences,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t)
	config.logger.Level = level
	return config
}

// SetDataDir sets the top-level directory, and updates the database
// directory if it is currently set to the default value. If the database
// directory is not currently the default, it means the user has explicitely set
// it to something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Logger returns a formatted logrus Entry, with prefix set to "hepmc". When
// LogFile is set, log lines are also appended to that file.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
		if c.LogFile != "" {
			c.logger.Hooks.Add(lfshook.NewHook(
				c.LogFile,
				&logrus.TextFormatter{},
			))
		}
	}
	return c.logger.WithField("prefix", "hepmc")
}

// ReaderOptions returns the options of listing readers.
func (c *Config) ReaderOptions() (ascii.Options, error) {
	opts, err := c.asciiOptions()
	if err != nil {
		return opts, err
	}
	opts.Logger = c.Logger().WithField("prefix", "reader")
	return opts, nil
}

// WriterOptions returns the options of listing writers.
func (c *Config) WriterOptions() (ascii.Options, error) {
	opts, err := c.asciiOptions()
	if err != nil {
		return opts, err
	}
	opts.Logger = c.Logger().WithField("prefix", "writer")
	return opts, nil
}

func (c *Config) asciiOptions() (ascii.Options, error) {
	opts := ascii.DefaultOptions()

	format, err := ascii.ParseFormat(c.Format)
	if err != nil {
		return opts, err
	}
	mom, err := units.ParseMomentumUnit(c.MomentumUnit)
	if err != nil {
		return opts, err
	}
	length, err := units.ParseLengthUnit(c.LengthUnit)
	if err != nil {
		return opts, err
	}

	opts.Format = format
	opts.MomentumUnit = mom
	opts.LengthUnit = length
	opts.Precision = c.Precision
	opts.StrictReferences = c.StrictReferences
	return opts, nil
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level hepmc
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".HepMC")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "HepMC")
		} else {
			return filepath.Join(home, ".hepmc")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
