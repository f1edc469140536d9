package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosaicnetworks/hepmc/src/config"
)

// AddConfigFlags adds the flags shared by all commands
func AddConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	cmd.PersistentFlags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().String("log-file", _config.LogFile, "Also append log lines to this file")

	// Listings
	cmd.PersistentFlags().StringP("format", "f", _config.Format, "Output format: genevent, extended or ascii")
	cmd.PersistentFlags().String("momentum-unit", _config.MomentumUnit, "Momentum unit of events read without units")
	cmd.PersistentFlags().String("length-unit", _config.LengthUnit, "Length unit of events read without units")
	cmd.PersistentFlags().Int("precision", _config.Precision, "Significant digits of written values, 0 for shortest")
	cmd.PersistentFlags().Bool("strict", _config.StrictReferences, "Discard events referencing unknown end vertices")

	// Store
	cmd.PersistentFlags().Bool("store", _config.Store, "Archive events in badgerDB instead of memory")
	cmd.PersistentFlags().String("db", _config.DatabaseDir, "Database directory")
	cmd.PersistentFlags().Int("cache-size", _config.CacheSize, "Number of events kept in memory by the archive")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.SetDataDir(_config.DataDir)

	logFields := logrus.Fields{
		"hepmc.DataDir":          _config.DataDir,
		"hepmc.LogLevel":         _config.LogLevel,
		"hepmc.LogFile":          _config.LogFile,
		"hepmc.Format":           _config.Format,
		"hepmc.MomentumUnit":     _config.MomentumUnit,
		"hepmc.LengthUnit":       _config.LengthUnit,
		"hepmc.Precision":        _config.Precision,
		"hepmc.StrictReferences": _config.StrictReferences,
		"hepmc.Store":            _config.Store,
		"hepmc.CacheSize":        _config.CacheSize,
	}

	if _config.Store {
		logFields["hepmc.DatabaseDir"] = _config.DatabaseDir
	}

	_config.Logger().WithFields(logFields).Debug(cmd.Name())

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/hepmc.toml (.json, .yaml also work)
	viper.SetConfigName(config.DefaultConfigFile) // name of config file (without extension)
	viper.AddConfigPath(_config.DataDir)          // search root directory

	// If a config file is found, read it in. The logger is only created once
	// the file had a chance to set the log options.
	found := true
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		found = false
	}

	// second unmarshal to read from config file
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	if found {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	}
	return nil
}
