// Package config defines the configuration shared by the hepmc tools.
//
// Whether the tools are driven from Go code or from the command line, they
// read their options from the Config object defined in this package. On top
// of these options, the tools rely on a data directory, defined by
// Config.DataDir, where they look for:
//
//	hepmc.toml // (optional) the configuration file, also hepmc.json or hepmc.yaml.
//	badger_db/ // the event archive written by hepmc archive.
//
// Precedence, from highest to lowest, is: command line flags, configuration
// file, defaults.
package config
