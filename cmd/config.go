package cmd

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"pl0c/report"
)

// configFileName is the name of the optional project configuration file,
// looked for next to the source program.
const configFileName = "pl0.toml"

// tomlConfig represents the project configuration as it is encoded in TOML.
// Command-line arguments override any of its fields.
type tomlConfig struct {
	// The compiler log level: silent, error, or verbose.
	LogLevel string `toml:"log-level"`

	// The path the code listing is written to.  Empty writes to standard
	// output.
	OutputPath string `toml:"output-path"`
}

// loadConfig loads the project configuration next to the given source file.
// A missing file yields the defaults; a malformed one is fatal.
func loadConfig(srcPath string) *tomlConfig {
	config := &tomlConfig{LogLevel: "error"}

	buff, err := os.ReadFile(filepath.Join(filepath.Dir(srcPath), configFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			report.ReportFatal("error reading project file: %s", err.Error())
		}

		return config
	}

	if err := toml.Unmarshal(buff, config); err != nil {
		report.ReportFatal("error parsing project file: %s", err.Error())
	}

	if _, ok := logLevelByName[config.LogLevel]; !ok {
		report.ReportFatal("invalid log level `%s` in project file", config.LogLevel)
	}

	return config
}
