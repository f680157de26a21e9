package cmd

import (
	"os"

	"github.com/ComedicChimera/olive"

	"pl0c/report"
)

// Version is the current compiler version.
const Version = "0.4.0"

// Execute is the main entry point for the `pl0c` CLI utility.
func Execute() {
	// Set up the argument parser and all its commands and arguments.
	cli := olive.NewCLI("pl0c", "pl0c is a compiler for the PL0 teaching language", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false,
		[]string{"silent", "error", "verbose"})
	logLvlArg.SetDefaultValue("error")

	buildCmd := cli.AddSubcommand("build", "compile a source program", true)
	buildCmd.AddPrimaryArg("file-path", "the path to the program to compile", true)
	buildCmd.AddStringArg("out", "o", "the path to write the code listing to", false)

	cli.AddSubcommand("version", "print the pl0c version", false)

	// Run the argument parser.
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	// Process the inputed command line.
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string))
	case "version":
		report.DisplayInfoMessage("pl0c Version", Version)
	}
}

// logLevelByName maps CLI log level names to reporter log levels.
var logLevelByName = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"verbose": report.LogLevelVerbose,
}

// execBuildCommand executes the build subcommand and handles all its errors.
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	// Get the primary argument: the source path.
	srcPath, _ := result.PrimaryArg()

	// Merge the project configuration under the command line.
	config := loadConfig(srcPath)
	if loglevel != "" {
		config.LogLevel = loglevel
	}
	if outArg, ok := result.Arguments["out"]; ok {
		config.OutputPath = outArg.(string)
	}

	// Initialize the reporter before the first phase runs.
	report.InitReporter(logLevelByName[config.LogLevel], srcPath)

	c := NewCompiler(srcPath, config.OutputPath)
	if c.Compile() {
		report.DisplayInfoMessage("Done", srcPath)
	} else {
		report.DisplayErrorCount(report.ErrorCount())
		os.Exit(1)
	}
}
