package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "aq",
	Short:         "Aq is a tool for processing TOML documents.",
	Long:          "Aq is a tool for processing TOML documents. It decodes a document, selects or queries values in it, renders it as JSON or YAML and diffs documents by content.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setLogLevel(logLevel)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// errDiffer 表示 diff 发现了差异, 只影响退出码
var errDiffer = errors.New("documents differ")

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiffer) {
			printError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func printError(f *os.File, err error) {
	msg := err.Error()
	if isTerminal(f) {
		c := color.New(color.FgRed)
		c.EnableColor()
		msg = c.Sprint(msg)
	}
	fmt.Fprintln(f, msg)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Aq",
	Long:  `All software has versions. This is Aq's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Aq v0.2 -- HEAD")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel(), "log level: debug|info|warn|error (env AQ_LOG_LEVEL)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tomlCmd)
}
