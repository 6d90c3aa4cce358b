package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "measure",
	Short: "Verify and time the indexed collections",
	Long: `
measure drives the indexed hash set and map through randomized churn, checking
every index against a reference model, and times add/lookup/remove rounds.
`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := log.ParseLevel(globalOptions.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(0)
	},
}

// GlobalOptions hold options shared by all commands.
type GlobalOptions struct {
	LogLevel string
	Kind     string
	Capacity int
}

var globalOptions GlobalOptions

func init() {
	f := cmdRoot.PersistentFlags()
	f.StringVar(&globalOptions.LogLevel, "log-level", "info", "logging level (debug, info, warn, error)")
	f.StringVar(&globalOptions.Kind, "kind", "set", "collection to measure: set or map")
	f.IntVar(&globalOptions.Capacity, "capacity", 16, "initial capacity of the collection")
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
