package main

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-indexed/internal/churn"
)

var cmdChurn = &cobra.Command{
	Use:   "churn",
	Short: "Check index stability under randomized adds and removes",
	Long: `
The "churn" command adds random keys and removes random live keys, and after
every step checks each key's index and the key stored at that index against a
reference model.

EXIT STATUS
===========

Exit status is 0 if no mismatch was found, and 1 otherwise.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChurn(globalOptions, churnOptions)
	},
}

var churnOptions = churn.DefaultConfig()

func init() {
	cmdRoot.AddCommand(cmdChurn)

	f := cmdChurn.Flags()
	f.IntVar(&churnOptions.Keys, "keys", churnOptions.Keys, "distinct keys in the pool")
	f.IntVar(&churnOptions.Steps, "steps", churnOptions.Steps, "number of steps")
	f.Float64Var(&churnOptions.RemoveProb, "remove-prob", churnOptions.RemoveProb, "probability of a removal per step")
	f.IntVar(&churnOptions.KeyLen, "key-len", churnOptions.KeyLen, "length of the random keys")
	f.Int64Var(&churnOptions.Seed, "seed", churnOptions.Seed, "random seed")
	f.IntVar(&churnOptions.LogEvery, "log-every", churnOptions.LogEvery, "log progress every `n` steps at debug level")
}

func runChurn(gopts GlobalOptions, cfg churn.Config) error {
	t, err := newTarget(gopts.Kind, gopts.Capacity)
	if err != nil {
		return err
	}
	start := time.Now()
	st, err := churn.Run(t, cfg, log.StandardLogger())
	if err != nil {
		return errors.Wrapf(err, "churn %s", gopts.Kind)
	}
	log.WithFields(log.Fields{
		"kind":    gopts.Kind,
		"steps":   st.Checks,
		"adds":    st.Adds,
		"readds":  st.Readds,
		"removes": st.Removes,
		"reuses":  st.Reuses,
		"maxSize": st.MaxSize,
		"elapsed": time.Since(start),
	}).Info("churn passed")
	return nil
}
