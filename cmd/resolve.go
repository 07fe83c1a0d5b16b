package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cottand/manifold/internal/log"
	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/rules"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ResolveCmd = &cobra.Command{
	Use:          "resolve rules.yaml",
	Short:        "Resolve the queries in a rule file and run their implementations",
	RunE:         runResolve,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var logLevel *int

func init() {
	logLevel = ResolveCmd.Flags().IntP("log", "l", int(slog.LevelWarn), "log level (slog numeric levels)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	file, err := loadRules(args[0])
	if err != nil {
		return err
	}
	reg, lattice, err := file.Build()
	if err != nil {
		return errors.Wrap(err, "could not build registry from rule file")
	}

	failed := 0
	for _, q := range file.Queries {
		outcome := rules.RunQuery(reg, lattice, q)
		if q.ExpectNoMatch && merr.IsNoMatch(outcome.Err) {
			fmt.Printf("%s%s -> no match\n", q.Name, argsKey(q))
			continue
		}
		if outcome.Err != nil {
			color.Red("%s: %v", q.Name, outcome.Err)
			failed++
			continue
		}
		fmt.Printf("%s%s -> %s = %v\n",
			q.Name, argsKey(q), outcome.Winner.Tuple().Key(), outcome.Result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(file.Queries))
	}
	return nil
}

func argsKey(q rules.Query) string {
	s := "("
	for i, a := range q.Args {
		if i > 0 {
			s += ", "
		}
		s += a.Type
	}
	return s + ")"
}
