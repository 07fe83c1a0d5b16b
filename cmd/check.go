package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/cottand/manifold/internal/log"
	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/registry"
	"github.com/cottand/manifold/rules"
	"github.com/cottand/manifold/util"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check rules.yaml",
	Short:        "Check a rule file for ambiguous or unresolvable dispatch",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func loadRules(path string) (*rules.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening rule file")
	}
	defer func() { _ = f.Close() }()
	return rules.Load(f)
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.LevelError)

	file, err := loadRules(args[0])
	if err != nil {
		return err
	}

	var notices []merr.AmbiguityNotice
	reg, lattice, err := file.Build(registry.WithAmbiguityFunc(func(name string, a, b *registry.Signature) {
		notices = append(notices, merr.AmbiguityNotice{Name: name, First: a.Tuple(), Second: b.Tuple()})
	}))
	if err != nil {
		return errors.Wrap(err, "could not build registry from rule file")
	}

	for _, name := range reg.Names() {
		keys := util.CollectIter(util.MapIter(reg.Signatures(name), (*registry.Signature).String))
		fmt.Printf("%s: %d signature(s) %v\n", name, len(keys), keys)
	}

	problems := 0
	for _, n := range notices {
		color.Yellow("ambiguity: %s", n.String())
		problems++
	}

	for _, q := range file.Queries {
		outcome := rules.RunQuery(reg, lattice, q)
		switch {
		case q.ExpectNoMatch && merr.IsNoMatch(outcome.Err):
			color.Green("query %s: no match, as the rule file expects", q.Name)
		case outcome.Err != nil:
			color.Red("query %s: %v", q.Name, outcome.Err)
			problems++
		case q.ExpectNoMatch:
			color.Red("query %s: expected no match, but resolved to %s", q.Name, outcome.Winner)
			problems++
		case q.Expect != "" && outcome.Winner.Tuple().Key() != q.Expect:
			color.Red("query %s: resolved to %s, rule file expects %s",
				q.Name, outcome.Winner.Tuple().Key(), q.Expect)
			problems++
		default:
			color.Green("query %s -> %s", q.Name, outcome.Winner.Tuple().Key())
		}
	}

	if problems > 0 {
		flagged := util.SetFromSeq(util.MapIter(slices.Values(notices), func(n merr.AmbiguityNotice) string {
			return n.Name
		}), len(notices))
		return fmt.Errorf("%d problem(s) found (%d ambiguous operation(s))", problems, flagged.Size())
	}
	fmt.Println("ok")
	return nil
}
