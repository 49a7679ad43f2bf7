package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ganan"
	"github.com/etnz/ganan/renderer"
	"github.com/google/subcommands"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show how much each person is owed or owes" }
func (*balancesCmd) Usage() string {
	return `ganan balances

  Shows the balance of each person, the most owed first. A positive balance
  means the person is owed money. Settled people are not listed.
`
}

func (*balancesCmd) SetFlags(f *flag.FlagSet) {}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	session, done, err := openSession(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer done()

	printMarkdown(renderer.Balances(session.CalculateBalances(), cfg.Currency))
	return subcommands.ExitSuccess
}

type settleCmd struct {
	collector string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "show who pays whom" }
func (*settleCmd) Usage() string {
	return `ganan settle [-collector <name>]

  Shows the payments that make everybody even, using the group's settlement
  mode.

  With -collector, previews the payments routed through that person without
  changing the group's settings.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.collector, "collector", "", "Preview the settlements collected by this person")
}

func (c *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	session, done, err := openSession(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer done()

	var settlements []ganan.Settlement
	if c.collector != "" {
		settlements, err = session.CollectorSettlements(c.collector)
	} else {
		settlements, err = session.CalculateSettlements()
	}
	if errors.Is(err, ganan.ErrNoCollector) {
		printMarkdown(renderer.MissingCollector())
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Settlements(settlements, cfg.Currency))
	return subcommands.ExitSuccess
}

type modeCmd struct{}

func (*modeCmd) Name() string     { return "mode" }
func (*modeCmd) Synopsis() string { return "show or change the settlement mode" }
func (*modeCmd) Usage() string {
	return `ganan mode [optimized|collector]

  Without argument, prints the settlement mode.

  optimized: the fewest payments between debtors and creditors.
  collector: everybody settles with a single collector.

  Switching to collector mode without a collector selects the first person of
  the group.
`
}

func (*modeCmd) SetFlags(f *flag.FlagSet) {}

func (c *modeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	var mode ganan.SettlementMode
	if f.NArg() == 1 {
		var err error
		if mode, err = ganan.ParseSettlementMode(f.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	session, done, err := openSession(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer done()

	if f.NArg() == 1 {
		session.SetMode(mode)
	}
	fmt.Fprintf(stdout, "Settlement mode: %s\n", session.Mode().Title())
	if session.Mode() == ganan.Collector {
		if collector := session.Collector(); collector != "" {
			fmt.Fprintf(stdout, "Collector: %s\n", collector)
		} else {
			fmt.Fprintln(stdout, "Collector: none, use 'ganan collector <name>' to select one.")
		}
	}
	return subcommands.ExitSuccess
}

type collectorCmd struct {
	clear bool
}

func (*collectorCmd) Name() string     { return "collector" }
func (*collectorCmd) Synopsis() string { return "show or select the collector" }
func (*collectorCmd) Usage() string {
	return `ganan collector [-clear] [name]

  Without argument, prints the collector. With a name, selects that person as
  the collector. The collector is only used in collector mode.
`
}

func (c *collectorCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clear, "clear", false, "Unselect the collector")
}

func (c *collectorCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 || (c.clear && f.NArg() > 0) {
		f.Usage()
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	session, done, err := openSession(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer done()

	switch {
	case c.clear:
		session.SetCollector("")
	case f.NArg() == 1:
		name := f.Arg(0)
		if !session.HasParticipant(name) {
			fmt.Fprintf(os.Stderr, "Error: %q is not in the group.\n", name)
			return subcommands.ExitFailure
		}
		session.SetCollector(name)
	}

	if collector := session.Collector(); collector != "" {
		fmt.Fprintf(stdout, "Collector: %s\n", collector)
	} else {
		fmt.Fprintln(stdout, "Collector: none")
	}
	return subcommands.ExitSuccess
}

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the whole ledger" }
func (*reportCmd) Usage() string {
	return `ganan report

  Prints the people, the expenses, the balances and who pays whom.
`
}

func (*reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	session, done, err := openSession(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer done()

	printMarkdown(renderer.Report(session.Ledger, cfg.Currency))
	return subcommands.ExitSuccess
}

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "remove all people and expenses" }
func (*clearCmd) Usage() string {
	return `ganan clear [-y]

  Removes all people and expenses. The settlement mode and the collector are
  kept.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *clearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	session, done, err := openSession(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer done()

	if !c.yes && !confirm("Are you sure you want to clear all people and expenses? This cannot be undone.") {
		return subcommands.ExitSuccess
	}
	session.ClearAll()
	fmt.Fprintln(stdout, "✅ Cleared.")
	return subcommands.ExitSuccess
}
