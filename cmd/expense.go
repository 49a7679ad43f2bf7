package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/ganan"
	"github.com/etnz/ganan/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addExpenseCmd struct {
	payer       string
	amount      string
	forNames    string
	all         bool
	description string
	edit        int
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense, or edit an existing one" }
func (*addExpenseCmd) Usage() string {
	return `ganan add-expense -payer <name> -amount <amount> (-for <name,name...> | -all) [-m <description>]
ganan add-expense -edit <index> [-payer <name>] [-amount <amount>] [-for <names> | -all] [-m <description>]

  Records an expense paid by one person and shared equally between the
  beneficiaries.

  With -edit, replaces the expense at index instead. Flags that are not set
  keep the current values of that expense.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.payer, "payer", "", "Who paid")
	f.StringVar(&c.amount, "amount", "", "How much was paid, e.g. 1500 or 1500.50")
	f.StringVar(&c.forNames, "for", "", "Comma separated list of the people the expense was for")
	f.BoolVar(&c.all, "all", false, "The expense was for everybody in the group")
	f.StringVar(&c.description, "m", "", "Description of the expense")
	f.IntVar(&c.edit, "edit", -1, "Index of the expense to replace")
}

func (c *addExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.all && c.forNames != "" {
		fmt.Fprintln(os.Stderr, "Error: -for and -all cannot be used together.")
		return subcommands.ExitUsageError
	}
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

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

	// start from the edited expense, if any.
	var (
		payer         string
		amount        decimal.Decimal
		beneficiaries []string
		description   string
	)
	if c.edit >= 0 {
		e, err := session.Expense(c.edit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot edit expense %d: %v\n", c.edit, err)
			return subcommands.ExitFailure
		}
		payer, amount, beneficiaries, description = e.Payer, e.Amount, e.Beneficiaries, e.Description
		if description == ganan.NoDescription {
			description = ""
		}
	}

	if set["payer"] {
		payer = c.payer
	}
	if set["amount"] {
		if amount, err = ganan.ParseAmount(c.amount); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", c.amount, err)
			return subcommands.ExitUsageError
		}
	}
	switch {
	case c.all:
		beneficiaries = session.Participants()
	case set["for"]:
		beneficiaries = strings.Split(c.forNames, ",")
	}
	if set["m"] {
		description = c.description
	}

	payer = strings.TrimSpace(payer)
	if payer != "" && !session.HasParticipant(payer) {
		fmt.Fprintf(os.Stderr, "Error: payer %q is not in the group.\n", payer)
		return subcommands.ExitFailure
	}
	for _, name := range beneficiaries {
		if name = strings.TrimSpace(name); name != "" && !session.HasParticipant(name) {
			fmt.Fprintf(os.Stderr, "Error: beneficiary %q is not in the group.\n", name)
			return subcommands.ExitFailure
		}
	}

	if c.edit >= 0 {
		if err := session.BeginEdit(c.edit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot edit expense %d: %v\n", c.edit, err)
			return subcommands.ExitFailure
		}
	}
	if err := session.AddExpense(payer, amount, beneficiaries, description); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.edit >= 0 {
		fmt.Fprintf(stdout, "✅ Updated expense %d.\n", c.edit)
	} else {
		fmt.Fprintf(stdout, "✅ Added expense %d.\n", session.Len()-1)
	}
	return subcommands.ExitSuccess
}

type rmExpenseCmd struct {
	yes bool
}

func (*rmExpenseCmd) Name() string     { return "rm-expense" }
func (*rmExpenseCmd) Synopsis() string { return "delete an expense" }
func (*rmExpenseCmd) Usage() string {
	return `ganan rm-expense [-y] <index>

  Deletes the expense at index, as listed by 'ganan expenses'. The expenses
  after it are renumbered.
`
}

func (c *rmExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *rmExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	index, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid index %q\n", f.Arg(0))
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

	e, err := session.Expense(index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	question := fmt.Sprintf("Delete expense: %s - %s?", e.Payer, ganan.M(e.Amount, cfg.Currency))
	if !c.yes && !confirm(question) {
		return subcommands.ExitSuccess
	}
	if err := session.RemoveExpense(index); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "✅ Deleted expense %d.\n", index)
	return subcommands.ExitSuccess
}

type expensesCmd struct{}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "list the expenses" }
func (*expensesCmd) Usage() string {
	return `ganan expenses

  Lists the expenses with their index, payer, amount, description and
  beneficiaries.
`
}

func (*expensesCmd) SetFlags(f *flag.FlagSet) {}

func (c *expensesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.Expenses(session.Ledger, cfg.Currency))
	return subcommands.ExitSuccess
}
