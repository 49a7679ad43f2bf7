// Package cmd implements the CLI application to manage a group's shared expenses.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&addPersonCmd{}, "people")
	c.Register(&rmPersonCmd{}, "people")
	c.Register(&peopleCmd{}, "people")

	c.Register(&addExpenseCmd{}, "expenses")
	c.Register(&rmExpenseCmd{}, "expenses")
	c.Register(&expensesCmd{}, "expenses")

	c.Register(&balancesCmd{}, "settlements")
	c.Register(&settleCmd{}, "settlements")
	c.Register(&modeCmd{}, "settlements")
	c.Register(&collectorCmd{}, "settlements")

	c.Register(&reportCmd{}, "")
	c.Register(&clearCmd{}, "")
	c.Register(&fmtCmd{}, "")
	c.Register(&topicCmd{}, "")
	c.Register(&assistCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "ganan.toml", "Path to the optional configuration file")
	storeFlag    = flag.String("store", "", "Where the ledger is stored: a JSON file, or a SQLite database (sqlite:<path> or *.db). Overrides GANAN_STORE.")
	currencyFlag = flag.String("currency", "", "Currency used to display amounts. Overrides GANAN_CURRENCY.")
	plainFlag    = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")
)
