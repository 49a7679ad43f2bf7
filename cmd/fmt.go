package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ganan"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	output string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrite the ledger in its canonical form, or copy it to another store"
}
func (*fmtCmd) Usage() string {
	return `ganan fmt [-o <store>]

  Reads the ledger, drops the records that are not valid, and writes it back
  in its canonical form.

  With -o, writes the ledger into another store instead, e.g. to move a JSON
  file into a SQLite database.

Usage Examples:
$ ganan fmt
$ ganan -store trip.json fmt -o sqlite:trip.db
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Store to write the ledger to. Defaults to the current store.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	in, err := OpenStore(cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open store %q: %v\n", cfg.Store, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	l, err := ganan.Load(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger from %q: %v\n", cfg.Store, err)
		return subcommands.ExitFailure
	}

	out, location := ganan.Store(in), cfg.Store
	if c.output != "" && c.output != cfg.Store {
		s, err := OpenStore(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open store %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer s.Close()
		out, location = s, c.output
	}

	if err := ganan.Save(out, l); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save ledger to %q: %v\n", location, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "✅ Wrote %d people and %d expenses to %s.\n", len(l.Participants()), l.Len(), location)
	return subcommands.ExitSuccess
}
