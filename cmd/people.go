package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ganan/renderer"
	"github.com/google/subcommands"
)

type addPersonCmd struct{}

func (*addPersonCmd) Name() string     { return "add-person" }
func (*addPersonCmd) Synopsis() string { return "add people to the group" }
func (*addPersonCmd) Usage() string {
	return `ganan add-person <name>...

  Adds one or more people to the group. Names are trimmed, and must be unique
  (case-sensitive).
`
}

func (*addPersonCmd) SetFlags(f *flag.FlagSet) {}

func (c *addPersonCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
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

	status := subcommands.ExitSuccess
	for _, name := range f.Args() {
		if err := session.AddParticipant(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding %q: %v\n", name, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(stdout, "✅ Added %s.\n", name)
	}
	return status
}

type rmPersonCmd struct {
	yes bool
}

func (*rmPersonCmd) Name() string     { return "rm-person" }
func (*rmPersonCmd) Synopsis() string { return "remove a person from the group" }
func (*rmPersonCmd) Usage() string {
	return `ganan rm-person [-y] <name>

  Removes a person from the group. Expenses involving this person are kept and
  still count in the balances.
`
}

func (c *rmPersonCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *rmPersonCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

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

	if !session.HasParticipant(name) {
		fmt.Fprintf(os.Stderr, "Error: %q is not in the group.\n", name)
		return subcommands.ExitFailure
	}
	if !c.yes && !confirm(fmt.Sprintf("Are you sure you want to remove %q?", name)) {
		return subcommands.ExitSuccess
	}
	if err := session.RemoveParticipant(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "✅ Removed %s.\n", name)
	return subcommands.ExitSuccess
}

type peopleCmd struct{}

func (*peopleCmd) Name() string     { return "people" }
func (*peopleCmd) Synopsis() string { return "list the people in the group" }
func (*peopleCmd) Usage() string {
	return `ganan people

  Lists the people in the group, in the order they were added.
`
}

func (*peopleCmd) SetFlags(f *flag.FlagSet) {}

func (c *peopleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.Participants(session.Participants()))
	return subcommands.ExitSuccess
}
