package cmd

import (
	"github.com/etnz/ganan"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs the shell completion for the binary name.
//
// It returns immediately unless the program was invoked by the shell to
// complete a command line.
func Complete(name string) {
	global := map[string]complete.Predictor{
		"config":   predict.Files("*.toml"),
		"store":    predict.Files("*"),
		"currency": predict.Set{"LKR", "USD", "EUR", "GBP", "INR", "JPY"},
		"plain":    nil,
	}
	with := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		all := make(map[string]complete.Predictor, len(global)+len(flags))
		for k, v := range global {
			all[k] = v
		}
		for k, v := range flags {
			all[k] = v
		}
		return all
	}
	people := complete.PredictFunc(participants)

	cmd := &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"add-person": {Flags: with(nil)},
			"rm-person":  {Flags: with(map[string]complete.Predictor{"y": nil}), Args: people},
			"people":     {Flags: with(nil)},
			"add-expense": {Flags: with(map[string]complete.Predictor{
				"payer":  people,
				"amount": nil,
				"for":    people,
				"all":    nil,
				"m":      nil,
				"edit":   nil,
			})},
			"rm-expense": {Flags: with(map[string]complete.Predictor{"y": nil})},
			"expenses":   {Flags: with(nil)},
			"balances":   {Flags: with(nil)},
			"settle":     {Flags: with(map[string]complete.Predictor{"collector": people})},
			"mode":       {Flags: with(nil), Args: predict.Set{ganan.Optimized.String(), ganan.Collector.String()}},
			"collector":  {Flags: with(map[string]complete.Predictor{"clear": nil}), Args: people},
			"report":     {Flags: with(nil)},
			"clear":      {Flags: with(map[string]complete.Predictor{"y": nil})},
			"assist":     {Flags: with(nil)},
			"fmt":        {Flags: with(map[string]complete.Predictor{"o": predict.Files("*")})},
			"topic":      {Args: predict.Set{"*", "expenses", "settlements", "storage"}},
			"help":       {},
			"flags":      {},
			"commands":   {},
		},
	}
	cmd.Complete(name)
}

// participants predicts the names in the default store.
func participants(prefix string) []string {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil
	}
	store, err := OpenStore(cfg.Store)
	if err != nil {
		return nil
	}
	defer store.Close()
	l, err := ganan.Load(store)
	if err != nil {
		return nil
	}
	return l.Participants()
}
