package cmd

import (
	"flag"

	"github.com/etnz/immo"
	"github.com/etnz/immo/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes the flags that share a name across commands.
var flagPredictors = map[string]complete.Predictor{
	"f":            predict.Or(predict.Files("*.json"), predict.Files("*.hjson")),
	"index":        predict.Files("*.csv"),
	"o":            predict.Files("*.csv"),
	"mode":         predict.Set{string(immo.Realized), string(immo.Projected), string(immo.Smoothed)},
	"type":         predict.Set{string(immo.RentFilter), string(immo.ChargeFilter)},
	"lease-status": predict.Set{string(immo.LeaseActive), string(immo.LeasePending), string(immo.LeaseEnded)},
	"format":       predict.Set(formats),
}

// Completion returns the shell completion of the commands registered by
// Register.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{"config": predict.Files("*.yaml")},
	}
	var names []string
	for _, g := range groups() {
		for _, c := range g.commands {
			root.Sub[c.Name()] = completion(c)
			names = append(names, c.Name())
		}
	}
	root.Sub["insee"].Sub = map[string]*complete.Command{"fetch": completion(&inseeFetchCmd{})}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(names)}
	root.Sub["flags"] = &complete.Command{Args: predict.Set(names)}
	root.Sub["commands"] = &complete.Command{}
	return root
}

// completion completes the flags of c.
func completion(c subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	cc := &complete.Command{Flags: map[string]complete.Predictor{}}
	fs.VisitAll(func(f *flag.Flag) {
		p, ok := flagPredictors[f.Name]
		if !ok {
			p = predict.Something
		}
		cc.Flags[f.Name] = p
	})
	return cc
}
