package cmd

import (
	"github.com/etnz/mwr/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	ledgers := predict.Or(predict.Files("*.jsonl"), predict.Files("*.csv"))
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file": ledgers,
			"currency":    predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
			"v":           predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"returns": {
				Flags: map[string]complete.Predictor{
					"d":     predict.Something,
					"l":     ledgers,
					"value": predict.Something,
					"json":  predict.Nothing,
					"q":     predict.Something,
					"csv":   predict.Files("*.csv"),
					"html":  predict.Files("*.html"),
				},
			},
			"holdings": {
				Flags: map[string]complete.Predictor{
					"d":   predict.Something,
					"top": predict.Something,
				},
			},
			"import-merrill": {
				Flags: map[string]complete.Predictor{
					"prices": predict.Something,
					"o":      predict.Files("*.jsonl"),
				},
				Args: predict.Files("*.csv"),
			},
			"fmt": {
				Flags: map[string]complete.Predictor{
					"o": predict.Files("*.jsonl"),
				},
			},
			"topic": {
				Args: predict.Set(append(topics, "*")),
			},
		},
	}
}
