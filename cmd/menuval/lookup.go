package main

import (
	"fmt"
	"strings"

	"github.com/ZaguanLabs/menuval"
	"github.com/spf13/cobra"
)

// lookupResult explains how the configured tables see a single text.
type lookupResult struct {
	Input       string   `json:"input"`
	Normalized  string   `json:"normalized"`
	Found       bool     `json:"found"`
	Translation string   `json:"translation,omitempty"`
	Match       string   `json:"match,omitempty"`
	Score       int      `json:"score,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Verified    bool     `json:"verified"`
}

func newLookupCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Look a term up in the terminology table and description library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.buildRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			res := lookup(rt.proc.Snapshot(cmd.Context()), strings.Join(args, " "))
			if asJSON {
				return writeJSON(a.stdout, res)
			}
			printLookup(a, res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the result as JSON")
	return cmd
}

func lookup(snap *menuval.Snapshot, text string) lookupResult {
	res := lookupResult{
		Input:       text,
		Normalized:  menuval.Normalize(text),
		Suggestions: snap.Library.Suggest(text),
		Verified:    snap.Verified,
	}
	if m, ok := snap.Terms.Lookup(text); ok {
		res.Found = true
		res.Translation = m.Translation
		res.Match = string(m.Kind)
		res.Score = m.Score
	}
	return res
}

func printLookup(a *app, res lookupResult) {
	fmt.Fprintf(a.stdout, "Input:       %s\n", res.Input)
	fmt.Fprintf(a.stdout, "Normalized:  %s\n", res.Normalized)
	if res.Found {
		fmt.Fprintf(a.stdout, "Translation: %s (%s, score %d)\n", res.Translation, res.Match, res.Score)
	} else {
		fmt.Fprintln(a.stdout, "Translation: not in terminology")
	}
	for _, s := range res.Suggestions {
		fmt.Fprintf(a.stdout, "Suggestion:  %s\n", s)
	}
	if !res.Verified {
		a.summary("WARNING: configuration could not be loaded\n")
	}
}
