package main

import (
	"fmt"
	"path/filepath"

	"github.com/ZaguanLabs/menuval"
	"github.com/spf13/cobra"
)

// batchFlags holds the per-command options of validate, translate and process.
type batchFlags struct {
	ioFlags
	sheet    string
	mode     string
	source   string
	previous string
}

func (f *batchFlags) register(cmd *cobra.Command, withSheet, withSource bool) {
	cmd.Flags().StringVar(&f.format, "input-format", "", "Input format: csv, json or html (default: from extension or content)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Write results as JSON instead of CSV")
	cmd.Flags().StringVar(&f.previous, "previous", "", "Previous menu version; only added or changed items are processed")
	if withSheet {
		cmd.Flags().StringVar(&f.sheet, "sheet", "Main Menu", `Sheet type: "Main Menu" or "Sep Sheet"`)
	}
	if withSource {
		cmd.Flags().StringVar(&f.source, "from", "", "Source language of the items: en or ar")
	}
}

func newValidateCmd(a *app) *cobra.Command {
	f := &batchFlags{mode: string(menuval.ModeValidate)}
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate menu items against the configured word lists",
		Long: "Validate reads items from a CSV file (Item Name, Description columns) or a JSON " +
			"array and reports a verdict, reason and remediation action for each row.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args, f)
		},
	}
	f.register(cmd, true, false)
	return cmd
}

func newTranslateCmd(a *app) *cobra.Command {
	f := &batchFlags{mode: string(menuval.ModeTranslate)}
	cmd := &cobra.Command{
		Use:   "translate [file]",
		Short: "Translate menu items between English and Arabic",
		Long: "Translate resolves each item name and description through the terminology table " +
			"first and the configured translation provider second, tagging every field with " +
			"where its translation came from.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args, f)
		},
	}
	f.register(cmd, false, true)
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newProcessCmd(a *app) *cobra.Command {
	f := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Validate and translate menu items in one pass",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args, f)
		},
	}
	f.register(cmd, true, true)
	cmd.Flags().StringVar(&f.mode, "mode", string(menuval.ModeBoth), "Pipelines to run: validate, translate or both")
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, args []string, f *batchFlags) error {
	ctx := cmd.Context()

	opts, err := f.options()
	if err != nil {
		return err
	}

	items, name, err := a.readInput(args, f.format)
	if err != nil {
		return err
	}
	if f.previous != "" {
		old, err := readItemsFile(f.previous, "")
		if err != nil {
			return fmt.Errorf("previous version: %w", err)
		}
		diff := menuval.DiffItems(old, items)
		items = diff.NeedsProcessing()
		st := diff.Stats()
		a.summary("%d added, %d modified, %d unchanged, %d removed since %s\n",
			st.Added, st.Modified, st.Unchanged, st.Removed, filepath.Base(f.previous))
	}

	rt, err := a.buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	a.summary("Processing %d items from %s (%s)...\n", len(items), name, opts.Mode)

	rows, report, err := rt.proc.Process(ctx, items, opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	out, closeOut, err := a.openOutput(f.output)
	if err != nil {
		return err
	}
	if f.asJSON {
		err = writeJSON(out, batchOutput{Rows: rows, Report: report})
	} else {
		err = writeCSV(out, rows, opts.Mode)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	a.printReport(report)
	return nil
}

func (f *batchFlags) options() (menuval.BatchOptions, error) {
	mode, err := menuval.ParseMode(f.mode)
	if err != nil {
		return menuval.BatchOptions{}, err
	}
	sheet, err := menuval.ParseSheetType(f.sheet)
	if err != nil {
		return menuval.BatchOptions{}, err
	}
	opts := menuval.BatchOptions{Sheet: sheet, Mode: mode}
	if mode.Translates() {
		if f.source == "" {
			return opts, fmt.Errorf("--from is required when translating")
		}
		if opts.Source, err = menuval.ParseLanguage(f.source); err != nil {
			return opts, err
		}
	}
	return opts, nil
}
