package app

import (
	"fmt"
	"strings"

	"alarm-bridge/internal/config"
	bridgeio "alarm-bridge/internal/io"
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/processor"
	"alarm-bridge/internal/transform"
	"alarm-bridge/internal/util"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// profileFlags select the client profile and the original DCS export shared by several commands.
type profileFlags struct {
	client      string
	area        string
	input       string
	output      string
	source      string
	sourceQuery string
	modes       []string
}

func (pf *profileFlags) bindClient(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.client, "client", "", "client profile id (see 'profiles')")
	cmd.Flags().StringVar(&pf.area, "area", "", "area of the client profile")
}

func (pf *profileFlags) bindIO(cmd *cobra.Command, inputHelp, outputHelp string) {
	cmd.Flags().StringVarP(&pf.input, "input", "i", "", inputHelp)
	cmd.Flags().StringVarP(&pf.output, "output", "o", "", outputHelp)
}

func (pf *profileFlags) bindSource(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.source, "source", "", "original DCS export CSV used as the merge base")
	cmd.Flags().StringVar(&pf.sourceQuery, "source-query", "", "SQL query returning the original DCS export rows (needs --source-db)")
}

func (pf *profileFlags) bindModes(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&pf.modes, "mode", nil, "operating modes to keep, repeatable; '(empty)' selects blank modes")
}

func (pf *profileFlags) requireOutput() error {
	if strings.TrimSpace(pf.output) == "" {
		return eris.Wrap(ErrMissingArgs, "--output is required")
	}
	return nil
}

// rootCommand builds a fresh command tree bound to this runner.
func (a *AppRunner) rootCommand() *cobra.Command {
	var settingsFile string
	root := &cobra.Command{
		Use:   "alarm-bridge",
		Short: "Convert alarm configuration between DCS exports and PHA-Pro MADB files",
		Long: "alarm-bridge converts DynAMo multi-schema CSV and ABB wide workbook exports into PHA-Pro MADB imports,\n" +
			"and merges rationalized PHA-Pro exports back into the DCS import format.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, settingsFile)
		},
	}
	root.PersistentFlags().StringVar(&settingsFile, "config", "", "YAML settings file")
	root.PersistentFlags().String("log-level", "info", "logging level (none, error, warn, info, debug)")
	root.PersistentFlags().String("profiles", "", "client profile YAML file overlaid on the built-in profiles")
	root.PersistentFlags().String("source-db", "", "PostgreSQL connection string for --source-query")
	root.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "run the transform without writing output")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	root.AddCommand(
		a.forwardCommand(),
		a.reverseCommand(),
		a.abbReturnCommand(),
		a.reportCommand(),
		a.unitsCommand(),
		a.profilesCommand(),
	)
	return root
}

func (a *AppRunner) forwardCommand() *cobra.Command {
	var (
		pf         profileFlags
		units      []string
		unitMethod string
		filter     string
		sheet      string
	)
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Convert a DCS export into a PHA-Pro import CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.resolveProfile(pf.client, pf.area)
			if err != nil {
				return err
			}
			if err := pf.requireOutput(); err != nil {
				return err
			}
			if filter == "" {
				filter = p.Filter
			}
			af, err := processor.NewAlarmFilter(filter)
			if err != nil {
				return eris.Wrapf(ErrUsage, "%v", err)
			}

			var (
				table *model.Table
				stats model.Stats
			)
			if p.ParserKind == config.ParserWideExcel {
				if strings.TrimSpace(pf.input) == "" {
					return eris.Wrap(ErrMissingArgs, "--input workbook is required")
				}
				tags, err := newWideReaderFunc(sheet).Read(util.ExpandEnvUniversal(pf.input), p.ABBAlarmTypes)
				if err != nil {
					return err
				}
				table, stats, err = transform.ForwardABB(tags, p, af)
				if err != nil {
					return err
				}
			} else {
				records, err := a.readRecords(cmd.Context(), pf.input, pf.sourceQuery)
				if err != nil {
					return err
				}
				opts := transform.ForwardOptions{
					SelectedUnits: units,
					UnitMethod:    unitMethod,
					SelectedModes: pf.modes,
					Filter:        af,
				}
				table, stats, err = transform.Forward(bridgeio.BuildDataset(records), p, opts)
				if err != nil {
					return err
				}
			}
			a.logStats(stats)
			return a.writeTable(table, pf.output)
		},
	}
	pf.bindClient(cmd)
	pf.bindIO(cmd, "DCS export CSV, or the workbook for wide-excel profiles", "PHA-Pro import CSV to write")
	pf.bindModes(cmd)
	cmd.Flags().StringVar(&pf.sourceQuery, "source-query", "", "SQL query returning the DCS export rows (needs --source-db)")
	cmd.Flags().StringSliceVar(&units, "unit", nil, "units to keep, repeatable")
	cmd.Flags().StringVar(&unitMethod, "unit-method", "", "override the profile unit method (tag-prefix, asset-parent, asset-child, both, fixed)")
	cmd.Flags().StringVar(&filter, "filter", "", "alarm filter expression, e.g. \"priority != 'Journal'\"")
	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet of wide-excel profiles (default: active sheet)")
	return cmd
}

func (a *AppRunner) reverseCommand() *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Merge a rationalized PHA-Pro export back into the DCS import format",
		Long:  reverseHelp(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.resolveProfile(pf.client, pf.area)
			if err != nil {
				return err
			}
			if err := pf.requireOutput(); err != nil {
				return err
			}
			export, err := a.readExport(cmd.Context(), pf.input)
			if err != nil {
				return err
			}
			ds, err := a.loadDataset(cmd.Context(), pf.source, pf.sourceQuery)
			if err != nil {
				return err
			}
			table, stats, err := transform.Reverse(export, ds, p, pf.modes)
			if err != nil {
				return err
			}
			a.logStats(stats)
			return a.writeTable(table, pf.output)
		},
	}
	pf.bindClient(cmd)
	pf.bindIO(cmd, "PHA-Pro export CSV", "DCS import CSV to write")
	pf.bindSource(cmd)
	pf.bindModes(cmd)
	return cmd
}

func (a *AppRunner) abbReturnCommand() *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "abb-return",
		Short: "Convert a PHA-Pro ABB export into the 8-column ABB return CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pf.requireOutput(); err != nil {
				return err
			}
			export, err := a.readExport(cmd.Context(), pf.input)
			if err != nil {
				return err
			}
			table, stats, err := transform.ABBReturn(export)
			if err != nil {
				return err
			}
			a.logStats(stats)
			return a.writeTable(table, pf.output)
		},
	}
	pf.bindIO(cmd, "PHA-Pro ABB export CSV", "ABB return CSV to write")
	return cmd
}

func (a *AppRunner) reportCommand() *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a workbook listing the fields a reverse merge would change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.resolveProfile(pf.client, pf.area)
			if err != nil {
				return err
			}
			if err := pf.requireOutput(); err != nil {
				return err
			}
			export, err := a.readExport(cmd.Context(), pf.input)
			if err != nil {
				return err
			}
			ds, err := a.loadDataset(cmd.Context(), pf.source, pf.sourceQuery)
			if err != nil {
				return err
			}
			report, err := transform.BuildChangeReport(export, ds, p, pf.modes)
			if err != nil {
				return err
			}
			if a.dryRun {
				logging.Logf(logging.Info, "DRY RUN: Skip write. Would report %d changed alarms to %s.", len(report.Records), pf.output)
				return nil
			}
			sheets := []bridgeio.Sheet{
				{Name: transform.ReportSheetName, Rows: report.DetailRows()},
				{Name: transform.SummarySheetName, Rows: report.SummaryRows()},
			}
			if err := newWorkbookWriterFunc().Write(sheets, util.ExpandEnvUniversal(pf.output)); err != nil {
				return err
			}
			logging.Logf(logging.Info, "Wrote change report with %d changed alarms to %s.", len(report.Records), pf.output)
			return nil
		},
	}
	pf.bindClient(cmd)
	pf.bindIO(cmd, "PHA-Pro export CSV", "change report workbook (.xlsx) to write")
	pf.bindSource(cmd)
	pf.bindModes(cmd)
	return cmd
}

func (a *AppRunner) unitsCommand() *cobra.Command {
	var (
		pf     profileFlags
		digits int
	)
	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the units found in a DCS export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if digits == 0 && pf.client != "" {
				p, err := a.resolveProfile(pf.client, pf.area)
				if err != nil {
					return err
				}
				digits = p.UnitDigitCount
			}
			records, err := a.readRecords(cmd.Context(), pf.input, pf.sourceQuery)
			if err != nil {
				return err
			}
			scan := transform.ScanUnits(records, digits)
			if len(scan.ByTagPrefix) == 0 && len(scan.ByAssetPath) == 0 {
				return eris.Wrap(ErrNoRows, "no _DCSVariable rows found")
			}
			fmt.Fprintf(a.out, "Units by tag prefix: %s\n", joinOrNone(scan.ByTagPrefix))
			fmt.Fprintf(a.out, "Units by asset path: %s\n", joinOrNone(scan.ByAssetPath))
			return nil
		},
	}
	pf.bindClient(cmd)
	cmd.Flags().StringVarP(&pf.input, "input", "i", "", "DCS export CSV")
	cmd.Flags().StringVar(&pf.sourceQuery, "source-query", "", "SQL query returning the DCS export rows (needs --source-db)")
	cmd.Flags().IntVar(&digits, "digits", 0, "leading digits forming a tag-prefix unit (default: profile or 2)")
	return cmd
}

func (a *AppRunner) profilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the client profiles and their areas",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, id := range a.registry.IDs() {
				p, _ := a.registry.Get(id)
				fmt.Fprintf(a.out, "%s\t%s\n", p.ID, p.DisplayName)
				fmt.Fprintf(a.out, "  vendor: %s  parser: %s  schema: %s (%d columns)  unit method: %s\n",
					p.Vendor, p.ParserKind, p.OutputSchema, len(transform.Headers(p.OutputSchema)), p.UnitMethod)
				areas := a.registry.Areas(id)
				for _, areaID := range a.registry.AreaIDs(id) {
					fmt.Fprintf(a.out, "  area %s: %s\n", areaID, areas[areaID])
				}
			}
			return nil
		},
	}
}

// reverseHelp lists the PHA-Pro columns the merge needs.
func reverseHelp() string {
	var b strings.Builder
	b.WriteString("Merge a rationalized PHA-Pro export back into the DCS import format.\n\nRequired export columns:\n")
	for _, c := range transform.ReverseRequiredColumns(config.SchemaVariantB) {
		fmt.Fprintf(&b, "  %-38s %s\n", c.Name, c.Purpose)
	}
	return b.String()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
