package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"alarm-bridge/internal/config"
	bridgeio "alarm-bridge/internal/io"
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"
	"alarm-bridge/internal/transform"
	"alarm-bridge/internal/util"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Define common application-level errors.
var (
	ErrUsage           = errors.New("usage error")
	ErrProfileNotFound = errors.New("profile file not found")
	ErrMissingArgs     = errors.New("missing required arguments")
	ErrNoRows          = errors.New("no rows processed")
)

// Exit codes returned by the command line tool.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitInput   = 3
	ExitNoRows  = 4
)

// wideReader reads ABB style workbooks.
type wideReader interface {
	Read(filePath string, alarmTypes []config.ABBAlarmType) ([]model.WideTag, error)
}

// workbookWriter writes multi-sheet workbooks.
type workbookWriter interface {
	Write(sheets []bridgeio.Sheet, filePath string) error
}

// --- Factory Variables (Allow Overriding for Testing) ---
var (
	newRecordSourceFunc   = bridgeio.NewRecordSource
	newExportSourceFunc   = func(path string) bridgeio.RecordSource { return bridgeio.NewCSVFileSource(path) }
	newTableWriterFunc    = func() bridgeio.TableWriter { return bridgeio.NewCSVTableWriter() }
	newWideReaderFunc     = func(sheet string) wideReader { return bridgeio.NewWideWorkbookReader(sheet) }
	newWorkbookWriterFunc = func() workbookWriter { return bridgeio.NewWorkbookWriter() }
	loadProfilesFunc      = config.LoadProfiles
	newRunIDFunc          = uuid.NewString

	osStatFunc = os.Stat
)

// AppRunner encapsulates the command tree and the state of one invocation.
type AppRunner struct {
	out      io.Writer
	settings *Settings
	registry *config.Registry
	log      *zap.Logger
	dryRun   bool
}

// NewAppRunner creates a runner printing command output to stdout.
func NewAppRunner() *AppRunner {
	return &AppRunner{out: os.Stdout}
}

// SetOutput redirects the output of the listing commands.
func (a *AppRunner) SetOutput(w io.Writer) {
	a.out = w
}

// Usage prints the command-line help to the specified writer.
func (a *AppRunner) Usage(writer io.Writer) {
	root := a.rootCommand()
	root.SetOut(writer)
	_ = root.Usage()
}

// Run parses args and executes the selected command.
func (a *AppRunner) Run(args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	err := root.ExecuteContext(context.Background())
	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return err
}

// ExitCode maps a Run error to the process exit code.
func ExitCode(err error) int {
	var missing *transform.MissingColumnsError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage), errors.Is(err, ErrMissingArgs), errors.Is(err, ErrProfileNotFound):
		return ExitUsage
	case errors.As(err, &missing), errors.Is(err, transform.ErrSourceRequired),
		errors.Is(err, normalize.ErrUndecodable), errors.Is(err, transform.ErrWrongLayout),
		errors.Is(err, config.ErrUnknownClient), errors.Is(err, config.ErrUnknownArea):
		return ExitInput
	case errors.Is(err, ErrNoRows):
		return ExitNoRows
	default:
		return ExitFailure
	}
}

// setup loads settings and profiles and starts the run logger. It runs before every command.
func (a *AppRunner) setup(cmd *cobra.Command, settingsFile string) error {
	s, err := LoadSettings(cmd, settingsFile)
	if err != nil {
		return err
	}
	a.settings = s
	logging.SetupLogging(s.Log.Level)

	runID := newRunIDFunc()
	a.log = logging.With(zap.String("run_id", runID), zap.String("command", cmd.Name()))
	a.log.Debug("command started")

	a.registry = config.DefaultRegistry()
	if s.Profiles.File != "" {
		file := util.ExpandEnvUniversal(s.Profiles.File)
		if _, err := osStatFunc(file); err != nil {
			if os.IsNotExist(err) {
				return eris.Wrapf(ErrProfileNotFound, "'%s'", file)
			}
			return eris.Wrapf(err, "failed to stat profile file '%s'", file)
		}
		reg, err := loadProfilesFunc(file)
		if err != nil {
			return err
		}
		a.registry = reg
		logging.Logf(logging.Info, "Loaded client profiles from %s: %v", file, reg.IDs())
	}
	return nil
}

// resolveProfile returns the client profile with the area merged in.
func (a *AppRunner) resolveProfile(client, area string) (*config.ClientProfile, error) {
	if strings.TrimSpace(client) == "" {
		return nil, eris.Wrapf(ErrMissingArgs, "--client is required (known: %v)", a.registry.IDs())
	}
	p, err := a.registry.Resolve(client, area)
	if err != nil {
		return nil, err
	}
	logging.Logf(logging.Info, "Using client profile: %s", p.DisplayName)
	return p, nil
}

// readRecords loads CSV-shaped records from a file, or from the database when query is set.
func (a *AppRunner) readRecords(ctx context.Context, path, query string) ([][]string, error) {
	src, err := newRecordSourceFunc(util.ExpandEnvUniversal(path), a.settings.DB.URL, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingArgs, err)
	}
	logging.Logf(logging.Info, "Reading %s...", src.Describe())
	records, err := src.Records(ctx)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", src.Describe())
	}
	logging.Logf(logging.Info, "Read %d records.", len(records))
	return records, nil
}

// loadDataset reads the original DCS export. It returns a nil dataset when no source was given,
// leaving the reverse transforms to report the missing merge base.
func (a *AppRunner) loadDataset(ctx context.Context, path, query string) (*model.Dataset, error) {
	records, err := a.readRecords(ctx, path, query)
	if errors.Is(err, bridgeio.ErrNoSource) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bridgeio.BuildDataset(records), nil
}

// readExport reads a PHA-Pro export CSV.
func (a *AppRunner) readExport(ctx context.Context, path string) ([][]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, eris.Wrap(ErrMissingArgs, "--input is required")
	}
	src := newExportSourceFunc(util.ExpandEnvUniversal(path))
	records, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	if enc, ok := src.(interface{ Encoding() string }); ok {
		logging.Logf(logging.Debug, "PHA-Pro export decoded as %s", enc.Encoding())
	}
	logging.Logf(logging.Info, "Read %d PHA-Pro export records from %s.", len(records), src.Describe())
	return records, nil
}

// writeTable writes the output table unless this is a dry run.
func (a *AppRunner) writeTable(table *model.Table, output string) error {
	if len(table.Rows) == 0 {
		return eris.Wrap(ErrNoRows, "transform produced no output rows")
	}
	if a.dryRun {
		logging.Logf(logging.Info, "DRY RUN: Skip write. Would write %d rows to %s.", len(table.Rows), output)
		sampleSize := min(5, len(table.Rows))
		for i := 0; i < sampleSize; i++ {
			logging.Logf(logging.Debug, "Row %d: %s", i, util.Truncate(strings.Join(table.Rows[i], ","), 200))
		}
		return nil
	}
	enc, err := newTableWriterFunc().WriteTable(table, util.ExpandEnvUniversal(output))
	if err != nil {
		return err
	}
	logging.Logf(logging.Info, "Wrote %d rows to %s (%s).", len(table.Rows), output, enc)
	return nil
}

// logStats reports the run counters on the run logger.
func (a *AppRunner) logStats(stats model.Stats) {
	a.log.Info("transform complete",
		zap.Int("tags", stats.TagsProcessed),
		zap.Int("alarms", stats.AlarmsProcessed),
		zap.Strings("units", stats.Units),
		zap.Int("skipped_modes", stats.SkippedModes),
		zap.Int("filtered", stats.Filtered),
		zap.Int("updated", stats.Updated),
		zap.Int("not_found", stats.NotFound),
	)
}
