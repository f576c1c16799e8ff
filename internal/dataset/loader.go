package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"call-insights-go/internal/logger"
	"call-insights-go/internal/types"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrNoDataRows        = errors.New("no data rows")
)

// Options tunes how a dataset is loaded.
type Options struct {
	// FetchTimeout bounds the retries of a remote download.
	FetchTimeout time.Duration
	Log          *logger.Logger
}

// Load reads the call table from path. The format is picked from the file
// extension (.csv, .xlsx, .parquet); http(s) URLs are downloaded first.
func Load(ctx context.Context, src string, opts Options) ([]types.CallRecord, error) {
	log := opts.Log
	if log == nil {
		log = logger.New("", "")
	}
	log = log.Component("dataset.loader")

	if IsRemote(src) {
		local, err := Fetch(ctx, src, opts.FetchTimeout, log)
		if err != nil {
			return nil, err
		}
		defer func() { _ = os.Remove(local) }()
		return loadFile(local, log.With("source", src))
	}
	return loadFile(src, log.With("source", src))
}

func loadFile(p string, log *logger.Logger) ([]types.CallRecord, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".csv":
		return LoadCSV(p, log)
	case ".xlsx":
		return LoadXLSX(p, log)
	case ".parquet":
		return LoadParquet(p)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, p)
}

// LoadCSV reads a comma-separated export with a header row.
func LoadCSV(p string, log *logger.Logger) ([]types.CallRecord, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f, log)
}

// ReadCSV parses CSV rows from r.
func ReadCSV(r io.Reader, log *logger.Logger) ([]types.CallRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return fromRows(rows, log)
}

// LoadXLSX reads the first sheet of a workbook.
func LoadXLSX(p string, log *logger.Logger) ([]types.CallRecord, error) {
	f, err := excelize.OpenFile(p)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return fromRows(rows, log)
}

// fromRows maps a header row plus data rows onto call records. Rows whose
// start time cannot be parsed are skipped and counted.
func fromRows(rows [][]string, log *logger.Logger) ([]types.CallRecord, error) {
	if len(rows) <= 1 {
		return nil, ErrNoDataRows
	}
	cols := mapColumns(rows[0])
	for _, required := range []column{colCallID, colStartOfCall, colSkillGroup} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	log.WithField("columns", len(cols)).Debug("detected dataset columns")

	out := make([]types.CallRecord, 0, len(rows)-1)
	skipped := 0
	for i, r := range rows[1:] {
		cell := func(c column) string {
			idx, ok := cols[c]
			if !ok || idx >= len(r) {
				return ""
			}
			return strings.TrimSpace(r[idx])
		}
		if len(r) == 0 || cell(colCallID) == "" && cell(colStartOfCall) == "" {
			continue
		}
		start, err := ParseTimestamp(cell(colStartOfCall))
		if err != nil {
			skipped++
			log.WithField("row", i+2).WithError(err).Debug("skipping row with unparseable start time")
			continue
		}
		out = append(out, types.CallRecord{
			CallID:            cell(colCallID),
			StartOfCall:       start,
			SkillGroup:        cell(colSkillGroup),
			PrimaryTopic:      cell(colPrimaryTopic),
			SecondaryTopic:    cell(colSecondaryTopic),
			Summary:           cell(colSummary),
			RawTranscript:     cell(colTranscript),
			AgentName:         cell(colAgentName),
			AgentManager:      cell(colAgentManager),
			TalkTime:          parseFloat(cell(colTalkTime)),
			HoldTime:          parseFloat(cell(colHoldTime)),
			AfterCallWorkTime: parseFloat(cell(colACWTime)),
			UserResponse:      cell(colUserResponse),
			Intent:            cell(colIntent),
			IntentScore:       parseFloat(cell(colIntentScore)),
		})
	}
	if skipped > 0 {
		log.WithField("skipped_rows", skipped).Warn("skipped rows with invalid start_of_call")
	}
	log.WithField("records", len(out)).Info("dataset loaded")
	return out, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp shapes found in exports and returns
// UTC. Values without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
