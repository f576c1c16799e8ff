package dataset

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"call-insights-go/internal/types"
)

// CallRow is the Parquet layout of a call record. Column names follow the
// analytics export so files round-trip with the CSV source.
type CallRow struct {
	CallSID                 string    `parquet:"call_sid,snappy"`
	StartOfCall             time.Time `parquet:"Start_of_Call,snappy"`
	SkillGroupName          string    `parquet:"skillGroupName,snappy,dict"`
	PrimaryEstimatedTopic   string    `parquet:"Primary_Estimated_Topic,snappy,dict"`
	SecondaryEstimatedTopic string    `parquet:"Secondary_Estimated_Topic,snappy,dict"`
	CleanSummary            string    `parquet:"clean_summary,snappy"`
	OutputText              string    `parquet:"output_text,snappy"`
	WorkerName              string    `parquet:"workerName,snappy,dict"`
	WorkerManager           string    `parquet:"workerManager,snappy,dict"`
	TalkTime                float64   `parquet:"talkTime,snappy"`
	HoldTime                float64   `parquet:"holdTime,snappy"`
	ACWTime                 float64   `parquet:"acwTime,snappy"`
	UserResponse            string    `parquet:"User_Response,snappy"`
	Intent                  string    `parquet:"Intent,snappy,dict"`
	IntentScore             float64   `parquet:"Intent_Score,snappy"`
}

func toRow(r types.CallRecord) CallRow {
	return CallRow{
		CallSID:                 r.CallID,
		StartOfCall:             r.StartOfCall.UTC(),
		SkillGroupName:          r.SkillGroup,
		PrimaryEstimatedTopic:   r.PrimaryTopic,
		SecondaryEstimatedTopic: r.SecondaryTopic,
		CleanSummary:            r.Summary,
		OutputText:              r.RawTranscript,
		WorkerName:              r.AgentName,
		WorkerManager:           r.AgentManager,
		TalkTime:                r.TalkTime,
		HoldTime:                r.HoldTime,
		ACWTime:                 r.AfterCallWorkTime,
		UserResponse:            r.UserResponse,
		Intent:                  r.Intent,
		IntentScore:             r.IntentScore,
	}
}

func fromRow(row CallRow) types.CallRecord {
	return types.CallRecord{
		CallID:            row.CallSID,
		StartOfCall:       row.StartOfCall.UTC(),
		SkillGroup:        row.SkillGroupName,
		PrimaryTopic:      row.PrimaryEstimatedTopic,
		SecondaryTopic:    row.SecondaryEstimatedTopic,
		Summary:           row.CleanSummary,
		RawTranscript:     row.OutputText,
		AgentName:         row.WorkerName,
		AgentManager:      row.WorkerManager,
		TalkTime:          row.TalkTime,
		HoldTime:          row.HoldTime,
		AfterCallWorkTime: row.ACWTime,
		UserResponse:      row.UserResponse,
		Intent:            row.Intent,
		IntentScore:       row.IntentScore,
	}
}

// LoadParquet reads every row of a Parquet call table.
func LoadParquet(p string) ([]types.CallRecord, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := parquet.NewGenericReader[CallRow](f)
	defer func() { _ = reader.Close() }()

	rows := make([]CallRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if n == 0 {
		return nil, ErrNoDataRows
	}
	out := make([]types.CallRecord, 0, n)
	for _, row := range rows[:n] {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// WriteParquet writes records to w as a Parquet call table.
func WriteParquet(w io.Writer, records []types.CallRecord) error {
	rows := make([]CallRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, toRow(r))
	}
	writer := parquet.NewGenericWriter[CallRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
