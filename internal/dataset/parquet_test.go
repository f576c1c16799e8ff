package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/types"
)

func TestParquetRoundTrip(t *testing.T) {
	in := []types.CallRecord{
		{
			CallID:            "CA1",
			StartOfCall:       time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC),
			SkillGroup:        "Support",
			PrimaryTopic:      "Billing",
			SecondaryTopic:    "Refund",
			Summary:           "refund request",
			RawTranscript:     "agent: hello",
			AgentName:         "Ana",
			AgentManager:      "Mia",
			TalkTime:          120,
			HoldTime:          15,
			AfterCallWorkTime: 30,
			UserResponse:      "billing",
			Intent:            "billing_inquiry",
			IntentScore:       0.91,
		},
		{
			CallID:      "CA2",
			StartOfCall: time.Date(2024, 3, 1, 18, 40, 0, 0, time.UTC),
			SkillGroup:  "Support",
		},
	}

	p := filepath.Join(t.TempDir(), "calls.parquet")
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, WriteParquet(f, in))
	require.NoError(t, f.Close())

	out, err := Load(context.Background(), p, Options{Log: quietLogger()})
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.True(t, in[i].StartOfCall.Equal(out[i].StartOfCall), "row %d start", i)
		out[i].StartOfCall = in[i].StartOfCall
		assert.Equal(t, in[i], out[i])
	}
}
