package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bnema/zprune/internal/app"
	inmocks "github.com/bnema/zprune/internal/boundaries/in/mocks"
	"github.com/bnema/zprune/internal/domain"
)

func sampleReport() *domain.RunReport {
	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	return &domain.RunReport{
		RunID:     "run-1",
		DryRun:    true,
		StartedAt: day(14),
		Duration:  1500 * time.Millisecond,
		Policy:    domain.DefaultRetentionPolicy(),
		Datasets: []domain.DatasetReport{
			{
				Dataset:    "tank/home",
				Listed:     4,
				Unparsed:   1,
				Kept:       2,
				WouldPurge: 1,
				Deferred:   1,
				CapReached: true,
				Decisions: []domain.Decision{
					{Snapshot: "2024-03-01", Timestamp: day(1), Action: domain.ActionDefer},
					{Snapshot: "2024-03-02", Timestamp: day(2), Action: domain.ActionWouldPurge},
					{Snapshot: "2024-03-12", Timestamp: day(12), Action: domain.ActionKeep, Reasons: domain.KeepReasons{domain.ReasonDay}},
					{Snapshot: "2024-03-13", Timestamp: day(13), Action: domain.ActionKeep, Reasons: domain.KeepReasons{domain.ReasonLatest, domain.ReasonDay}},
				},
			},
		},
	}
}

func TestWriteTextReport_WithDecisions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeReport(&out, sampleReport(), reportView{format: app.OutputText, decisions: true}))

	text := out.String()
	assert.Contains(t, text, "Dry run: nothing was destroyed")
	assert.Contains(t, text, "tank/home")
	assert.Contains(t, text, "SNAPSHOT")
	assert.Contains(t, text, "2024-03-13 00:00:00")
	assert.Contains(t, text, "would-purge")
	assert.Contains(t, text, "deferred")
	assert.Contains(t, text, "latest,day")
	assert.Contains(t, text, "Max purge reached, 1 candidates deferred")
	assert.Contains(t, text, "1 snapshots would be purged")
}

func TestWriteTextReport_SummaryOnly(t *testing.T) {
	report := sampleReport()
	report.DryRun = false
	report.Datasets[0].WouldPurge = 0
	report.Datasets[0].Purged = 1

	var out bytes.Buffer
	require.NoError(t, writeReport(&out, report, reportView{format: app.OutputText}))

	text := out.String()
	assert.NotContains(t, text, "SNAPSHOT")
	assert.Contains(t, text, "listed 4")
	assert.Contains(t, text, "purged 1")
	assert.Contains(t, text, "unparsed 1")
	assert.NotContains(t, text, "skipped")
	assert.Contains(t, text, "Purged 1 snapshots in 1.5s")
}

func TestWriteTextReport_FailedDataset(t *testing.T) {
	report := &domain.RunReport{
		RunID: "run-9",
		Datasets: []domain.DatasetReport{
			{Dataset: "tank/a", Error: "list snapshots of tank/a: exit code 1: dataset does not exist"},
			{Dataset: "tank/b", Kept: 1, Purged: 2},
		},
	}

	var out bytes.Buffer
	require.NoError(t, writeReport(&out, report, reportView{format: app.OutputText}))

	text := out.String()
	assert.Contains(t, text, "dataset does not exist")
	assert.Contains(t, text, "Run run-9 failed after purging 2 snapshots")
}

func TestWriteReport_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeReport(&out, sampleReport(), reportView{format: app.OutputJSON}))

	var decoded struct {
		RunID    string `json:"run_id"`
		DryRun   bool   `json:"dry_run"`
		Datasets []struct {
			Dataset    string `json:"dataset"`
			CapReached bool   `json:"cap_reached"`
			Decisions  []struct {
				Snapshot string   `json:"snapshot"`
				Action   string   `json:"action"`
				Reasons  []string `json:"reasons"`
			} `json:"decisions"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, "run-1", decoded.RunID)
	assert.True(t, decoded.DryRun)
	require.Len(t, decoded.Datasets, 1)
	assert.True(t, decoded.Datasets[0].CapReached)
	require.Len(t, decoded.Datasets[0].Decisions, 4)
	assert.Equal(t, "would-purge", decoded.Datasets[0].Decisions[1].Action)
	assert.Equal(t, []string{"latest", "day"}, decoded.Datasets[0].Decisions[3].Reasons)
}

func TestWriteReport_YAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeReport(&out, sampleReport(), reportView{format: app.OutputYAML}))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, true, decoded["dry_run"])
	assert.Contains(t, out.String(), "action: would-purge")
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	err := writeReport(&bytes.Buffer{}, sampleReport(), reportView{format: "xml"})
	require.Error(t, err)
}

func TestDecisionReason(t *testing.T) {
	tests := []struct {
		name     string
		decision domain.Decision
		want     string
	}{
		{name: "reasons", decision: domain.Decision{Reasons: domain.KeepReasons{domain.ReasonWeek, domain.ReasonMonth}}, want: "week,month"},
		{name: "exit code with stderr", decision: domain.Decision{ExitCode: 1, Detail: "dataset is busy"}, want: "exit 1: dataset is busy"},
		{name: "exit code only", decision: domain.Decision{ExitCode: 2}, want: "exit 2"},
		{name: "detail only", decision: domain.Decision{Detail: "signal: killed"}, want: "signal: killed"},
		{name: "nothing", decision: domain.Decision{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decisionReason(tt.decision))
		})
	}
}

func TestRunPrune_WritesPartialReportOnError(t *testing.T) {
	listErr := &domain.ListingError{Dataset: "tank/a", ExitCode: 1, Stderr: "no such dataset"}
	report := &domain.RunReport{
		RunID:    "run-5",
		Datasets: []domain.DatasetReport{{Dataset: "tank/a", Error: listErr.Error()}},
	}

	svc := inmocks.NewMockPruneService(t)
	svc.EXPECT().Prune(mock.Anything, mock.Anything).Return(report, listErr).Once()

	var out bytes.Buffer
	err := runPrune(context.Background(), svc, domain.PruneRequest{Datasets: []string{"tank/a"}}, reportView{format: app.OutputText}, &out)
	assert.ErrorIs(t, err, domain.ErrListingFailed)
	assert.Contains(t, out.String(), "no such dataset")
}

func TestRunPrune_NoReport(t *testing.T) {
	svc := inmocks.NewMockPruneService(t)
	svc.EXPECT().Prune(mock.Anything, mock.Anything).Return(nil, domain.ErrNoDatasets).Once()

	var out bytes.Buffer
	err := runPrune(context.Background(), svc, domain.PruneRequest{}, reportView{format: app.OutputText}, &out)
	assert.ErrorIs(t, err, domain.ErrNoDatasets)
	assert.Empty(t, out.String())
}

func TestRunPrune_WriteFailure(t *testing.T) {
	svc := inmocks.NewMockPruneService(t)
	svc.EXPECT().Prune(mock.Anything, mock.Anything).Return(sampleReport(), nil).Once()

	err := runPrune(context.Background(), svc, domain.PruneRequest{}, reportView{format: app.OutputJSON}, failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
