package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurgeOptions_Ignorable(t *testing.T) {
	opts := PurgeOptions{IgnoreExitCodes: []int{1, 2}}
	assert.True(t, opts.Ignorable(1))
	assert.True(t, opts.Ignorable(2))
	assert.False(t, opts.Ignorable(3))
	assert.False(t, opts.Ignorable(0))
	assert.False(t, PurgeOptions{}.Ignorable(1))
}

func TestPruneRequest_Validate(t *testing.T) {
	valid := PruneRequest{Datasets: []string{"tank/home"}, Policy: DefaultRetentionPolicy()}

	tests := []struct {
		name    string
		mutate  func(r *PruneRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*PruneRequest) {}},
		{name: "no datasets", mutate: func(r *PruneRequest) { r.Datasets = nil }, wantErr: ErrNoDatasets},
		{name: "empty dataset", mutate: func(r *PruneRequest) { r.Datasets = []string{""} }, wantErr: ErrInvalidDataset},
		{name: "negative keep", mutate: func(r *PruneRequest) { r.Policy.Days = -2 }, wantErr: ErrInvalidKeepCount},
		{name: "negative cap", mutate: func(r *PruneRequest) { r.Options.MaxPurge = -1 }, wantErr: ErrInvalidMaxPurge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestRunReport_Totals(t *testing.T) {
	report := RunReport{Datasets: []DatasetReport{
		{Dataset: "a", Purged: 2},
		{Dataset: "b", Purged: 3},
	}}
	assert.Equal(t, 5, report.TotalPurged())
	assert.True(t, report.Succeeded())

	report.Datasets[1].Error = "boom"
	assert.False(t, report.Succeeded())
}
