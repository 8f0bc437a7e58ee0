// Package zfs implements the snapshot ports on top of the zfs command line.
package zfs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/bnema/zerowrap"

	"github.com/bnema/zprune/internal/boundaries/out"
	"github.com/bnema/zprune/internal/domain"
)

// DefaultBinary is the zfs executable looked up in PATH.
const DefaultBinary = "zfs"

// Client lists and destroys snapshots with the zfs CLI.
type Client struct {
	runner out.CommandRunner
	binary string
}

// NewClient creates a zfs client. An empty binary means DefaultBinary.
func NewClient(runner out.CommandRunner, binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{runner: runner, binary: binary}
}

// ListSnapshots returns the direct snapshots of dataset ordered by creation.
// Any exit code or stderr output is a *domain.ListingError.
func (c *Client) ListSnapshots(ctx context.Context, dataset string) ([]domain.SnapshotRef, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "zfs",
		zerowrap.FieldAction:  "list",
	})
	log := zerowrap.FromCtx(ctx)

	if err := validateName(dataset); err != nil {
		return nil, &domain.ListingError{Dataset: dataset, Err: err}
	}

	res, err := c.runner.Run(ctx, c.binary, "list", "-H", "-t", "snapshot", "-o", "name", "-s", "creation", "-d", "1", dataset)
	if err != nil {
		return nil, &domain.ListingError{Dataset: dataset, Err: err}
	}
	if res.ExitCode != 0 || len(bytes.TrimSpace(res.Stderr)) > 0 {
		return nil, &domain.ListingError{
			Dataset:  dataset,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
	}

	refs := make([]domain.SnapshotRef, 0)
	scanner := bufio.NewScanner(bytes.NewReader(res.Stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, dataset+domain.SnapshotSeparator) {
			log.Debug().Str("line", line).Msg("ignoring listing line outside dataset")
			continue
		}
		refs = append(refs, domain.NewSnapshotRef(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.ListingError{Dataset: dataset, Err: err}
	}

	log.Debug().Str("dataset", dataset).Int(zerowrap.FieldCount, len(refs)).Msg("snapshots listed")
	return refs, nil
}

// Destroy runs "zfs destroy" on a single snapshot. Names without a snapshot
// separator are refused so a dataset can never be destroyed by mistake.
func (c *Client) Destroy(ctx context.Context, fullName string) (domain.DestroyResult, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:    "adapter",
		zerowrap.FieldAdapter:  "zfs",
		zerowrap.FieldAction:   "destroy",
		zerowrap.FieldEntityID: fullName,
	})
	log := zerowrap.FromCtx(ctx)

	if err := validateName(fullName); err != nil {
		return domain.DestroyResult{}, err
	}
	dataset, snap, ok := strings.Cut(fullName, domain.SnapshotSeparator)
	if !ok || dataset == "" || snap == "" {
		return domain.DestroyResult{}, fmt.Errorf("refusing to destroy %q: not a snapshot name", fullName)
	}

	res, err := c.runner.Run(ctx, c.binary, "destroy", fullName)
	if err != nil {
		return domain.DestroyResult{}, err
	}

	result := domain.DestroyResult{
		ExitCode: res.ExitCode,
		Stderr:   strings.TrimSpace(string(res.Stderr)),
	}
	log.Debug().Int("exit_code", result.ExitCode).Msg("destroy finished")
	return result, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidDataset)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: %q starts with '-'", domain.ErrInvalidDataset, name)
	}
	if strings.ContainsAny(name, "\n\t") {
		return fmt.Errorf("%w: %q contains whitespace control characters", domain.ErrInvalidDataset, name)
	}
	return nil
}
