package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingError_Is(t *testing.T) {
	err := error(&ListingError{Dataset: "tank/home", ExitCode: 1, Stderr: "dataset does not exist\n"})

	assert.True(t, errors.Is(err, ErrListingFailed))
	assert.Equal(t, "list snapshots of tank/home: exit code 1: dataset does not exist", err.Error())

	var listingErr *ListingError
	assert.True(t, errors.As(err, &listingErr))
	assert.Equal(t, "tank/home", listingErr.Dataset)
}

func TestDestroyError_UnwrapsCause(t *testing.T) {
	err := error(&DestroyError{Snapshot: "tank/home@a", Err: context.Canceled})

	assert.True(t, errors.Is(err, ErrDestroyFailed))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "destroy tank/home@a: context canceled", err.Error())
}
