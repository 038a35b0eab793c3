package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessResultDefaultsMetadata(t *testing.T) {
	r := SuccessResult("data", []string{"next"}, nil)
	assert.True(t, r.Success)
	assert.NotNil(t, r.Metadata)
}

func TestErrorResultDefaultsMetadata(t *testing.T) {
	r := ErrorResult("boom", ErrProcessingError, nil)
	assert.False(t, r.Success)
	assert.Equal(t, ErrProcessingError, r.ErrorCode)
	assert.NotNil(t, r.Metadata)
}

func TestResultWithMetadataChains(t *testing.T) {
	r := SuccessResult(nil, nil, nil).WithMetadata("k", "v").WithMetadata("k2", 2)
	assert.Equal(t, "v", r.Metadata["k"])
	assert.Equal(t, 2, r.Metadata["k2"])
}
