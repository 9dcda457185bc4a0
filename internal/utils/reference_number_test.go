package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/remitflow/remit_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceFormat = regexp.MustCompile(`^RF-\d{14}-[0-9A-F]{8}$`)

func TestGenerateReferenceNumber_Format(t *testing.T) {
	now := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	ref, err := utils.GenerateReferenceNumber(now)

	require.NoError(t, err)
	assert.Regexp(t, referenceFormat, ref)
	assert.Contains(t, ref, "RF-20260815093000-")
}

func TestGenerateReferenceNumber_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 8, 15, 14, 30, 0, 0, loc)

	ref, err := utils.GenerateReferenceNumber(local)

	require.NoError(t, err)
	assert.Contains(t, ref, "RF-20260815093000-")
}

func TestGenerateReferenceNumber_DistinctSuffixes(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := utils.GenerateReferenceNumber(now)
		require.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
