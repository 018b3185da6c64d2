package models

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRankOrdersMostUrgentFirst(t *testing.T) {
	severities := []string{SeverityLow, SeverityCritical, SeverityMedium, "WEIRD", SeverityHigh}
	sort.Slice(severities, func(i, j int) bool {
		return SeverityRank(severities[i]) < SeverityRank(severities[j])
	})
	assert.Equal(t, []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, "WEIRD"}, severities)
}
