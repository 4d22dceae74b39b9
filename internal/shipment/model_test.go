package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"seeking to assigned", StatusSeekingCarrier, StatusAssigned, true},
		{"assigned to finalized", StatusAssigned, StatusFinalized, true},
		{"seeking to finalized skips a step", StatusSeekingCarrier, StatusFinalized, false},
		{"assigned back to seeking", StatusAssigned, StatusSeekingCarrier, false},
		{"finalized is terminal", StatusFinalized, StatusAssigned, false},
		{"finalized to finalized", StatusFinalized, StatusFinalized, false},
		{"unknown status", Status("LOST"), StatusAssigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
