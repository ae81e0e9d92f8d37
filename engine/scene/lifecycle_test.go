package scene

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  State
		to    State
		valid bool
	}{
		{"initialize", StateUninitialized, StateInitialized, true},
		{"first tick", StateInitialized, StateRunning, true},
		{"dispose before first tick", StateInitialized, StateShuttingDown, true},
		{"dispose while running", StateRunning, StateShuttingDown, true},
		{"skip initialize", StateUninitialized, StateRunning, false},
		{"dispose uninitialized", StateUninitialized, StateShuttingDown, false},
		{"reinitialize", StateRunning, StateInitialized, false},
		{"restart after shutdown", StateShuttingDown, StateInitialized, false},
		{"shutdown twice", StateShuttingDown, StateShuttingDown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &lifecycle{state: tt.from}
			err := l.transition(tt.to)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.to, l.State())
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
			assert.Contains(t, err.Error(), tt.from.String()+" -> "+tt.to.String())
			assert.Equal(t, tt.from, l.State())
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "shutting_down", StateShuttingDown.String())
	assert.Equal(t, "unknown", State(42).String())
}
