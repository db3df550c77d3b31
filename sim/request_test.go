package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_StepStack_CompletesAtBudget(t *testing.T) {
	// GIVEN a request with a 3-tick network-stack budget
	req := NewRequest(1, 0, 0, 0, 3, 5)

	// WHEN stepped fewer times than the budget
	assert.False(t, req.StepStack())
	assert.False(t, req.StepStack())
	assert.False(t, req.IsStackDone)

	// THEN the third step marks the stage done
	assert.True(t, req.StepStack())
	assert.True(t, req.IsStackDone)
}

func TestRequest_StepApp_CompletesAtBudget(t *testing.T) {
	req := NewRequest(1, 0, 0, 0, 1, 2)
	assert.False(t, req.StepApp())
	assert.True(t, req.StepApp())
	assert.True(t, req.IsAppDone)
}

func TestRequest_StepForward_CompletesAtBudget(t *testing.T) {
	req := NewRequest(1, 0, 0, 4, 1, 1)
	for i := 0; i < 3; i++ {
		if req.StepForward() {
			t.Fatalf("forward stage finished early at step %d", i)
		}
	}
	if !req.StepForward() {
		t.Fatalf("expected forward stage to finish on the 4th step")
	}
}

func TestRequest_Latency_IsDepartureMinusArrival(t *testing.T) {
	req := NewRequest(1, 0, 100, 1, 1, 1)
	req.DepartureTime = 150
	assert.Equal(t, int64(50), req.Latency())
}

func TestNewRequest_StartsWithZeroedProgress(t *testing.T) {
	req := NewRequest(7, 3, 10, 1, 2, 3)
	assert.Equal(t, 7, req.ID)
	assert.Equal(t, uint64(3), req.FlowID)
	assert.False(t, req.IsStackDone)
	assert.False(t, req.IsAppDone)
	assert.False(t, req.IsForwardDone)
	assert.False(t, req.IsDropped)
}
