package newsletter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlowSubmitEmail(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, FlowIdle, f.Status)

	assert.True(t, f.SubmitEmail("someone@example.com"))
	assert.Equal(t, FlowPending, f.Status)
	assert.Equal(t, "someone@example.com", f.Email)
}

func TestFlowEmptyEmailIsIgnored(t *testing.T) {
	f := NewFlow()
	assert.False(t, f.SubmitEmail(""))
	assert.Equal(t, FlowIdle, f.Status)
}

func TestFlowSuccessfulCode(t *testing.T) {
	f := NewFlow()
	f.SubmitEmail("someone@example.com")
	f.Code = "ABC234"

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.SubmitCode(true, now)

	assert.Equal(t, FlowVerified, f.Status)
	assert.Empty(t, f.Email)
	assert.Empty(t, f.Code)
	assert.Empty(t, f.Message)
	assert.Equal(t, now.Add(DismissDelay), f.DismissAt)
}

func TestFlowWrongCodeKeepsEmailForRetry(t *testing.T) {
	f := NewFlow()
	f.SubmitEmail("someone@example.com")
	f.Code = "WRONG1"

	f.SubmitCode(false, time.Now())

	assert.Equal(t, FlowError, f.Status)
	assert.Equal(t, "someone@example.com", f.Email)
	assert.Empty(t, f.Code)
	assert.Equal(t, "invalid code", f.Message)
	assert.True(t, f.DismissAt.IsZero())

	// retry re-arms the pending state without re-subscribing
	f.Retry()
	assert.Equal(t, FlowPending, f.Status)
	assert.Equal(t, "someone@example.com", f.Email)
	assert.Empty(t, f.Message)
}

func TestFlowRetryOnlyFromError(t *testing.T) {
	f := NewFlow()
	f.Retry()
	assert.Equal(t, FlowIdle, f.Status)

	f.SubmitEmail("someone@example.com")
	f.Retry()
	assert.Equal(t, FlowPending, f.Status)
}

func TestDismissDelayIsFourSeconds(t *testing.T) {
	assert.Equal(t, 4*time.Second, DismissDelay)
}
