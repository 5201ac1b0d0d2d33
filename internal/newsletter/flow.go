package newsletter

import "time"

// DismissDelay is how long a successful verification prompt stays visible
// before the client dismisses it.
const DismissDelay = 4 * time.Second

// FlowStatus is the subscribe-and-verify interaction state:
// idle -> pendingVerification -> verified, with pendingVerification ->
// error -> pendingVerification on a wrong code (retry without
// re-subscribing).
type FlowStatus string

const (
	FlowIdle     FlowStatus = "idle"
	FlowPending  FlowStatus = "pendingVerification"
	FlowVerified FlowStatus = "verified"
	FlowError    FlowStatus = "error"
)

// Flow models the verification interaction. The API handlers use it to
// shape responses; clients mirror the same transitions.
type Flow struct {
	Status  FlowStatus
	Email   string
	Code    string
	Message string
	// DismissAt is set on success; zero otherwise.
	DismissAt time.Time
}

func NewFlow() *Flow {
	return &Flow{Status: FlowIdle}
}

// SubmitEmail moves idle -> pendingVerification. An empty email is ignored
// and the flow stays where it is.
func (f *Flow) SubmitEmail(email string) bool {
	if email == "" {
		return false
	}
	f.Status = FlowPending
	f.Email = email
	f.Message = ""
	return true
}

// SubmitCode applies the backend verdict for a submitted code. Success
// clears both fields and schedules dismissal after DismissDelay; failure
// clears only the code and annotates the retryable pending state.
func (f *Flow) SubmitCode(verified bool, now time.Time) {
	f.Code = ""
	if verified {
		f.Status = FlowVerified
		f.Email = ""
		f.Message = ""
		f.DismissAt = now.Add(DismissDelay)
		return
	}
	f.Status = FlowError
	f.Message = "invalid code"
}

// Retry re-arms an errored flow for another code submission.
func (f *Flow) Retry() {
	if f.Status == FlowError {
		f.Status = FlowPending
		f.Message = ""
	}
}
