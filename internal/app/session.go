package app

import (
	"encoding/json"
	"net/http"

	"github.com/ekaraca/cinebook/internal/domain"
)

type sessionKey string

const SessionKeyFlow = sessionKey("bookingFlow")

func (s sessionKey) String() string {
	return string(s)
}

// getFlow loads the booking flow carried by the caller's session. A missing
// or expired flow is reported as domain.ErrMissingFlowState.
func (app *application) getFlow(r *http.Request) (*domain.BookingFlow, error) {
	data := app.sessionManager.GetBytes(r.Context(), SessionKeyFlow.String())
	if len(data) == 0 {
		return nil, domain.ErrMissingFlowState
	}

	var flow domain.BookingFlow
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, err
	}

	return &flow, nil
}

// putFlow stores the flow as JSON in the session. Flows are marshalled rather
// than stored directly so the session store never needs gob registration and
// Redis-backed stores see the same representation as the in-memory one.
func (app *application) putFlow(r *http.Request, flow *domain.BookingFlow) error {
	data, err := json.Marshal(flow)
	if err != nil {
		return err
	}

	app.sessionManager.Put(r.Context(), SessionKeyFlow.String(), data)

	return nil
}

func (app *application) clearFlow(r *http.Request) {
	app.sessionManager.Remove(r.Context(), SessionKeyFlow.String())
}
