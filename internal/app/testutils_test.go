package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/ekaraca/cinebook/api"
	"github.com/ekaraca/cinebook/internal/domain"
	"github.com/ekaraca/cinebook/internal/mailer"
	"github.com/ekaraca/cinebook/internal/mocks"
	"github.com/ekaraca/cinebook/internal/seatmap"
	"github.com/ekaraca/cinebook/internal/validator"
)

func newTestApplication(opts ...func(*application)) *application {
	app := &application{
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		seatMaps:       seatmap.NewGenerator(seatmap.DefaultConfig()),
		mailer:         mailer.NewMockMailer(),
		movieRepo:      &mocks.MockMovieRepo{},
		theaterRepo:    &mocks.MockTheaterRepo{},
		bookingRepo:    &mocks.MockBookingRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withURLParams injects chi route parameters, since handlers are invoked
// directly rather than through the router in these tests.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withSession attaches a loaded session to the request, optionally seeded
// with an in-progress booking flow.
func withSession(t *testing.T, app *application, r *http.Request, flow *domain.BookingFlow) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	r = r.WithContext(ctx)

	if flow != nil {
		if err := app.putFlow(r, flow); err != nil {
			t.Fatalf("Failed to store flow in session: %v", err)
		}
	}

	return r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

// checkMissingFlowState asserts the conflict response sent when a flow
// endpoint is entered without the state it depends on, including the path the
// client is told to return to.
func checkMissingFlowState(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	if w.Code != http.StatusConflict {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusConflict)
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if errorResp.Redirect != flowRedirect {
		t.Errorf("Redirect = %q, want %q", errorResp.Redirect, flowRedirect)
	}
}

func ptr[T any](v T) *T {
	return &v
}
