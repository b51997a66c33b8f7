package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/ekaraca/cinebook/api"
	appvalidator "github.com/ekaraca/cinebook/internal/validator"
)

const (
	ErrInternalServer = "The server encountered a problem and could not process your request"

	// flowRedirect is where clients are sent when they enter the booking
	// flow without the selections the current screen depends on.
	flowRedirect = "/movies"
)

func (app *application) logError(r *http.Request, err error) {
	logger := app.contextGetLogger(r)

	logger.Error(err.Error(), "method", r.Method, "uri", r.URL.RequestURI())
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// actionRejectedResponse covers in-place rejections during seat selection:
// the selection is left unchanged and the client shows a notice.
func (app *application) actionRejectedResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

// missingFlowStateResponse is sent when a flow endpoint is entered without
// the carried state it depends on. The response names a safe path to return
// to, mirroring the redirect the UI performs.
func (app *application) missingFlowStateResponse(w http.ResponseWriter, r *http.Request) {
	resp := api.ErrorResponse{
		Message:   "Your booking session is missing or has expired, please start again from the movie page",
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
		Redirect:  flowRedirect,
	}

	err := app.writeJSON(w, http.StatusConflict, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	errs := make([]api.ValidationError, len(validationErrors))
	for i, fieldErr := range validationErrors {
		errs[i] = api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		}
	}

	resp := api.ValidationErrorResponse{
		Message:          "Validation failed",
		ValidationErrors: errs,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}
