package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday/internal/usecase"
)

const (
	envelopeVersion = "2.0"
	errorDomain     = "matchday"
)

// envelope is the Google JSON style wrapper used by the json endpoints.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Status  string       `json:"status"`
	Errors  []errorCause `json:"errors,omitempty"`
}

type errorCause struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorKind struct {
	target     error
	HTTPStatus int
	Reason     string
	Status     string
}

var (
	errorKinds = []errorKind{
		{target: usecase.ErrInvalidInput, HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
		{target: usecase.ErrNotFound, HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
		{target: usecase.ErrUnauthorized, HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
		{target: usecase.ErrDependencyUnavailable, HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	}
	internalKind = errorKind{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
)

func classifyError(err error) errorKind {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			return kind
		}
	}
	return internalKind
}

func (k errorKind) envelope(message string) envelope {
	return envelope{
		APIVersion: envelopeVersion,
		Error: &errorBody{
			Code:    k.HTTPStatus,
			Message: message,
			Status:  k.Status,
			Errors:  []errorCause{{Domain: errorDomain, Reason: k.Reason, Message: message}},
		},
	}
}

// writeJSON encodes before touching the response so an encoding failure
// still produces a clean 500.
func writeJSON(_ context.Context, w http.ResponseWriter, status int, payload any) {
	body, err := sonic.ConfigDefault.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, body)
}

// writeRaw sends an already encoded JSON document without the envelope.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: envelopeVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := classifyError(err)
	if kind.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}
	writeJSON(ctx, w, kind.HTTPStatus, kind.envelope(err.Error()))
}

// writeInternalError hides the cause from the client.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, internalKind.envelope("internal server error"))
}
