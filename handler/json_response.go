package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the envelope written by JSON and JSONError.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON wraps v in the JSONResponse envelope under "data".
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONRaw writes v as the whole body, without the envelope.
func JSONRaw(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError writes err under "error". The status comes from an HTTPError
// in err's chain and defaults to 500; server errors hide their message.
func JSONError(err error, opts ...JSONOption) Response {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{Code: ErrInternalServerError.Key, Message: http.StatusText(status)}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = http.StatusText(status)
	}

	r := &jsonResponse{status: status, body: JSONResponse{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
