// internal/api/envelope.go
//
// Uniform result envelope for remote Auth API calls.
//
// Context
// -------
// Every call Atrium makes to the remote authentication service is mapped
// into one Response shape, regardless of the HTTP status or payload the
// server produced.  Callers branch on Success and, when they care about
// session expiry, on StatusCode == 401.  No call site ever handles a raw
// *http.Response or a transport error directly.
//
// Three mapping paths exist:
//
//   - OK        – 2xx with a decoded payload.
//   - Rejected  – non-2xx; the server's message, error, and statusCode are
//     carried through, with a caller-supplied default message when the
//     body offers none.
//   - Unreachable – the transport failed before any response arrived; a
//     fixed network-error message and a zero StatusCode.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package api

import (
	"encoding/json"
	"net/http"
)

// NetworkErrorMessage is the fixed text used when no response was
// reachable.  A zero StatusCode distinguishes "server unreachable" from
// "server said no."
const NetworkErrorMessage = "Network error. Please check your connection."

// Response is the envelope every remote call resolves to.  Data is nil
// unless Success is true.
type Response[T any] struct {
	Success    bool
	Data       *T
	Message    string
	Error      string
	StatusCode int
}

// errorBody mirrors the remote API's failure payload.  All fields are
// optional; absent values fall back to defaults.
type errorBody struct {
	Message    string `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// OK wraps a decoded payload in a successful envelope.
func OK[T any](data *T, message string, statusCode int) Response[T] {
	return Response[T]{
		Success:    true,
		Data:       data,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Rejected maps a non-2xx response body into a failed envelope.  The
// body is parsed best-effort; defaultMsg fills in when the server sent
// no message, and the HTTP status fills in when it sent no statusCode.
func Rejected[T any](resp *http.Response, body []byte, defaultMsg string) Response[T] {
	var eb errorBody
	_ = json.Unmarshal(body, &eb) // tolerate empty or non-JSON bodies

	msg := eb.Message
	if msg == "" {
		msg = defaultMsg
	}
	code := eb.StatusCode
	if code == 0 {
		code = resp.StatusCode
	}
	return Response[T]{
		Success:    false,
		Message:    msg,
		Error:      eb.Error,
		StatusCode: code,
	}
}

// Unreachable is the envelope for transport-level failures.
func Unreachable[T any]() Response[T] {
	return Response[T]{Success: false, Message: NetworkErrorMessage}
}
