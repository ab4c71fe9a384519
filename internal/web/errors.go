package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with full technical detail server-side (with the
// chi request ID for correlation) and returned to the client as a
// user-friendly message with a support code.

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/scrubdata/scrub/internal/cleaner"
)

// UserMessage is a user-facing error with a support code and a suggested
// next step.
type UserMessage struct {
	Code    string
	Message string
	Action  string
}

// ErrorResponse is the JSON body for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var defaultMessage = UserMessage{
	Code:    "ERR000",
	Message: "An unexpected error occurred",
	Action:  "Please try again. If the problem persists, quote this code to support",
}

// errorPatterns maps substrings of technical errors to user messages.
// Checked in order; first match wins.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"file too large", UserMessage{
		Code:    "FILE001",
		Message: "File exceeds the maximum upload size",
		Action:  "Split the file into smaller chunks and retry",
	}},
	{"no file provided", UserMessage{
		Code:    "FILE002",
		Message: "No file was selected",
		Action:  "Choose a CSV or Excel file to upload",
	}},
	{"empty file", UserMessage{
		Code:    "FILE003",
		Message: "The uploaded file is empty",
		Action:  "Upload a file with a header row and data rows",
	}},
	{"parse csv", UserMessage{
		Code:    "FILE004",
		Message: "The file is not valid CSV",
		Action:  "Ensure the file is comma-separated with consistent quoting",
	}},
	{"open workbook", UserMessage{
		Code:    "FILE005",
		Message: "The spreadsheet could not be opened",
		Action:  "Re-save the file from your spreadsheet application and retry",
	}},
	{"result not found", UserMessage{
		Code:    "RES001",
		Message: "This cleaning result is no longer available",
		Action:  "Results expire after a short time; upload the file again",
	}},
}

// mapError converts a technical error into a UserMessage. Sentinel errors
// from the cleaner are matched first, then the pattern table.
func mapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case errors.Is(err, cleaner.ErrUnsupportedFormat):
		return UserMessage{
			Code:    "FMT001",
			Message: "Unsupported file format",
			Action:  "Upload a .csv, .xlsx, or .xls file",
		}
	case errors.Is(err, cleaner.ErrInvalidInput):
		return UserMessage{
			Code:    "FMT002",
			Message: "The upload did not contain a readable file",
			Action:  "Choose a file and try again",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// respondError logs the technical error with request context and writes the
// mapped user message as JSON.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := mapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}
