// Package response renders the JSON envelope every IMC endpoint speaks:
// {"success": bool, "data": ..., "error": {code, message, fields}, "meta": ...}.
// Validation failures carry a field-name -> message map that admin and portal
// forms surface verbatim next to the offending input.
package response

import (
	"encoding/json"
	"io"
	"net/http"
)

// Response is the standard API envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo carries the machine code, human message and per-field details.
type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Meta is pagination metadata for list endpoints.
type Meta struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewMeta builds pagination metadata from a total row count.
func NewMeta(total, page, limit int) Meta {
	if limit <= 0 {
		limit = 1
	}
	pages := (total + limit - 1) / limit
	return Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1 && total > 0,
	}
}

// DecodeJSON decodes a request body into v and closes the body.
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// JSON writes an envelope with the given status and payload.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, data interface{}) { JSON(w, http.StatusOK, data) }

// Created writes a 201 response.
func Created(w http.ResponseWriter, data interface{}) { JSON(w, http.StatusCreated, data) }

// NoContent writes a 204 response.
func NoContent(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) }

// WithMeta writes a 200 list response with pagination metadata.
func WithMeta(w http.ResponseWriter, data interface{}, meta Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data, Meta: &meta})
}

// Error writes an error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, &ErrorInfo{Code: code, Message: message})
}

// BadRequest writes 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized writes 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden writes 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound writes 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, "NOT_FOUND", message)
}

// Conflict writes 409. Booking endpoints use it when a submitted slot was
// taken by a concurrent booking after the client's availability snapshot.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, "CONFLICT", message)
}

// ValidationError writes 422 with the field -> message map.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	writeError(w, http.StatusUnprocessableEntity, &ErrorInfo{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Fields:  fields,
	})
}

// InternalError writes 500 without leaking internals.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
}

func writeError(w http.ResponseWriter, status int, info *ErrorInfo) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: false, Error: info})
}
