// Package audit records authentication attempts. Events never carry a
// password.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/legalchicks/lcen-portal/internal/logging"
)

// Action is the auth operation an event belongs to.
type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionVerify   Action = "verify"
)

// Code classifies the outcome of an attempt.
type Code string

const (
	CodeLoginSuccess    Code = "LOGIN_SUCCESS"
	CodeRegisterSuccess Code = "REGISTER_SUCCESS"
	CodeVerifySuccess   Code = "VERIFY_SUCCESS"
	CodeMissingFields   Code = "MISSING_FIELDS"
	CodeUserNotFound    Code = "USER_NOT_FOUND"
	CodeInvalidPassword Code = "INVALID_PASSWORD"
	CodeEmailExists     Code = "EMAIL_EXISTS"
	CodeNoToken         Code = "NO_TOKEN"
	CodeTokenExpired    Code = "TOKEN_EXPIRED"
	CodeInvalidToken    Code = "INVALID_TOKEN"
	CodeServerError     Code = "SERVER_ERROR"
)

// EmailNotProvided stands in for an absent email.
const EmailNotProvided = "not provided"

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Email     string    `json:"email"`
	IP        string    `json:"ip"`
	Code      Code      `json:"code"`
	UserID    string    `json:"user_id,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Success reports whether the code is one of the success codes.
func (e Event) Success() bool {
	switch e.Code {
	case CodeLoginSuccess, CodeRegisterSuccess, CodeVerifySuccess:
		return true
	}
	return false
}

type Sink interface {
	Emit(ctx context.Context, event Event)
}

type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// LogSink writes events through a logging.Logger: successes at info level,
// failures at warn and server errors at error.
type LogSink struct {
	logger logging.Logger
}

func NewLogSink(l logging.Logger) *LogSink {
	return &LogSink{logger: l.With("module", "audit")}
}

func (s *LogSink) Emit(ctx context.Context, e Event) {
	args := []any{
		"action", string(e.Action),
		"email", e.Email,
		"ip", e.IP,
		"code", string(e.Code),
		"timestamp", e.Timestamp.Format(time.RFC3339),
	}
	if e.UserID != "" {
		args = append(args, "user_id", e.UserID)
	}
	if e.Error != "" {
		args = append(args, "error", e.Error)
	}

	switch {
	case e.Success():
		s.logger.Info(ctx, "auth attempt", args...)
	case e.Code == CodeServerError:
		s.logger.Error(ctx, "auth attempt", args...)
	default:
		s.logger.Warn(ctx, "auth attempt", args...)
	}
}

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Last returns the most recent event and false if none was recorded.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}
