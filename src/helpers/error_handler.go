package helpers

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"stock-dashboard/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// Distinct error kinds for errors.As checks
type ConfigurationError struct{ DashboardError }
type NetworkError struct{ DashboardError }
type NotificationError struct{ DashboardError }
type DatabaseError struct{ DashboardError }
type ValidationError struct{ DashboardError }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{DashboardError{Message: fmt.Sprintf(format, args...)}}
}

func NewConfigurationError(msg string, cause error) error {
	return &ConfigurationError{DashboardError{Message: msg, Cause: cause}}
}

func NewNetworkError(msg string, cause error) error {
	return &NetworkError{DashboardError{Message: msg, Cause: cause}}
}

func NewNotificationError(msg string, cause error) error {
	return &NotificationError{DashboardError{Message: msg, Cause: cause}}
}

func NewDatabaseError(msg string, cause error) error {
	return &DatabaseError{DashboardError{Message: msg, Cause: cause}}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger *logger.Logger

	mu         sync.Mutex
	errorCount int
	baseDelay  time.Duration
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{
		Logger:    log,
		baseDelay: time.Second,
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorCount
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.errorCount = 0
	e.mu.Unlock()
}

// -----------------------------------------------------------------------------

// ExecuteWithRetry runs fn up to maxRetries times with exponential backoff and
// wraps the final failure by operation kind. Only startup work goes through
// here; notifications are single-attempt.
func (e *ErrorHandler) ExecuteWithRetry(operation string, fn func() error, maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == maxRetries-1 {
			break
		}

		delay := e.baseDelay * time.Duration(1<<attempt)
		e.Logger.Warning("%s failed (attempt %d/%d): %v. Retrying in %v", operation, attempt+1, maxRetries, lastErr, delay)
		time.Sleep(delay)
	}

	e.mu.Lock()
	e.errorCount++
	e.mu.Unlock()
	e.Logger.Error("%s failed after %d attempts: %v", operation, maxRetries, lastErr)

	msg := fmt.Sprintf("%s failed", operation)
	lowerOp := strings.ToLower(operation)
	switch {
	case strings.Contains(lowerOp, "database") || strings.Contains(lowerOp, "storage"):
		return NewDatabaseError(msg, lastErr)
	case strings.Contains(lowerOp, "network") || strings.Contains(lowerOp, "fetch"):
		return NewNetworkError(msg, lastErr)
	default:
		return &DashboardError{Message: msg, Cause: lastErr}
	}
}

// -----------------------------------------------------------------------------

// Handle logs err under context and counts it. It never panics or propagates.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.errorCount++
	e.mu.Unlock()
	e.Logger.Error("Error in %s: %v", context, err)
}
