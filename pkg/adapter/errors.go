package adapter

import (
	"errors"
	"fmt"

	"github.com/strataorm/strata/pkg/dialect"
)

// Standard adapter errors
var (
	// ErrAdapterNotFound is returned when an adapter is not registered
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrUnknownTypeAlias is returned when a logical type tag has no
	// mapping in the dialect's translation table
	ErrUnknownTypeAlias = errors.New("unknown type alias")

	// ErrInvalidConfiguration is returned when the configuration is invalid
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrCheckoutTimeout is returned when a pool slot could not be
	// acquired within the configured checkout timeout
	ErrCheckoutTimeout = errors.New("connection checkout timed out")

	// ErrConnectionClosed is returned when attempting to use a closed connection
	ErrConnectionClosed = errors.New("connection is closed")

	// ErrConnectionFailed is returned when a connection attempt fails
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInvalidLockMode is returned when a lock mode outside the fixed
	// enumeration is requested
	ErrInvalidLockMode = errors.New("invalid lock mode")
)

// DatabaseError wraps dialect-specific errors with additional context.
// This provides a consistent error structure across all dialects.
type DatabaseError struct {
	Dialect   dialect.ID
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *DatabaseError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Dialect, e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error.
func (e *DatabaseError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(id dialect.ID, operation string, cause error) *DatabaseError {
	return &DatabaseError{
		Dialect:   id,
		Operation: operation,
		Cause:     cause,
	}
}

// UnknownTypeAliasError is returned when TranslateType is asked for a tag
// the dialect's translation table does not contain. This is always a
// configuration or programmer error: DDL correctness depends on the
// translation, so it is never retried and never falls back to a guess.
type UnknownTypeAliasError struct {
	Dialect dialect.ID
	Tag     dialect.TypeTag
}

// Error implements the error interface.
func (e *UnknownTypeAliasError) Error() string {
	return fmt.Sprintf("%s has no type mapping for alias '%s'", e.Dialect, e.Tag)
}

// Is checks if the error is ErrUnknownTypeAlias.
func (e *UnknownTypeAliasError) Is(target error) bool {
	return errors.Is(target, ErrUnknownTypeAlias)
}

// NewUnknownTypeAliasError creates a new UnknownTypeAliasError.
func NewUnknownTypeAliasError(id dialect.ID, tag dialect.TypeTag) *UnknownTypeAliasError {
	return &UnknownTypeAliasError{Dialect: id, Tag: tag}
}

// ConnectionError is returned when a connection error occurs.
type ConnectionError struct {
	Dialect dialect.ID
	Host    string
	Port    int
	Cause   error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s at %s:%d: %v", e.Dialect, e.Host, e.Port, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is ErrConnectionFailed.
func (e *ConnectionError) Is(target error) bool {
	if errors.Is(target, ErrConnectionFailed) {
		return true
	}
	return errors.Is(e.Cause, target)
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(id dialect.ID, host string, port int, cause error) *ConnectionError {
	return &ConnectionError{
		Dialect: id,
		Host:    host,
		Port:    port,
		Cause:   cause,
	}
}

// ConfigurationError is returned when a configuration error occurs.
type ConfigurationError struct {
	Dialect dialect.ID
	Field   string
	Reason  string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: field '%s': %s", e.Dialect, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.Dialect, e.Reason)
}

// Is checks if the error is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidConfiguration)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(id dialect.ID, field string, reason string) *ConfigurationError {
	return &ConfigurationError{
		Dialect: id,
		Field:   field,
		Reason:  reason,
	}
}

// CheckoutTimeoutError is returned when the pool could not hand out a
// connection before the configured checkout timeout, after exhausting the
// configured retry attempts.
type CheckoutTimeoutError struct {
	Dialect  dialect.ID
	Attempts int
	Cause    error
}

// Error implements the error interface.
func (e *CheckoutTimeoutError) Error() string {
	return fmt.Sprintf("%s connection checkout timed out after %d attempt(s): %v", e.Dialect, e.Attempts, e.Cause)
}

// Unwrap returns the underlying error.
func (e *CheckoutTimeoutError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is ErrCheckoutTimeout.
func (e *CheckoutTimeoutError) Is(target error) bool {
	return errors.Is(target, ErrCheckoutTimeout)
}

// NewCheckoutTimeoutError creates a new CheckoutTimeoutError.
func NewCheckoutTimeoutError(id dialect.ID, attempts int, cause error) *CheckoutTimeoutError {
	return &CheckoutTimeoutError{Dialect: id, Attempts: attempts, Cause: cause}
}

// WrapError wraps an error with dialect context.
// If the error is already a DatabaseError, it returns it as-is.
func WrapError(id dialect.ID, operation string, err error) error {
	if err == nil {
		return nil
	}

	// Don't double-wrap
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}

	return NewDatabaseError(id, operation, err)
}

// IsUnknownTypeAlias checks if an error indicates a missing type mapping.
func IsUnknownTypeAlias(err error) bool {
	return errors.Is(err, ErrUnknownTypeAlias)
}

// IsConnectionError checks if an error is a connection error.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// IsConfigurationError checks if an error is a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsCheckoutTimeout checks if an error is a pool checkout timeout.
func IsCheckoutTimeout(err error) bool {
	return errors.Is(err, ErrCheckoutTimeout)
}
