package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrPrecondition marks failures detected before any retrieval starts
	ErrPrecondition = errors.New("precondition failed")

	// ErrRefNotFound indicates a requested branch was not among the fetched remote refs
	ErrRefNotFound = errors.New("reference not found")

	// ErrUnpack indicates the staged payload could not be expanded
	ErrUnpack = errors.New("unpack failed")

	// ErrUnsupportedArchive indicates the archive format was not recognized
	ErrUnsupportedArchive = errors.New("unsupported archive format")

	// ErrScanTimeout indicates the scanner exceeded its wall-clock budget
	ErrScanTimeout = errors.New("scan timed out")

	// ErrScannerNotFound indicates no python interpreter could be located
	ErrScannerNotFound = errors.New("scanner interpreter not found")

	// ErrEmptyReport indicates the scanner produced no output to parse
	ErrEmptyReport = errors.New("empty scan report")

	// ErrDeviceNotFound indicates a push referenced an unknown device
	ErrDeviceNotFound = errors.New("device not found")

	// ErrRecordNotFound indicates no scan history exists for a UID
	ErrRecordNotFound = errors.New("scan record not found")
)

// DestinationExistsError is returned when the fetch destination is already present
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination must not be an existing path: %s", e.Path)
}

func (e *DestinationExistsError) Is(target error) bool {
	return target == ErrPrecondition
}

// DisallowedSchemeError is returned for local file sources when they were not opted in
type DisallowedSchemeError struct {
	Scheme string
}

func (e *DisallowedSchemeError) Error() string {
	return fmt.Sprintf("%s: URLs are not allowed to be processed", e.Scheme)
}

func (e *DisallowedSchemeError) Is(target error) bool {
	return target == ErrPrecondition
}

// UnsupportedSchemeError is returned when a source uses a scheme no handler serves
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported source scheme: %q", e.Scheme)
}

func (e *UnsupportedSchemeError) Is(target error) bool {
	return target == ErrPrecondition
}

// FetchError represents a transport failure while retrieving a source
type FetchError struct {
	Scheme     string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s fetch error for %s: status %d: %v", e.Scheme, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s fetch error for %s: %v", e.Scheme, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(scheme, url string, statusCode int, err error) *FetchError {
	return &FetchError{
		Scheme:     scheme,
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// RefNotFoundError is returned when a requested branch does not exist on the remote
type RefNotFoundError struct {
	Remote string
	Ref    string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("failed to find reference to remote branch name: %s/%s", e.Remote, e.Ref)
}

func (e *RefNotFoundError) Is(target error) bool {
	return target == ErrRefNotFound
}

// UnpackError represents a failure expanding a staged archive
type UnpackError struct {
	Path string
	Err  error
}

func (e *UnpackError) Error() string {
	return fmt.Sprintf("unpack %s: %v", e.Path, e.Err)
}

func (e *UnpackError) Unwrap() error {
	return e.Err
}

func (e *UnpackError) Is(target error) bool {
	return target == ErrUnpack
}

// NewUnpackError creates a new UnpackError
func NewUnpackError(path string, err error) *UnpackError {
	return &UnpackError{Path: path, Err: err}
}

// IsPrecondition reports whether err was raised before any retrieval happened
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
