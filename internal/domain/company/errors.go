package company

import (
	"errors"
	"fmt"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCompanyNotCreated  = errors.New("company not created")
	ErrInvalidCompanyCode = errors.New("invalid company code")
)

// NotFoundReason tags why a read reported CompanyNotFound.
type NotFoundReason string

const (
	ReasonAbsent   NotFoundReason = "absent"
	ReasonStore    NotFoundReason = "store_failure"
	ReasonUpstream NotFoundReason = "upstream_failure"
)

// NotFoundError is returned by every failed read, whether the company is
// missing or a collaborator failed while loading or enriching it.
type NotFoundError struct {
	CompanyCode int64
	Reason      NotFoundReason
	Err         error
}

func NewNotFound(code int64) *NotFoundError {
	return &NotFoundError{CompanyCode: code, Reason: ReasonAbsent}
}

func (e *NotFoundError) Error() string {
	if e.Reason == ReasonAbsent || e.Err == nil {
		return fmt.Sprintf("Company Code %d not found.", e.CompanyCode)
	}
	return e.Err.Error()
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCompanyNotFound
}

// NotCreatedError carries the store failure that prevented a create.
type NotCreatedError struct {
	CompanyCode int64
	Err         error
}

func (e *NotCreatedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Company Code %d not created.", e.CompanyCode)
	}
	return e.Err.Error()
}

func (e *NotCreatedError) Unwrap() error {
	return e.Err
}

func (e *NotCreatedError) Is(target error) bool {
	return target == ErrCompanyNotCreated
}
