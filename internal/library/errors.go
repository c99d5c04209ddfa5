package library

import "errors"

// ErrPolicyRequired means the store already holds highlights and the caller
// has to choose between merging and overwriting.
var ErrPolicyRequired = errors.New("store is not empty: choose merge or overwrite")

// ErrUnknownPolicy indicates a policy other than merge or overwrite
var ErrUnknownPolicy = errors.New("unknown import policy")

// ErrGroupNotFound indicates no highlight carries the title being edited
var ErrGroupNotFound = errors.New("no highlights with this title")

// ErrInvalidEdit indicates an edit that would leave a book without a title
var ErrInvalidEdit = errors.New("title must not be empty")

// Operation is a user-facing operation category.
type Operation string

const (
	OpLoad   Operation = "load"
	OpEdit   Operation = "edit"
	OpParse  Operation = "parse"
	OpImport Operation = "import"
)

var opMessages = map[Operation]string{
	OpLoad:   "failed to load",
	OpEdit:   "failed to save changes",
	OpParse:  "failed to process file",
	OpImport: "failed to save highlights",
}

// OpError is the single message surfaced for a failed operation. The cause
// stays reachable through errors.Is / errors.As.
type OpError struct {
	Op  Operation
	Err error
}

func (e *OpError) Error() string {
	if msg, ok := opMessages[e.Op]; ok {
		return msg
	}
	return "operation failed"
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op Operation, err error) error {
	return &OpError{Op: op, Err: err}
}
