package network

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural failures. Every structural rejection leaves
// the network unchanged.
var (
	ErrDuplicateNodeID       = errors.New("node ID already exists")
	ErrInvalidNodeID         = errors.New("node ID must be a positive integer")
	ErrUnknownNodeType       = errors.New("unknown node type")
	ErrUnknownEdgeType       = errors.New("unknown edge type")
	ErrUnknownNode           = errors.New("node not found")
	ErrDuplicateEdge         = errors.New("duplicate edge")
	ErrIncompatibleNodeTypes = errors.New("incompatible node types")
	ErrNodeInUse             = errors.New("node is still referenced")
	ErrEdgeNotFound          = errors.New("edge not found")
)

// Error provides structured error information for network operations.
type Error struct {
	Op      string // operation that failed, e.g. "add", "connect"
	Entity  string // "node" or "edge"
	ID      int64  // entity ID when applicable
	Context string // additional context
	Cause   error  // underlying sentinel
}

func (e *Error) Error() string {
	switch {
	case e.ID != 0 && e.Context != "":
		return fmt.Sprintf("%s %s %d (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
	case e.ID != 0:
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func nodeError(op string, id int64, cause error) error {
	return &Error{Op: op, Entity: "node", ID: id, Cause: cause}
}

func edgeError(op string, context string, cause error) error {
	return &Error{Op: op, Entity: "edge", Context: context, Cause: cause}
}
