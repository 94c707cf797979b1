package lfgbwt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSequence is returned when a sequence identifier is not
	// below the number of stored sequences.
	ErrInvalidSequence = errors.New("invalid sequence")

	// ErrMalformedIndex is returned when navigation through a loaded or built
	// index hits an inconsistency, such as an LF step that fails or an
	// extraction that never reaches the endmarker.
	ErrMalformedIndex = errors.New("malformed index")

	// ErrMalformedSource is returned by Build when the source violates the
	// row contract.
	ErrMalformedSource = errors.New("malformed source")

	// ErrInvalidNode is returned when a node has no row in the index.
	ErrInvalidNode = errors.New("invalid node")

	// ErrNotBidirectional is returned by operations that need an index
	// storing both orientations of every path.
	ErrNotBidirectional = errors.New("index is not bidirectional")
)

// NodeError reports a failure tied to a single node.
//
// The underlying error can be accessed via errors.Unwrap.
type NodeError struct {
	Node  uint64
	cause error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %d: %v", e.Node, e.cause)
}

func (e *NodeError) Unwrap() error { return e.cause }

// VerifyError describes the first disagreement found by Verify.
type VerifyError struct {
	// Check names the comparison that failed, e.g. "header", "size", "value",
	// "lf" or "inverse-lf".
	Check string
	// Node is the node whose row disagreed. It is 0 for index-wide checks.
	Node uint64
	// Offset is the row offset, when the check is per position.
	Offset uint64
	Want   string
	Got    string
}

func (e *VerifyError) Error() string {
	if e.Check == "header" || e.Check == "runs" {
		return fmt.Sprintf("verify %s: want %s, got %s", e.Check, e.Want, e.Got)
	}
	return fmt.Sprintf("verify %s at (%d, %d): want %s, got %s", e.Check, e.Node, e.Offset, e.Want, e.Got)
}
