package script

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedConstruct = errors.New("unsupported control construct")
	ErrUnterminatedBlock    = errors.New("unterminated block")
	ErrUnbalancedBrace      = errors.New("unbalanced closing brace")
	ErrMissingCondition     = errors.New("missing condition")
	ErrOrphanBranch         = errors.New("else without preceding if")
)

// Error locates a structure error in the script text.
type Error struct {
	Offset int    // byte offset of the offending character
	Text   string // offending text, when there is any
	Err    error
}

func (e *Error) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("offset %d: %v: %q", e.Offset, e.Err, e.Text)
	}
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
