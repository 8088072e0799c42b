package snapview

import "errors"

// Common errors used throughout the SnapView packages
var (
	// ErrUnknownNode is returned when a method script step references a template node that was not declared.
	ErrUnknownNode = errors.New("unknown template node")
	// ErrInvalidStep indicates a method script step has no action or more than one action.
	ErrInvalidStep = errors.New("invalid method script step")
	// ErrUnsupportedLiteral indicates a literal value whose type cannot be represented in generated code.
	ErrUnsupportedLiteral = errors.New("unsupported literal value")
	// ErrEmptyMethodName indicates a method script without a method name.
	ErrEmptyMethodName = errors.New("method name is required")
)
