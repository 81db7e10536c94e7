package tools

import "context"

// Executor runs a single tool invocation. Implementations must be safe for
// concurrent use and respect context cancellation.
//
// The input map holds the tool-specific parameters as received from the
// model. The returned string is the text fed back to the model as the tool
// result; failures are returned as classified *Error values rather than
// thrown through panics or unstructured errors.
type Executor interface {
	Execute(ctx context.Context, input map[string]interface{}) (string, error)
}
