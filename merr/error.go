package merr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	NoMatch
	BadTypeDescriptor
	NotAFunction
)

// DispatchError is implemented by every engine-internal error, so callers
// can branch on "nothing matched" versus "the matched implementation itself
// failed": implementation errors pass through the dispatcher untouched and
// never implement this interface.
type DispatchError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) DispatchError
	getStack() []byte
}

func FormatWithCode(e DispatchError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E DispatchError](err E) DispatchError {
	return err.withStack(debug.Stack())
}

// IsNoMatch reports whether err means no registered signature applied to the
// call, as opposed to the chosen implementation failing.
func IsNoMatch(err error) bool {
	var nm NewNoMatch
	return errors.As(err, &nm)
}
