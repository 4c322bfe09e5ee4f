package retry

import "errors"

// ErrRetryCancelled is returned when an invocation is cancelled while
// waiting to retry. It is never confused with the wrapped operation's
// own errors.
var ErrRetryCancelled = errors.New("retry cancelled")

// ErrControllerClosed is returned when Do is called on a closed controller.
var ErrControllerClosed = errors.New("retry controller closed")

// ErrBudgetExhausted marks a retry denied by the budget. The invocation
// still surfaces the last operation error; this sentinel only appears in
// logs and metrics labels.
var ErrBudgetExhausted = errors.New("retry budget exhausted")
