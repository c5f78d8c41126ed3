package task

import "sync/atomic"

// Token is a cooperative cancellation flag shared between the caller that
// submitted a task and the task itself. A nil Token is never cancelled.
type Token struct {
	cancelled atomic.Bool
}

func NewToken() *Token {
	return &Token{}
}

// Cancel requests cancellation. The running task notices it at its next checkpoint.
func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
}

func (t *Token) IsCancelled() bool {
	if t == nil {
		return false
	}
	return t.cancelled.Load()
}
