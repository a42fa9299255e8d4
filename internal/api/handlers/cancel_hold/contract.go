package cancel_hold

import "context"

type HoldService interface {
	Cancel(ctx context.Context, holdID int64, customerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
