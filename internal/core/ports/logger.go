package ports

// Logger defines the interface for logging.
// Info carries status lines, Trace carries verbose detail hidden by default.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Trace(msg string)
	Error(err error)
}
