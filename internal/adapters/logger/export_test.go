package logger

// FormatError exposes the error chain rendering for tests.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
