package interfaces

// Reporter emits user-facing status lines for the upload workflow. It is a
// presentation concern: the workflow's outcome never depends on it.
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Failure(format string, args ...any)
}
