// Package general holds interfaces shared across services and infrastructure.
package general

// Logger writes leveled, human readable log lines.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
