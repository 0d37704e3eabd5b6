package types

// Version is the application version, overridden at build time via ldflags
var Version = "dev"

// Secret is a string that must never appear in log output. The logger is
// configured to redact every attribute of this type.
type Secret string

// Unveil returns the raw secret value for use in outbound requests
func (s Secret) Unveil() string {
	return string(s)
}
