// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider flags override the configured storage provider for one invocation
	Provider      = "provider"
	ProviderShort = "p"

	// Bucket flags override the configured bucket for one invocation
	Bucket      = "bucket"
	BucketShort = "b"

	// Output flags select how listings are rendered (table or yaml)
	Output      = "output"
	OutputShort = "o"

	// Copy flags put the produced value on the system clipboard
	Copy      = "copy"
	CopyShort = "c"

	// Open flags hand the produced URL to the system browser
	Open = "open"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
