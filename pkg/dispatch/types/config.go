package types

// Config carries the startup knobs the spec says come from the
// configuration collaborator: which callback kinds are enabled, whether
// a database backend is in play, and the resolved Open Question
// decisions from SPEC_FULL.md.
type Config struct {
	// Mask is the bitmask of enabled callback kinds, one bit per Kind.
	Mask uint32
	// UseDatabase gates hook-table rows whose destination is the
	// database collaborator.
	UseDatabase bool
	// RewriteLastCheckOnProcessed preserves the original host engine's
	// habit of rewriting an object's last_check to the check's
	// end_time on PROCESSED, "to avoid user confusion in logs" (see
	// SPEC_FULL.md Open Question Decisions). Defaults to true.
	RewriteLastCheckOnProcessed bool
}

// DefaultConfig returns the configuration this module ran under before
// SPEC_FULL.md's Open Questions were resolved: every kind enabled, no
// database, last_check rewritten.
func DefaultConfig() Config {
	return Config{
		Mask:                        ^uint32(0),
		UseDatabase:                 false,
		RewriteLastCheckOnProcessed: true,
	}
}

// Wants reports whether the bitmask enables the given callback kind.
func (c Config) Wants(k Kind) bool {
	if int(k) >= 32 {
		return false
	}
	return c.Mask&(1<<uint(k)) != 0
}
