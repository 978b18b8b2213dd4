//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package cli

import "os"

// TerminalWidth returns fallback; window size queries are only wired up for
// unix terminals.
func TerminalWidth(f *os.File, fallback int) int { return fallback }
