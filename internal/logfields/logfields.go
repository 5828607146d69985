package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyFile       = "file"
	KeyPage       = "page"
	KeySymbol     = "symbol"
	KeyOffset     = "offset"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Page(path string) slog.Attr      { return slog.String(KeyPage, path) }
func Symbol(name string) slog.Attr    { return slog.String(KeySymbol, name) }
func Offset(off int64) slog.Attr      { return slog.Int64(KeyOffset, off) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
