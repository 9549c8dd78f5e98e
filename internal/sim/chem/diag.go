package chem

// Diagnostics receives engine-internal conditions (e.g. invalid policy
// pairings). It is distinct from the user-facing message channel.
type Diagnostics interface {
	Event(kind string, fields map[string]any)
}

type NopDiagnostics struct{}

func (NopDiagnostics) Event(string, map[string]any) {}
