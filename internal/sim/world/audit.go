package world

// AuditEntry records one attempted transfer-family action.
type AuditEntry struct {
	Tick    uint64  `json:"tick"`
	Actor   string  `json:"actor"`
	Action  string  `json:"action"` // e.g. "TRANSFER"
	Source  string  `json:"source,omitempty"`
	Dest    string  `json:"dest,omitempty"`
	Amount  float64 `json:"amount"`
	OK      bool    `json:"ok"`
	Code    string  `json:"code,omitempty"`
	Message string  `json:"message,omitempty"`
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

// HistoryWriter indexes transfer records for querying; the JSONL audit
// channel remains the source of truth.
type HistoryWriter interface {
	WriteTransfer(entry AuditEntry) error
}

func (w *World) auditTransfer(entry AuditEntry) {
	if w.auditLogger != nil {
		_ = w.auditLogger.WriteAudit(entry)
	}
	if w.history != nil {
		_ = w.history.WriteTransfer(entry)
	}
}
