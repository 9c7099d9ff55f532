package log

// Shared field and component names so log records stay greppable.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldMonth     = "month"
	FieldTxnID     = "transaction_id"
	FieldLabelID   = "label_id"
	FieldDuration  = "duration_ms"
	FieldStatus    = "status"
	FieldClientIP  = "client_ip"
)

// Component names.
const (
	ComponentHTTP    = "http"
	ComponentService = "service"
	ComponentStorage = "storage"
)
