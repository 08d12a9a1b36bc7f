package publishers

// Logger defines the logging surface publishers rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// logDelivery records the outcome of a single sink delivery under a per-type key.
func logDelivery(log Logger, p Publisher, evt Event, err error) {
	fields := map[string]any{
		"publisher_id": p.ID(),
		"fingerprint":  evt.Fingerprint,
	}
	if err != nil {
		fields["error"] = err.Error()
		log.ErrorObj(p.Type()+" publisher send failed", "publisher_"+p.Type()+"_error", fields)
		return
	}
	log.DebugObj(p.Type()+" publisher delivered event", "publisher_"+p.Type()+"_delivery", fields)
}
