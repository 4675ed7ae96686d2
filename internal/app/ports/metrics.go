package ports

type CommandMetrics interface {
	RecordSuccess(command string)
	RecordFailure(command string)
	RecordEvent(eventType string)
}
