package recorder

// NoopRecorder is used when no journal database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordInteraction(_ *Interaction) error { return nil }
func (n *NoopRecorder) RecordAnalysis(_ *AnalysisEvent) error  { return nil }
func (n *NoopRecorder) Close() error                           { return nil }
