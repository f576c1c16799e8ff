package types

// ColumnSet names the fields shown in a call detail panel.
type ColumnSet string

const (
	// BasicColumns: id, primary topic, summary, transcript.
	BasicColumns ColumnSet = "basic"
	// DetailedColumns adds secondary topic, routing, agent, durations and IVR data.
	DetailedColumns ColumnSet = "detailed"
)
