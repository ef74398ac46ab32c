package domain

// DocumentSequence allocates zero-padded document numbers, e.g. JV-000042.
type DocumentSequence struct {
	SequenceID string `json:"sequenceId"`
	Prefix     string `json:"prefix"`
	PadWidth   int    `json:"padWidth"`
	LastNumber int64  `json:"lastNumber"`
}

// SequenceUsage reports how much of a sequence's capacity is consumed.
type SequenceUsage struct {
	Capacity    int64   `json:"capacity"`
	Used        int64   `json:"used"`
	Remaining   int64   `json:"remaining"`
	Utilization float64 `json:"utilization"`
}
