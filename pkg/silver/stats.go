package silver

// CleanStats reports everything a cleaning run did to its input. It is
// composed by Clean from the per-step results; no step mutates shared state.
type CleanStats struct {
	OriginalCount       int            `json:"originalCount"`
	DuplicatesRemoved   int            `json:"duplicatesRemoved"`
	InvalidRemoved      int            `json:"invalidRemoved"`
	CoercionDropped     int            `json:"coercionDropped"`
	MissingValuesFilled map[string]int `json:"missingValuesFilled"`
	FinalCount          int            `json:"finalCount"`
	RetentionRate       float64        `json:"retentionRate"`
}

// TotalFilled sums the per-column fill counts.
func (s CleanStats) TotalFilled() int {
	total := 0
	for _, n := range s.MissingValuesFilled {
		total += n
	}
	return total
}
