package crap

// Entry is one scored function in the report.
type Entry struct {
	Name       string  `json:"name"`
	ModulePath string  `json:"module_path"`
	Complexity uint32  `json:"complexity"`
	Coverage   float64 `json:"coverage"`
	Crap       float64 `json:"crap"`
}

// Summary provides aggregate statistics over all scored functions.
type Summary struct {
	TotalFunctions int     `json:"total_functions"`
	MeanScore      float64 `json:"mean_score"`
	MaxScore       float64 `json:"max_score"`
	P50Score       float64 `json:"p50_score"`
	P90Score       float64 `json:"p90_score"`
	P95Score       float64 `json:"p95_score"`
}

// Report is the full analysis result handed to the output formatter.
type Report struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}
