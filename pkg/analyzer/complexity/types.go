package complexity

// Function is one extracted function-like unit: a free function, an impl
// method, or a trait method with a default body. Complexity is always >= 1.
type Function struct {
	Name       string `json:"name"`
	StartLine  uint32 `json:"start_line"`
	EndLine    uint32 `json:"end_line"`
	Complexity uint32 `json:"complexity"`
}

// FileResult groups the functions extracted from one source file.
type FileResult struct {
	Path      string     `json:"path"`
	Functions []Function `json:"functions"`
}
