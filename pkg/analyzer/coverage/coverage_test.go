package coverage

import (
	"math"
	"testing"
)

const sampleLCOV = `TN:
SF:src/main.rs
DA:1,5
DA:2,0
DA:3,12
end_of_record
SF:src/lib/helper.rs
DA:10,1
DA:11,1
end_of_record
`

func TestParseLCOV(t *testing.T) {
	files := ParseLCOV(sampleLCOV)

	if len(files) != 2 {
		t.Fatalf("parsed %d files, want 2", len(files))
	}

	main, ok := files["src/main.rs"]
	if !ok {
		t.Fatal("missing src/main.rs record")
	}
	if main[1] != 5 || main[2] != 0 || main[3] != 12 {
		t.Errorf("main.rs lines = %v", main)
	}

	helper := files["src/lib/helper.rs"]
	if len(helper) != 2 {
		t.Errorf("helper.rs has %d lines, want 2", len(helper))
	}
}

func TestParseLCOVIgnoresMalformedRecords(t *testing.T) {
	content := `SF:src/a.rs
DA:notanumber,1
DA:5
DA:7,3
BRDA:1,0,0,1
end_of_record
`
	files := ParseLCOV(content)
	cov := files["src/a.rs"]
	if len(cov) != 1 || cov[7] != 3 {
		t.Errorf("cov = %v, want only line 7", cov)
	}
}

func TestForRange(t *testing.T) {
	cov := LineCoverage{1: 5, 2: 0, 3: 12, 4: 0}

	tests := []struct {
		name       string
		start, end int
		want       float64
	}{
		{"half covered", 1, 4, 50},
		{"fully covered", 3, 3, 100},
		{"fully missed", 2, 2, 0},
		{"no instrumented lines", 10, 20, 0},
		{"uninstrumented lines excluded", 1, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForRange(cov, tt.start, tt.end)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ForRange(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestForRangeEmptyCoverage(t *testing.T) {
	if got := ForRange(LineCoverage{}, 1, 10); got != 0 {
		t.Errorf("ForRange on empty coverage = %v, want 0", got)
	}
}

func TestSourceToModulePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/main.rs", "main"},
		{"src/lib.rs", "lib"},
		{"src/foo/bar.rs", "foo::bar"},
		{"src/foo/mod.rs", "foo"},
		{"src/mod.rs", ""},
		{"src/a/b/c.rs", "a::b::c"},
	}

	for _, tt := range tests {
		if got := SourceToModulePath(tt.path, "src"); got != tt.want {
			t.Errorf("SourceToModulePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFindFileCoverage(t *testing.T) {
	files := map[string]LineCoverage{
		"/home/user/project/src/main.rs": {1: 1},
		"src/util.rs":                    {2: 2},
	}

	if cov := FindFileCoverage("src/util.rs", files); cov[2] != 2 {
		t.Errorf("exact match failed: %v", cov)
	}
	if cov := FindFileCoverage("src/main.rs", files); cov[1] != 1 {
		t.Errorf("suffix match against absolute tracefile path failed: %v", cov)
	}
	if cov := FindFileCoverage("src/unknown.rs", files); len(cov) != 0 {
		t.Errorf("unknown file should yield empty coverage, got %v", cov)
	}
}
