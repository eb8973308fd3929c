package main

import "fmt"

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// Score maps a grade to the numeric value used for aggregation.
func (g Grade) Score() int {
	switch g {
	case GradeA:
		return 3
	case GradeB:
		return 2
	case GradeC:
		return 1
	}
	return 0
}

// Better reports whether g ranks above other.
func (g Grade) Better(other Grade) bool {
	return g.Score() > other.Score()
}

func (g Grade) Valid() bool {
	return g.Score() > 0
}

func parseGrade(s string) (Grade, error) {
	g := Grade(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown grade %q", s)
	}
	return g, nil
}

// Threshold splits a percentage into A (below Low), B (below High) and C.
type Threshold struct {
	Low  float64
	High float64
}

var thresholds = map[MetricKind]Threshold{
	MetricCPU:    {Low: 30, High: 60},
	MetricMemory: {Low: 50, High: 75},
	MetricDisk:   {Low: 40, High: 70},
}

// gradeValue is total over all inputs. Boundaries fall to the worse grade,
// and NaN compares false everywhere so it lands on C.
func gradeValue(value float64, t Threshold) Grade {
	if value < t.Low {
		return GradeA
	}
	if value < t.High {
		return GradeB
	}
	return GradeC
}

// aggregate averages the three scores and maps the mean back to a grade:
// mean >= 2.67 is A, mean >= 1.67 is B, anything lower is C.
// The cutoffs are compared on the integer sum (8/3 and 5/3) so that
// A,A,B and B,B,C round up as intended.
func aggregate(cpu, mem, disk Grade) Grade {
	sum := cpu.Score() + mem.Score() + disk.Score()
	switch {
	case sum >= 8:
		return GradeA
	case sum >= 5:
		return GradeB
	default:
		return GradeC
	}
}
