package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeValue(t *testing.T) {
	th := Threshold{Low: 30, High: 60}
	tests := []struct {
		name  string
		value float64
		want  Grade
	}{
		{"negative noise", -1.5, GradeA},
		{"zero", 0, GradeA},
		{"just below low", 29.999, GradeA},
		{"at low", 30, GradeB},
		{"middle", 45, GradeB},
		{"just below high", 59.99, GradeB},
		{"at high", 60, GradeC},
		{"full", 100, GradeC},
		{"above full", 104.2, GradeC},
		{"nan", math.NaN(), GradeC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gradeValue(tt.value, th))
		})
	}
}

func TestThresholdTable(t *testing.T) {
	assert.Equal(t, Threshold{Low: 30, High: 60}, thresholds[MetricCPU])
	assert.Equal(t, Threshold{Low: 50, High: 75}, thresholds[MetricMemory])
	assert.Equal(t, Threshold{Low: 40, High: 70}, thresholds[MetricDisk])

	for _, k := range metricOrder {
		th := thresholds[k]
		assert.Equal(t, GradeB, gradeValue(th.Low, th), "%s low boundary", k)
		assert.Equal(t, GradeC, gradeValue(th.High, th), "%s high boundary", k)
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		cpu, mem, disk Grade
		want           Grade
	}{
		{GradeA, GradeA, GradeA, GradeA},
		{GradeC, GradeC, GradeC, GradeC},
		{GradeA, GradeA, GradeB, GradeA},
		{GradeA, GradeB, GradeB, GradeB},
		{GradeB, GradeB, GradeB, GradeB},
		{GradeB, GradeB, GradeC, GradeB},
		{GradeB, GradeC, GradeC, GradeC},
		{GradeA, GradeA, GradeC, GradeB},
		{GradeA, GradeC, GradeC, GradeB},
		{GradeB, GradeC, GradeA, GradeB},
	}

	for _, tt := range tests {
		name := string(tt.cpu + tt.mem + tt.disk)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate(tt.cpu, tt.mem, tt.disk))
		})
	}
}

func TestAggregateIgnoresOrder(t *testing.T) {
	grades := []Grade{GradeA, GradeB, GradeC}
	for _, a := range grades {
		for _, b := range grades {
			for _, c := range grades {
				want := aggregate(a, b, c)
				assert.Equal(t, want, aggregate(c, a, b))
				assert.Equal(t, want, aggregate(b, c, a))
			}
		}
	}
}

func TestAggregateDependsOnlyOnScoreSum(t *testing.T) {
	grades := []Grade{GradeA, GradeB, GradeC}
	for _, a := range grades {
		for _, b := range grades {
			for _, c := range grades {
				got := aggregate(a, b, c)
				switch sum := a.Score() + b.Score() + c.Score(); {
				case sum >= 8:
					assert.Equal(t, GradeA, got, "%s%s%s", a, b, c)
				case sum >= 5:
					assert.Equal(t, GradeB, got, "%s%s%s", a, b, c)
				default:
					assert.Equal(t, GradeC, got, "%s%s%s", a, b, c)
				}
			}
		}
	}

	// A,C,C has the same mean as B,B,C.
	assert.Equal(t, GradeB, aggregate(GradeA, GradeC, GradeC))
	assert.Equal(t, GradeB, aggregate(GradeC, GradeB, GradeB))
	assert.Equal(t, GradeA, aggregate(GradeB, GradeA, GradeA))
}

func TestGradeScoreAndOrder(t *testing.T) {
	assert.Equal(t, 3, GradeA.Score())
	assert.Equal(t, 2, GradeB.Score())
	assert.Equal(t, 1, GradeC.Score())
	assert.Equal(t, 0, Grade("F").Score())

	assert.True(t, GradeA.Better(GradeB))
	assert.True(t, GradeB.Better(GradeC))
	assert.False(t, GradeC.Better(GradeA))
	assert.False(t, GradeB.Better(GradeB))
}

func TestParseGrade(t *testing.T) {
	g, err := parseGrade("B")
	assert.NoError(t, err)
	assert.Equal(t, GradeB, g)

	_, err = parseGrade("b")
	assert.Error(t, err)
	_, err = parseGrade("")
	assert.Error(t, err)
}
