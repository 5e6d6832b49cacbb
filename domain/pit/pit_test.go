package pit

import (
	"testing"

	"pitcheck/domain/core"
)

func TestRawPIT(t *testing.T) {
	draws := []float64{1, 2, 3, 4}

	cases := []struct {
		observed float64
		want     float64
	}{
		{2.5, 0.5},
		{0, 0},
		{10, 1},
		{1, 0.25}, // draws at the observed value count as covered
		{4, 1},
	}
	for _, tc := range cases {
		got, err := RawPIT(draws, tc.observed)
		if err != nil {
			t.Fatalf("RawPIT(%v): unexpected error: %v", tc.observed, err)
		}
		if got != tc.want {
			t.Errorf("RawPIT(%v) = %v, want %v", tc.observed, got, tc.want)
		}
	}
}

func TestRawPIT_EmptyDraws(t *testing.T) {
	if _, err := RawPIT(nil, 1.0); !core.IsInvalidInputError(err) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}

func TestRawPITMatrix(t *testing.T) {
	m := &DrawMatrix{
		Observed: []float64{2.5, 0.5},
		Draws: [][]float64{
			{1, 2, 3, 4},
			{1, 2, 3, 4},
		},
	}

	got, err := RawPITMatrix(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.5, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pit[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDrawMatrix_Validate(t *testing.T) {
	cases := []struct {
		name string
		m    DrawMatrix
	}{
		{"empty", DrawMatrix{}},
		{"observed mismatch", DrawMatrix{Observed: []float64{1}, Draws: [][]float64{{1}, {2}}}},
		{"empty rows", DrawMatrix{Observed: []float64{1}, Draws: [][]float64{{}}}},
		{"uneven rows", DrawMatrix{Observed: []float64{1, 2}, Draws: [][]float64{{1, 2}, {1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.m.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	valid := DrawMatrix{Observed: []float64{1, 2}, Draws: [][]float64{{1, 2, 3}, {4, 5, 6}}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid matrix rejected: %v", err)
	}
}

func TestGroupHelpers(t *testing.T) {
	observations := []Observation{
		{Group: "a"}, {Group: "b"}, {Group: "a"}, {Group: "c"}, {Group: "b"},
	}

	groups := Groups(observations)
	if len(groups) != 3 || groups[0] != "a" || groups[1] != "b" || groups[2] != "c" {
		t.Errorf("unexpected group order: %v", groups)
	}

	idx := GroupIndices(observations, "b")
	if len(idx) != 2 || idx[0] != 1 || idx[1] != 4 {
		t.Errorf("unexpected indices for group b: %v", idx)
	}
}
