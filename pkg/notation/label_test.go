package notation

import "testing"

func TestLabelForIndex(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		if got := LabelForIndex(tt.index); got != tt.want {
			t.Errorf("LabelForIndex(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestLabelForIndexUnique(t *testing.T) {
	seen := make(map[string]int)
	for i := range 2000 {
		l := LabelForIndex(i)
		if prev, ok := seen[l]; ok {
			t.Fatalf("LabelForIndex(%d) = %q, already used by %d", i, l, prev)
		}
		seen[l] = i
	}
}

func TestLabelForIndexPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("LabelForIndex(-1) should panic")
		}
	}()
	LabelForIndex(-1)
}
