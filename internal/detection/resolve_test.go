package detection

import (
	"testing"
)

func TestResolveOverlaps_GreedyByScore(t *testing.T) {
	circles := []Circle{
		{Row: 0, Col: 5, Radius: 10, Score: 8},
		{Row: 0, Col: 0, Radius: 10, Score: 10},
		{Row: 0, Col: 50, Radius: 10, Score: 5},
	}

	kept := ResolveOverlaps(circles, 20)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 survivors, got %d", len(kept))
	}
	if kept[0].Score != 10 {
		t.Errorf("Strongest circle should win, got score %g", kept[0].Score)
	}
	if kept[1].Col != 50 {
		t.Errorf("Distant circle should survive, got col %d", kept[1].Col)
	}
}

func TestResolveOverlaps_PairwiseDistance(t *testing.T) {
	circles := []Circle{
		{Row: 10, Col: 10, Score: 3},
		{Row: 12, Col: 14, Score: 9},
		{Row: 80, Col: 80, Score: 1},
		{Row: 81, Col: 83, Score: 7},
		{Row: 40, Col: 45, Score: 5},
	}
	minDist := 15.0

	kept := ResolveOverlaps(circles, minDist)

	for i := range kept {
		for j := i + 1; j < len(kept); j++ {
			if d := distance(kept[i], kept[j]); d < minDist {
				t.Errorf("Survivors %d and %d only %.1f apart, want >= %.1f", i, j, d, minDist)
			}
		}
	}
	if len(kept) != 3 {
		t.Errorf("Expected 3 survivors, got %d", len(kept))
	}
}

func TestResolveOverlaps_InputUntouched(t *testing.T) {
	circles := []Circle{
		{Row: 0, Col: 0, Score: 1},
		{Row: 0, Col: 1, Score: 2},
	}

	ResolveOverlaps(circles, 10)

	if circles[0].Score != 1 || circles[1].Score != 2 {
		t.Error("Input slice order was mutated")
	}
}

func TestResolveOverlaps_Empty(t *testing.T) {
	if kept := ResolveOverlaps(nil, 10); len(kept) != 0 {
		t.Errorf("Expected empty result, got %d circles", len(kept))
	}
}

func TestExcludeOverlapping(t *testing.T) {
	normal := []Circle{
		{Row: 110, Col: 105, Radius: 70, Score: 4},
		{Row: 500, Col: 500, Radius: 70, Score: 3},
	}
	infected := []Circle{
		{Row: 100, Col: 100, Radius: 75, Score: 9},
	}

	kept := ExcludeOverlapping(normal, infected, 20)

	if len(kept) != 1 {
		t.Fatalf("Expected 1 survivor, got %d", len(kept))
	}
	if kept[0].Row != 500 {
		t.Errorf("Wrong circle survived: %+v", kept[0])
	}
}

func TestExcludeOverlapping_BoundaryDistance(t *testing.T) {
	// Centers exactly at r1+r2+margin apart stay
	normal := []Circle{{Row: 0, Col: 60, Radius: 20, Score: 1}}
	infected := []Circle{{Row: 0, Col: 0, Radius: 30, Score: 1}}

	if kept := ExcludeOverlapping(normal, infected, 10); len(kept) != 1 {
		t.Error("Circle exactly at the exclusion threshold should be kept")
	}
	if kept := ExcludeOverlapping(normal, infected, 11); len(kept) != 0 {
		t.Error("Circle inside the exclusion radius should be dropped")
	}
}

func TestExcludeOverlapping_NoExcluders(t *testing.T) {
	normal := []Circle{
		{Row: 10, Col: 10, Radius: 5, Score: 1},
		{Row: 20, Col: 20, Radius: 5, Score: 2},
	}

	kept := ExcludeOverlapping(normal, nil, 15)

	if len(kept) != len(normal) {
		t.Errorf("No excluders should mean no drops, got %d of %d", len(kept), len(normal))
	}
}
