package cryptotax

import "testing"

func TestLots_ConsumeFIFO(t *testing.T) {
	queue := lots{
		{Amount: Q(1), Price: R(100), Date: on("2024-01-01")},
		{Amount: Q(2), Price: R(200), Date: on("2024-02-01")},
	}

	matches, remaining, unmatched := queue.consume(Q(1.5))

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if !matches[0].Amount.Equal(Q(1)) || !matches[0].Price.Equal(R(100)) {
		t.Errorf("first match should drain the oldest lot, got %+v", matches[0])
	}
	if !matches[1].Amount.Equal(Q(0.5)) || !matches[1].Price.Equal(R(200)) {
		t.Errorf("second match should take partially from the next lot, got %+v", matches[1])
	}
	if !unmatched.IsZero() {
		t.Errorf("unmatched = %s, want 0", unmatched)
	}

	// The drained head is pruned, the partially consumed lot survives shrunk.
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining lot, got %d", len(remaining))
	}
	if !remaining[0].Amount.Equal(Q(1.5)) || remaining[0].Date != on("2024-02-01") {
		t.Errorf("remaining lot = %+v", remaining[0])
	}
}

func TestLots_ConsumeShortfall(t *testing.T) {
	queue := lots{{Amount: Q(1), Price: R(100), Date: on("2024-01-01")}}

	matches, remaining, unmatched := queue.consume(Q(3))

	if len(matches) != 1 || !matches[0].Amount.Equal(Q(1)) {
		t.Fatalf("expected the whole lot matched, got %+v", matches)
	}
	if len(remaining) != 0 {
		t.Errorf("expected empty queue, got %d lots", len(remaining))
	}
	if !unmatched.Equal(Q(2)) {
		t.Errorf("unmatched = %s, want 2", unmatched)
	}
}

func TestLots_TotalAndBaseCost(t *testing.T) {
	queue := lots{
		{Amount: Q(1), Price: R(100), Date: on("2024-01-01")},
		{Amount: Q(0.5), Price: R(200), Date: on("2024-02-01")},
	}
	if !queue.total().Equal(Q(1.5)) {
		t.Errorf("total = %s, want 1.5", queue.total())
	}
	if !queue.baseCost().Equal(R(200)) {
		t.Errorf("baseCost = %s, want 200", queue.baseCost())
	}
}
