package exerciser_test

import (
	"strings"
	"testing"

	"github.com/downfa11-org/jetstream-exerciser/pkg/exerciser"
)

func TestOracleGrowsFromEmpty(t *testing.T) {
	var o exerciser.Oracle

	if err := o.Merge(0, []uint64{0, 1, 2}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if o.Len() != 3 {
		t.Fatalf("Expected oracle length 3, got %d", o.Len())
	}

	got := o.Observed()
	for i, want := range []uint64{0, 1, 2} {
		if got[i] != want {
			t.Errorf("Observed[%d] = %d; want %d", i, got[i], want)
		}
	}
}

func TestOracleShorterLogDoesNotShrink(t *testing.T) {
	var o exerciser.Oracle

	if err := o.Merge(0, []uint64{0, 1, 2, 3}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := o.Merge(1, []uint64{0, 1}); err != nil {
		t.Fatalf("Merge of agreeing shorter log failed: %v", err)
	}
	if o.Len() != 4 {
		t.Fatalf("Expected oracle length 4 after shorter merge, got %d", o.Len())
	}
}

func TestOracleEqualsMaxConsumerLength(t *testing.T) {
	var o exerciser.Oracle

	logs := [][]uint64{
		{0, 1},
		{0, 1, 2, 3, 4},
		{0, 1, 2},
	}
	maxLen := 0
	for id, log := range logs {
		if err := o.Merge(id, log); err != nil {
			t.Fatalf("Merge of consumer %d failed: %v", id, err)
		}
		if len(log) > maxLen {
			maxLen = len(log)
		}
		if o.Len() != maxLen {
			t.Fatalf("After consumer %d, expected oracle length %d, got %d", id, maxLen, o.Len())
		}
	}
}

func TestOraclePrefixMismatch(t *testing.T) {
	var o exerciser.Oracle

	if err := o.Merge(0, []uint64{0, 1, 2}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	err := o.Merge(1, []uint64{0, 7})
	if err == nil {
		t.Fatal("Expected order-prefix mismatch error, got nil")
	}
	if !strings.Contains(err.Error(), "order-prefix mismatch") {
		t.Errorf("Expected mismatch error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "[0 1]") || !strings.Contains(err.Error(), "[0 7]") {
		t.Errorf("Expected both divergent prefixes in error, got: %v", err)
	}

	// a failed merge must not grow the oracle
	if o.Len() != 3 {
		t.Errorf("Expected oracle length 3 after failed merge, got %d", o.Len())
	}
}

func TestOracleObservedIsACopy(t *testing.T) {
	var o exerciser.Oracle

	if err := o.Merge(0, []uint64{0, 1}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	got := o.Observed()
	got[0] = 99
	if o.Observed()[0] != 0 {
		t.Error("Observed must return a copy, not the canonical slice")
	}
}
