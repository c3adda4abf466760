package core

import "testing"

func seedShapeLedger(t *testing.T, preCounter uint64) *Ledger {
	t.Helper()
	l := NewLedger()
	if err := l.Set(CounterKey().Bytes(), encodeUint64(preCounter)); err != nil {
		t.Fatalf("seed counter: %v", err)
	}
	return l
}

func TestIsValidProposalInitKeySetAcceptsCompleteSet(t *testing.T) {
	l := seedShapeLedger(t, 7)
	changes := NewChangeSet()
	changed := []Key{CounterKey(), ContentKey(7), AuthorKey(7), FundsKey(7), StartEpochKey(7), EndEpochKey(7)}
	ctx := NewTxContext(l, changes, 10)

	ok, vErr := IsValidKeySet(ctx, changed)
	if vErr != nil {
		t.Fatalf("unexpected boundary error: %v", vErr)
	}
	if !ok {
		t.Fatalf("expected complete key set to be valid")
	}
}

func TestIsValidProposalInitKeySetRejectsMissingField(t *testing.T) {
	l := seedShapeLedger(t, 7)
	changes := NewChangeSet()
	changed := []Key{CounterKey(), ContentKey(7), AuthorKey(7), FundsKey(7), StartEpochKey(7)} // end_epoch missing
	ctx := NewTxContext(l, changes, 10)

	ok, vErr := IsValidKeySet(ctx, changed)
	if vErr != nil {
		t.Fatalf("unexpected boundary error: %v", vErr)
	}
	if ok {
		t.Fatalf("expected incomplete key set to be rejected")
	}
}

func TestIsValidProposalInitKeySetSurfacesMissingCounterAsBoundaryError(t *testing.T) {
	l := NewLedger() // counter never seeded
	changes := NewChangeSet()
	changed := []Key{CounterKey(), ContentKey(0), AuthorKey(0), FundsKey(0), StartEpochKey(0), EndEpochKey(0)}
	ctx := NewTxContext(l, changes, 10)

	_, vErr := IsValidKeySet(ctx, changed)
	if vErr == nil {
		t.Fatalf("expected a boundary error when the counter has no pre-image")
	}
	if vErr.Kind != VpErrNonExistingKey {
		t.Fatalf("expected VpErrNonExistingKey, got %v", vErr.Kind)
	}
}
