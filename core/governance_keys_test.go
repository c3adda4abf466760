package core

import "testing"

func TestKeyStringDistinguishesSegmentKind(t *testing.T) {
	addr := Address{0xaa}
	k := NewKey(AddrSeg(addr), StrSeg("counter"))
	other := NewKey(StrSeg("a:"+addr.String()), StrSeg("counter"))
	if k.String() == other.String() {
		t.Fatalf("address segment must not collide with an equivalent string segment")
	}
}

func TestProposalFieldKeyBuilders(t *testing.T) {
	id := uint64(7)
	cases := []struct {
		name string
		key  Key
		want int
	}{
		{"content", ContentKey(id), 4},
		{"author", AuthorKey(id), 4},
		{"funds", FundsKey(id), 4},
		{"proposal_code", ProposalCodeKey(id), 4},
		{"grace_epoch", GraceEpochKey(id), 4},
		{"start_epoch", StartEpochKey(id), 4},
		{"end_epoch", EndEpochKey(id), 4},
		{"counter", CounterKey(), 2},
		{"vote", VoteKey(id, "voter-1"), 5},
	}
	for _, c := range cases {
		if c.key.Len() != c.want {
			t.Errorf("%s: expected %d segments, got %d", c.name, c.want, c.key.Len())
		}
	}
}

func TestProposalIDParsesIdSegment(t *testing.T) {
	k := ContentKey(42)
	id, ok := proposalID(k)
	if !ok || id != 42 {
		t.Fatalf("expected id 42, got %d ok=%v", id, ok)
	}
}

func TestProposalIDRejectsNonProposalKey(t *testing.T) {
	id, ok := proposalID(CounterKey())
	if ok {
		t.Fatalf("counter key has no id segment, got id=%d", id)
	}
}

func TestGovBalanceKeyUsesNativeCurrencyAndGovAddress(t *testing.T) {
	k := GovBalanceKey()
	if k.Len() != 4 {
		t.Fatalf("expected 4 segments, got %d", k.Len())
	}
	seg2, _ := k.At(2)
	seg3, _ := k.At(3)
	if seg2.addr != NativeCurrency || seg3.addr != GovAddress {
		t.Fatalf("gov balance key does not reference native currency / gov address")
	}
}
