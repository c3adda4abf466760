package core

import (
	"strconv"
	"strings"
)

// GOV_ADDRESS identifies the governance sub-ledger itself. It is an internal
// address: never a user-controlled account, only ever the first segment of a
// governance storage key or the account segment of its escrow balance.
var GovAddress = Address{0x00, 'g', 'o', 'v'}

// TokenAddress identifies the native token sub-ledger, whose balance keyspace
// the FUNDS/BALANCE rules read through.
var TokenAddress = Address{0x00, 't', 'o', 'k'}

// NativeCurrency is the ledger's single native denomination.
var NativeCurrency = Address{0x00, 'x', 'a', 'n'}

// Proposal field names, bit-exact per spec §6.
const (
	fieldContent      = "content"
	fieldAuthor       = "author"
	fieldFunds        = "funds"
	fieldProposalCode = "proposal_code"
	fieldGraceEpoch   = "grace_epoch"
	fieldStartEpoch   = "start_epoch"
	fieldEndEpoch     = "end_epoch"
	fieldVote         = "vote"
)

// Parameter key names, bit-exact per spec §6.
const (
	paramMaxContentLength  = "max_content_length"
	paramMaxProposalCode   = "max_proposal_code_size"
	paramMinProposalPeriod = "min_proposal_period"
	paramMinProposalFund   = "min_proposal_fund"
)

// segKind distinguishes the two shapes a storage key segment may take.
type segKind uint8

const (
	segString segKind = iota
	segAddress
)

// KeySegment is one element of an ordered storage key: either a UTF-8 string
// or an address.
type KeySegment struct {
	kind segKind
	str  string
	addr Address
}

// StrSeg builds a string key segment.
func StrSeg(s string) KeySegment { return KeySegment{kind: segString, str: s} }

// AddrSeg builds an address key segment.
func AddrSeg(a Address) KeySegment { return KeySegment{kind: segAddress, addr: a} }

// IsAddress reports whether the segment holds an address.
func (s KeySegment) IsAddress() bool { return s.kind == segAddress }

// Key is an ordered sequence of segments, e.g.
// GOV_ADDRESS / "proposal" / "7" / "content".
type Key []KeySegment

// NewKey builds a Key from segments.
func NewKey(segs ...KeySegment) Key { return Key(segs) }

// At returns the segment at index i, or false if the key is shorter.
func (k Key) At(i int) (KeySegment, bool) {
	if i < 0 || i >= len(k) {
		return KeySegment{}, false
	}
	return k[i], true
}

// Len returns the number of segments.
func (k Key) Len() int { return len(k) }

// String renders the key as the bytes stored in the underlying flat KVStore.
// Address segments are hex-encoded and tagged so they can never collide with
// a string segment (e.g. a proposal id "00670...6f76" is numeric and cannot
// equal an address' hex form prefixed with "a:"); this is an implementation
// choice local to the Go KVStore backend, not part of the consensus-critical
// key format described in spec §6, which only constrains segment identity
// and order, not serialisation.
func (k Key) String() string {
	var b strings.Builder
	for i, seg := range k {
		if i > 0 {
			b.WriteByte('/')
		}
		if seg.kind == segAddress {
			b.WriteString("a:")
			b.WriteString(seg.addr.String())
		} else {
			b.WriteString("s:")
			b.WriteString(seg.str)
		}
	}
	return b.String()
}

// Bytes is the KVStore key form of String.
func (k Key) Bytes() []byte { return []byte(k.String()) }

// CounterKey is GOV_ADDRESS / "counter".
func CounterKey() Key {
	return NewKey(AddrSeg(GovAddress), StrSeg("counter"))
}

// proposalFieldKey is GOV_ADDRESS / "proposal" / <id> / <field>.
func proposalFieldKey(id uint64, field string) Key {
	return NewKey(
		AddrSeg(GovAddress),
		StrSeg("proposal"),
		StrSeg(strconv.FormatUint(id, 10)),
		StrSeg(field),
	)
}

func ContentKey(id uint64) Key       { return proposalFieldKey(id, fieldContent) }
func AuthorKey(id uint64) Key        { return proposalFieldKey(id, fieldAuthor) }
func FundsKey(id uint64) Key         { return proposalFieldKey(id, fieldFunds) }
func ProposalCodeKey(id uint64) Key  { return proposalFieldKey(id, fieldProposalCode) }
func GraceEpochKey(id uint64) Key    { return proposalFieldKey(id, fieldGraceEpoch) }
func StartEpochKey(id uint64) Key    { return proposalFieldKey(id, fieldStartEpoch) }
func EndEpochKey(id uint64) Key      { return proposalFieldKey(id, fieldEndEpoch) }
func VoteKey(id uint64, voter string) Key {
	return NewKey(
		AddrSeg(GovAddress), StrSeg("proposal"),
		StrSeg(strconv.FormatUint(id, 10)), StrSeg(fieldVote), StrSeg(voter),
	)
}

// ParameterKey is GOV_ADDRESS / <param-name>.
func ParameterKey(name string) Key {
	return NewKey(AddrSeg(GovAddress), StrSeg(name))
}

// BalanceKey is TOKEN_ADDRESS / "balance" / <currency> / <account>.
func BalanceKey(currency, account Address) Key {
	return NewKey(
		AddrSeg(TokenAddress), StrSeg("balance"),
		AddrSeg(currency), AddrSeg(account),
	)
}

// GovBalanceKey is the governance sub-ledger's own native-currency balance
// key, the one the FUNDS rule cross-checks against.
func GovBalanceKey() Key { return BalanceKey(NativeCurrency, GovAddress) }

// proposalID returns the decimal integer parsed from the key's id segment
// (index 2), or false if that segment is absent, an address, or not valid
// decimal. Failing silently here (rather than returning an error) matches
// the original's get_id, which the rule engine depends on to reject
// malformed keys rather than panic (spec §4.1).
func proposalID(k Key) (uint64, bool) {
	seg, ok := k.At(2)
	if !ok || seg.kind != segString {
		return 0, false
	}
	id, err := strconv.ParseUint(seg.str, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
