package core

// Amount is a non-negative token quantity. The ledger never represents a
// negative balance or amount, matching the original's unsigned Amount type.
type Amount = uint64

// Epoch is the ledger's coarse-grained monotonic time unit.
type Epoch = uint64

// GovParams is the read-only protocol parameter record GovVP validates
// proposals against (spec §3 "Protocol parameter record"). It is populated
// from the PARAMETER keyspace by readGovParams; GovVP never writes it.
type GovParams struct {
	MaxProposalContentLength uint64
	MaxProposalCodeSize      uint64
	MinProposalPeriod        uint64
	MinProposalFund          Amount
}

// DefaultGovParams mirrors the scenario parameters of spec §8 and is used to
// seed a fresh ledger in tests. The CLI's seed command builds its parameters
// from viper instead, with the same values as its defaults.
func DefaultGovParams() GovParams {
	return GovParams{
		MaxProposalContentLength: 64,
		MaxProposalCodeSize:      128,
		MinProposalPeriod:        3,
		MinProposalFund:          100,
	}
}

// readGovParams decodes the four protocol parameters from the pre view. Any
// missing or corrupt parameter makes the whole read fail (ok=false); the
// rule engine treats that as "value unavailable" and rejects, per spec §4.2.
func readGovParams(ctx StorageContext) (GovParams, bool) {
	maxContent, ok := readUint64(ctx, ParameterKey(paramMaxContentLength), ViewPre)
	if !ok {
		return GovParams{}, false
	}
	maxCode, ok := readUint64(ctx, ParameterKey(paramMaxProposalCode), ViewPre)
	if !ok {
		return GovParams{}, false
	}
	minPeriod, ok := readUint64(ctx, ParameterKey(paramMinProposalPeriod), ViewPre)
	if !ok {
		return GovParams{}, false
	}
	minFund, ok := readUint64(ctx, ParameterKey(paramMinProposalFund), ViewPre)
	if !ok {
		return GovParams{}, false
	}
	return GovParams{
		MaxProposalContentLength: maxContent,
		MaxProposalCodeSize:      maxCode,
		MinProposalPeriod:        minPeriod,
		MinProposalFund:          minFund,
	}, true
}
