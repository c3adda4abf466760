package core

import "github.com/sirupsen/logrus"

// ValidateTx is the governance validity predicate's single entry point
// (spec §6, "Inbound interface"). It decides whether the transaction's
// proposed mutation of the governance key-space is admissible.
//
// txData is accepted for interface compatibility with the host dispatcher
// but unused by the current rule set (spec §2).
//
// A returned error is always a *VpError and always a predicate-boundary
// failure (spec §7.1); every rule-internal read failure is absorbed into a
// false verdict instead (spec §4.2, §7.2, §9).
func ValidateTx(ctx StorageContext, txData []byte, changedKeys []Key, verifiers map[Address]bool) (bool, error) {
	valid, vErr := IsValidKeySet(ctx, changedKeys)
	if vErr != nil {
		logrus.WithField("key", vErr.Key).Debug("governance vp: boundary error evaluating key-set shape")
		return false, vErr
	}
	if !valid {
		return false, nil
	}

	for _, key := range changedKeys {
		if !evaluateKey(ctx, key, verifiers) {
			logrus.WithField("key", key.String()).Debug("governance vp: rejected")
			return false, nil
		}
	}
	return true, nil
}

// evaluateKey dispatches a single changed key to its category's rule. It
// never returns an error: any unreadable value is an implicit false for
// this key (spec §4.4).
func evaluateKey(ctx StorageContext, key Key, verifiers map[Address]bool) bool {
	category := Classify(key)
	id, hasID := ProposalID(key)

	switch category {
	case CategoryCounter:
		return ruleCounter(ctx)
	case CategoryVote:
		// Votes are not yet allowed during proposal creation; the
		// classifier still distinguishes them for a future vote-submission
		// shape (spec §9).
		return false
	case CategoryContent:
		if !hasID {
			return false
		}
		return ruleContent(ctx, id)
	case CategoryProposalCode:
		if !hasID {
			return false
		}
		return ruleProposalCode(ctx, id)
	case CategoryGraceEpoch:
		if !hasID {
			return false
		}
		return ruleGraceEpoch(ctx, id)
	case CategoryStartEpoch, CategoryEndEpoch:
		if !hasID {
			return false
		}
		return ruleStartEndEpoch(ctx, id)
	case CategoryFunds:
		if !hasID {
			return false
		}
		return ruleFunds(ctx, id)
	case CategoryAuthor:
		if !hasID {
			return false
		}
		return ruleAuthor(ctx, id, verifiers)
	case CategoryBalance:
		return ruleBalance(ctx)
	case CategoryParameter:
		// Protocol parameters are not changed by proposal-init
		// transactions; that is the parameter-governance code's job,
		// which is out of scope here.
		return false
	default: // CategoryUnknown
		return false
	}
}

func ruleCounter(ctx StorageContext) bool {
	pre, ok := readUint64(ctx, CounterKey(), ViewPre)
	if !ok {
		return false
	}
	post, ok := readUint64(ctx, CounterKey(), ViewPost)
	if !ok {
		return false
	}
	return pre+1 == post
}

func ruleContent(ctx StorageContext, id uint64) bool {
	key := ContentKey(id)
	if hasKeyPre(ctx, key) {
		return false
	}
	content, ok := readBytes(ctx, key, ViewPost)
	if !ok {
		return false
	}
	params, ok := readGovParams(ctx)
	if !ok {
		return false
	}
	return uint64(len(content)) < params.MaxProposalContentLength
}

func ruleProposalCode(ctx StorageContext, id uint64) bool {
	key := ProposalCodeKey(id)
	if hasKeyPre(ctx, key) {
		return false
	}
	code, ok := readBytes(ctx, key, ViewPost)
	if !ok {
		return false
	}
	params, ok := readGovParams(ctx)
	if !ok {
		return false
	}
	return uint64(len(code)) < params.MaxProposalCodeSize
}

func ruleGraceEpoch(ctx StorageContext, id uint64) bool {
	key := GraceEpochKey(id)
	if hasKeyPre(ctx, key) {
		return false
	}
	grace, ok := readUint64(ctx, key, ViewPost)
	if !ok {
		return false
	}
	end, ok := readUint64(ctx, EndEpochKey(id), ViewPost)
	if !ok {
		return false
	}
	return end < grace
}

// ruleStartEndEpoch backs both the START_EPOCH and END_EPOCH categories: a
// change to either key is validated against both epochs together (spec
// §4.4). The early inequality guard mirrors the original implementation,
// which checks it before the modular-alignment and minimum-lead-time
// conditions; it is what makes the later unsigned subtractions safe.
func ruleStartEndEpoch(ctx StorageContext, id uint64) bool {
	startKey := StartEpochKey(id)
	endKey := EndEpochKey(id)
	if hasKeyPre(ctx, startKey) || hasKeyPre(ctx, endKey) {
		return false
	}
	start, ok := readUint64(ctx, startKey, ViewPost)
	if !ok {
		return false
	}
	end, ok := readUint64(ctx, endKey, ViewPost)
	if !ok {
		return false
	}
	params, ok := readGovParams(ctx)
	if !ok {
		return false
	}
	minPeriod := params.MinProposalPeriod
	current := ctx.BlockEpoch()

	if end <= start || start <= current {
		return false
	}
	if (end-start)%minPeriod != 0 {
		return false
	}
	return start-current >= minPeriod
}

func ruleFunds(ctx StorageContext, id uint64) bool {
	postFunds, ok := readAmount(ctx, FundsKey(id), ViewPost)
	if !ok {
		return false
	}
	params, ok := readGovParams(ctx)
	if !ok {
		return false
	}
	if postFunds < params.MinProposalFund {
		return false
	}

	balKey := GovBalanceKey()
	preBal, okPre := readAmount(ctx, balKey, ViewPre)
	postBal, okPost := readAmount(ctx, balKey, ViewPost)
	if !okPre || !okPost {
		return false
	}
	if postBal < preBal {
		// Would underflow the unsigned delta below; reject instead
		// (spec §9 open question).
		return false
	}
	return postBal-preBal == postFunds
}

func ruleAuthor(ctx StorageContext, id uint64, verifiers map[Address]bool) bool {
	key := AuthorKey(id)
	if hasKeyPre(ctx, key) {
		return false
	}
	author, ok := readAddress(ctx, key, ViewPost)
	if !ok {
		return false
	}
	return verifiers[author]
}

// ruleBalance always re-checks the governance sub-ledger's own balance key,
// never the specific account segment of the key that triggered the BALANCE
// category. This mirrors the original source exactly and is deliberately
// redundant with ruleFunds for a proposal-init transaction (spec §9 design
// note: "The BALANCE rule and the FUNDS rule are partially redundant").
func ruleBalance(ctx StorageContext) bool {
	balKey := GovBalanceKey()
	params, ok := readGovParams(ctx)
	if !ok {
		return false
	}
	postBal, ok := readAmount(ctx, balKey, ViewPost)
	if !ok {
		return false
	}
	preBal, hasPre := readAmount(ctx, balKey, ViewPre)
	if hasPre {
		if postBal <= preBal {
			return false
		}
		return postBal-preBal >= params.MinProposalFund
	}
	return postBal >= params.MinProposalFund
}
