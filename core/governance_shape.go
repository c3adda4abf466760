package core

// IsValidKeySet confirms the changed-key set matches the shape of a
// recognised governance operation (spec §4.3). It delegates to one shape
// check today; the split is preserved deliberately so a future vote or
// parameter-change shape can be added alongside it without inlining this
// function (spec §9).
func IsValidKeySet(ctx StorageContext, changedKeys []Key) (bool, *VpError) {
	return isValidProposalInitKeySet(ctx, changedKeys)
}

// isValidProposalInitKeySet checks the proposal-init shape: the counter key
// plus the five mandatory new-proposal fields must all be present in the
// changed-key set. The counter's pre-image is read with the error-surfacing
// typed reader because its absence cannot be evaluated at all — this is the
// one predicate-boundary failure GovVP can return (spec §4.3, §6, §7.1).
func isValidProposalInitKeySet(ctx StorageContext, changedKeys []Key) (bool, *VpError) {
	counterKey := CounterKey()
	preCounter, vErr := readUint64WithError(ctx, counterKey, ViewPre)
	if vErr != nil {
		return false, vErr
	}

	mandatory := []Key{
		counterKey,
		ContentKey(preCounter),
		AuthorKey(preCounter),
		FundsKey(preCounter),
		StartEpochKey(preCounter),
		EndEpochKey(preCounter),
	}

	present := make(map[string]bool, len(changedKeys))
	for _, k := range changedKeys {
		present[k.String()] = true
	}
	for _, m := range mandatory {
		if !present[m.String()] {
			return false, nil
		}
	}
	return true, nil
}
