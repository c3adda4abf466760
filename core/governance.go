package core

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GovernanceService wires the proposal-init transaction builder to the
// validity predicate and, on acceptance, commits the result. It plays the
// role the transaction dispatcher and WASM execution environment play in
// the real ledger (spec §1 lists both as external collaborators); nothing
// here is part of GovVP itself, which remains the pure ValidateTx function
// in governance_vp.go.
type GovernanceService struct {
	store    KVStore
	epoch    Epoch
	wasmHost *WasmTxHost
}

// NewGovernanceService binds a service to a store and the block epoch it
// should evaluate proposals against.
func NewGovernanceService(store KVStore, epoch Epoch) *GovernanceService {
	return &GovernanceService{store: store, epoch: epoch, wasmHost: NewWasmTxHost()}
}

// SeedGenesis writes the counter, the governance sub-ledger's native-currency
// balance, and the four protocol parameters a fresh ledger needs before any
// proposal can be submitted.
func SeedGenesis(store KVStore, params GovParams) error {
	if err := store.Set(CounterKey().Bytes(), encodeUint64(0)); err != nil {
		return fmt.Errorf("seed genesis: counter: %w", err)
	}
	if err := store.Set(GovBalanceKey().Bytes(), encodeUint64(0)); err != nil {
		return fmt.Errorf("seed genesis: balance: %w", err)
	}
	pairs := []struct {
		key Key
		val uint64
	}{
		{ParameterKey(paramMaxContentLength), params.MaxProposalContentLength},
		{ParameterKey(paramMaxProposalCode), params.MaxProposalCodeSize},
		{ParameterKey(paramMinProposalPeriod), params.MinProposalPeriod},
		{ParameterKey(paramMinProposalFund), params.MinProposalFund},
	}
	for _, p := range pairs {
		if err := store.Set(p.key.Bytes(), encodeUint64(p.val)); err != nil {
			return fmt.Errorf("seed genesis: parameter %s: %w", p.key.String(), err)
		}
	}
	return nil
}

// SubmitProposal builds a proposal-init transaction, hands it to the
// governance validity predicate, and commits it if accepted. It returns the
// id the proposal would receive regardless of the verdict, so callers can
// log it either way.
func (s *GovernanceService) SubmitProposal(tx ProposalInit, verifiers []Address) (accepted bool, id uint64, err error) {
	corrID := uuid.New().String()
	logger := zap.L().Sugar().With("correlation_id", corrID)

	if err := s.wasmHost.RunProposalInit(); err != nil {
		logger.Errorf("wasm tx host failed to load proposal-init program: %v", err)
		return false, 0, fmt.Errorf("submit proposal: %w", err)
	}

	changes, changedKeys, id, err := ProposalInitTx(s.store, tx)
	if err != nil {
		logger.Errorf("building proposal-init tx failed: %v", err)
		return false, 0, err
	}

	verifierSet := make(map[Address]bool, len(verifiers))
	for _, v := range verifiers {
		verifierSet[v] = true
	}

	ctx := NewTxContext(s.store, changes, s.epoch)
	ok, vErr := ValidateTx(ctx, nil, changedKeys, verifierSet)
	if vErr != nil {
		logger.Errorf("governance vp boundary error for proposal %d: %v", id, vErr)
		return false, id, vErr
	}
	if !ok {
		logger.Infof("proposal %d rejected by governance vp", id)
		return false, id, nil
	}

	if err := ApplyChangeSet(s.store, changes); err != nil {
		logger.Errorf("committing proposal %d failed: %v", id, err)
		return false, id, err
	}

	_ = Broadcast("governance:proposal:accepted", encodeUint64(id))
	logger.Infof("proposal %d accepted", id)
	return true, id, nil
}
