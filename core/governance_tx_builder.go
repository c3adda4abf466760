package core

import (
	"encoding/binary"
	"fmt"
)

// ProposalInit describes the fields an external proposal-creation
// transaction would submit. Building and committing this transaction is the
// transaction dispatcher's job in the real system (out of scope per spec
// §1); ProposalInitTx exists so this repository has something concrete that
// produces a pre/post writeset for ValidateTx to judge, in tests and in the
// CLI demo.
type ProposalInit struct {
	Author       Address
	Content      []byte
	ProposalCode []byte // optional; omitted when nil
	StartEpoch   Epoch
	EndEpoch     Epoch
	GraceEpoch   Epoch // optional; omitted when zero
	Funds        Amount
}

// ProposalInitTx builds the ChangeSet and changed-key list a proposal-init
// transaction would produce against store, and reports the id the new
// proposal will receive. It requires the counter and the governance
// sub-ledger's native-currency balance key to already exist in store,
// mirroring the ledger invariant that both are seeded at genesis, and it
// requires tx.Author to hold at least tx.Funds: the escrow move into
// GOV_ADDRESS is performed via AccountManager.Transfer, staged against the
// returned ChangeSet rather than the committed store, so the resulting
// GovBalanceKey() post-image is exactly the funds movement ruleFunds and
// ruleBalance validate.
func ProposalInitTx(store KVStore, tx ProposalInit) (*ChangeSet, []Key, uint64, error) {
	counterKey := CounterKey()
	rawCounter, err := store.Get(counterKey.Bytes())
	if err != nil {
		return nil, nil, 0, fmt.Errorf("proposal init tx: read counter: %w", err)
	}
	if rawCounter == nil {
		return nil, nil, 0, fmt.Errorf("proposal init tx: counter not seeded")
	}
	id, ok := decodeUint64(rawCounter)
	if !ok {
		return nil, nil, 0, fmt.Errorf("proposal init tx: counter value corrupt")
	}

	balKey := GovBalanceKey()
	seeded, err := store.Has(balKey.Bytes())
	if err != nil {
		return nil, nil, 0, fmt.Errorf("proposal init tx: read gov balance: %w", err)
	}
	if !seeded {
		return nil, nil, 0, fmt.Errorf("proposal init tx: governance balance not seeded")
	}

	changes := NewChangeSet()
	staging := newStagingStore(store, changes)
	am := NewAccountManager(staging)
	if err := am.Transfer(tx.Author, GovAddress, tx.Funds); err != nil {
		return nil, nil, 0, fmt.Errorf("proposal init tx: escrow funds into %s: %w", GovAddress.Hex(), err)
	}

	changed := []Key{counterKey, balKey, BalanceKey(NativeCurrency, tx.Author)}
	changes.Put(counterKey, encodeUint64(id+1))

	put := func(k Key, v []byte) {
		changed = append(changed, k)
		changes.Put(k, v)
	}
	put(ContentKey(id), tx.Content)
	put(AuthorKey(id), tx.Author.Bytes())
	put(FundsKey(id), encodeUint64(tx.Funds))
	put(StartEpochKey(id), encodeUint64(tx.StartEpoch))
	put(EndEpochKey(id), encodeUint64(tx.EndEpoch))
	if tx.ProposalCode != nil {
		put(ProposalCodeKey(id), tx.ProposalCode)
	}
	if tx.GraceEpoch != 0 {
		put(GraceEpochKey(id), encodeUint64(tx.GraceEpoch))
	}

	return changes, changed, id, nil
}

// ApplyChangeSet commits a validated ChangeSet to store. GovVP itself never
// calls this — it only accepts or rejects (spec §1 non-goals) — this is the
// harness/CLI stand-in for what the ledger's commit step would do once a
// transaction's verdict is true.
func ApplyChangeSet(store KVStore, cs *ChangeSet) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range cs.Writes {
		if err := store.Set([]byte(k), v); err != nil {
			return err
		}
	}
	for k := range cs.Deletes {
		if err := store.Delete([]byte(k)); err != nil {
			return err
		}
	}
	return nil
}

func decodeUint64(b []byte) (uint64, bool) {
	if len(b) != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}
