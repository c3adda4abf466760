package core

import "fmt"

// AccountManager provides helper operations for creating accounts and
// moving their native-currency balances. It reads and writes through the
// same flat KVStore / BalanceKey keyspace the governance validity
// predicate's BALANCE and FUNDS rules evaluate, so a transfer performed here
// is visible to ValidateTx under the same key GovBalanceKey() names.
type AccountManager struct {
	store KVStore
}

// NewAccountManager constructs a manager bound to store.
func NewAccountManager(store KVStore) *AccountManager {
	return &AccountManager{store: store}
}

func balanceKeyFor(addr Address) []byte { return BalanceKey(NativeCurrency, addr).Bytes() }

// CreateAccount initialises a zero balance entry for addr. An error is
// returned if the account already exists or the manager has no store.
func (am *AccountManager) CreateAccount(addr Address) error {
	if am.store == nil {
		return fmt.Errorf("account manager: nil store")
	}
	key := balanceKeyFor(addr)
	exists, err := am.store.Has(key)
	if err != nil {
		return fmt.Errorf("account manager: %w", err)
	}
	if exists {
		return fmt.Errorf("account %s exists", addr.String())
	}
	return am.store.Set(key, encodeUint64(0))
}

// DeleteAccount removes addr's balance entry.
func (am *AccountManager) DeleteAccount(addr Address) error {
	if am.store == nil {
		return fmt.Errorf("account manager: nil store")
	}
	key := balanceKeyFor(addr)
	exists, err := am.store.Has(key)
	if err != nil {
		return fmt.Errorf("account manager: %w", err)
	}
	if !exists {
		return fmt.Errorf("account %s not found", addr.String())
	}
	return am.store.Delete(key)
}

// Balance returns addr's current native-currency balance, 0 if addr has no
// entry.
func (am *AccountManager) Balance(addr Address) (uint64, error) {
	if am.store == nil {
		return 0, fmt.Errorf("account manager: nil store")
	}
	raw, err := am.store.Get(balanceKeyFor(addr))
	if err != nil {
		return 0, fmt.Errorf("account manager: %w", err)
	}
	bal, _ := decodeUint64(raw) // absent or corrupt both read as zero
	return bal, nil
}

// Transfer moves amt from src to dst, verifying sufficient funds.
func (am *AccountManager) Transfer(src, dst Address, amt uint64) error {
	if am.store == nil {
		return fmt.Errorf("account manager: nil store")
	}
	if amt == 0 {
		return fmt.Errorf("transfer amount must be positive")
	}
	srcBal, err := am.Balance(src)
	if err != nil {
		return err
	}
	if srcBal < amt {
		return fmt.Errorf("insufficient balance")
	}
	dstBal, err := am.Balance(dst)
	if err != nil {
		return err
	}
	if err := am.store.Set(balanceKeyFor(src), encodeUint64(srcBal-amt)); err != nil {
		return fmt.Errorf("account manager: %w", err)
	}
	if err := am.store.Set(balanceKeyFor(dst), encodeUint64(dstBal+amt)); err != nil {
		return fmt.Errorf("account manager: %w", err)
	}
	return nil
}

// Fund credits amt to addr with no corresponding debit. It exists for
// genesis/demo bootstrapping (a faucet), not for the governance escrow path,
// which moves funds between two accounts via Transfer instead.
func (am *AccountManager) Fund(addr Address, amt uint64) error {
	if am.store == nil {
		return fmt.Errorf("account manager: nil store")
	}
	bal, err := am.Balance(addr)
	if err != nil {
		return err
	}
	return am.store.Set(balanceKeyFor(addr), encodeUint64(bal+amt))
}
