package core

// common_structs.go – centralised struct definitions referenced across the
// governance package. Kept deliberately small: the wider Synnergy core used
// to declare dozens of unrelated subsystem structs here (AI, AMM, P2P,
// HD wallets, ...); none of that is reachable from the governance validity
// predicate, so only the address/ledger primitives it depends on remain.

import (
	"encoding/hex"
	"fmt"
	"sync"
)

// Address is a 20-byte account or internal-module identifier.
type Address [20]byte

// String renders the address as a lowercase hex string without a prefix,
// matching the convention the ledger's balance keys are built from.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// Hex renders the address with a "0x" prefix, used by the CLI.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// Bytes returns the raw address bytes.
func (a Address) Bytes() []byte { return a[:] }

// IsZero reports whether the address is the zero value.
func (a Address) IsZero() bool { return a == Address{} }

// StringToAddress parses a hex-encoded (optionally 0x-prefixed) address.
func StringToAddress(s string) (Address, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 20 {
		return Address{}, fmt.Errorf("invalid address %q", s)
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// Hash is a 32-byte cryptographic digest.
type Hash [32]byte

// Ledger is the in-memory state backing the governance demo harness: a flat
// byte-addressed store. The production ledger's block/UTXO/contract
// bookkeeping lived here too, but none of it is an input to the governance
// validity predicate, so it has been trimmed. Account balances (including
// GOV_ADDRESS's) are not a separate table: they are ordinary keys in State,
// addressed via BalanceKey and read/written through AccountManager.
type Ledger struct {
	mu    sync.RWMutex
	State map[string][]byte
}

// NewLedger returns an initialised, empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{State: make(map[string][]byte)}
}

// Get returns the raw bytes stored at key, or nil if absent.
func (l *Ledger) Get(key []byte) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.State[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set writes raw bytes at key.
func (l *Ledger) Set(key, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.State == nil {
		l.State = make(map[string][]byte)
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	l.State[string(key)] = buf
	return nil
}

// Delete removes key from the store.
func (l *Ledger) Delete(key []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.State, string(key))
	return nil
}

// Has reports whether key currently has a value.
func (l *Ledger) Has(key []byte) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.State[string(key)]
	return ok, nil
}

var (
	appStore     KVStore
	appStoreOnce sync.Once
)

// CurrentStore returns the process-wide ledger store, lazily creating an
// in-memory one on first use. Production deployments would call
// SetCurrentStore during node bootstrap instead.
func CurrentStore() KVStore {
	appStoreOnce.Do(func() {
		if appStore == nil {
			appStore = NewLedger()
		}
	})
	return appStore
}

// SetCurrentStore overrides the process-wide ledger store. Intended for
// tests and for wiring an alternative backend at startup.
func SetCurrentStore(s KVStore) {
	appStoreOnce.Do(func() {})
	appStore = s
}
