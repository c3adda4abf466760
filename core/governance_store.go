package core

import "sync"

// KVStore is the flat byte-addressed backing store GovVP's pre/post views are
// read from. Ledger implements it; tests use it directly to seed state.
type KVStore interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
}

// View selects which image of the store a typed read targets.
type View int

const (
	// ViewPre is the committed store at block start.
	ViewPre View = iota
	// ViewPost is the pre view overlaid with the transaction's tentative
	// writeset.
	ViewPost
)

// StorageContext is the host capability surface GovVP is handed (spec §6,
// "Outbound interface"). Both views are immutable snapshots for the
// duration of a single ValidateTx call.
type StorageContext interface {
	ReadPre(key []byte) ([]byte, error)
	ReadPost(key []byte) ([]byte, error)
	HasKeyPre(key []byte) (bool, error)
	BlockEpoch() Epoch
}

// ChangeSet is a transaction's tentative writeset: the keys the post view
// differs from the pre view on. A key present in Deletes has no post-image
// even if it had a pre-image.
type ChangeSet struct {
	mu      sync.Mutex
	Writes  map[string][]byte
	Deletes map[string]bool
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{Writes: make(map[string][]byte), Deletes: make(map[string]bool)}
}

// Put stages key=value for the post view.
func (c *ChangeSet) Put(key Key, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := string(key.Bytes())
	delete(c.Deletes, k)
	c.Writes[k] = value
}

// Remove stages key for deletion in the post view.
func (c *ChangeSet) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := string(key.Bytes())
	delete(c.Writes, k)
	c.Deletes[k] = true
}

// ChangedKeys returns every key this change set touches, pre- or
// post-image, as the flat byte strings stored in the KVStore. GovVP is only
// ever handed the parsed Key values it builds itself when classifying, so
// callers should keep the Key alongside the byte form (as ProposalInitTx
// does by returning its changed-key list); this is exposed mainly for
// iteration/debugging.
func (c *ChangeSet) ChangedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.Writes)+len(c.Deletes))
	for k := range c.Writes {
		out = append(out, k)
	}
	for k := range c.Deletes {
		if _, ok := c.Writes[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// txContext implements StorageContext by reading the pre image straight from
// a KVStore and overlaying a ChangeSet for the post image.
type txContext struct {
	pre     KVStore
	changes *ChangeSet
	epoch   Epoch
}

// NewTxContext builds the StorageContext GovVP is invoked with: the
// committed store as the pre view, overlaid with changes for the post view,
// at the given block epoch.
func NewTxContext(pre KVStore, changes *ChangeSet, epoch Epoch) StorageContext {
	return &txContext{pre: pre, changes: changes, epoch: epoch}
}

func (c *txContext) ReadPre(key []byte) ([]byte, error) { return c.pre.Get(key) }

func (c *txContext) HasKeyPre(key []byte) (bool, error) { return c.pre.Has(key) }

func (c *txContext) ReadPost(key []byte) ([]byte, error) {
	k := string(key)
	c.changes.mu.Lock()
	defer c.changes.mu.Unlock()
	if c.changes.Deletes[k] {
		return nil, nil
	}
	if v, ok := c.changes.Writes[k]; ok {
		return v, nil
	}
	return c.pre.Get(key)
}

func (c *txContext) BlockEpoch() Epoch { return c.epoch }

// stagingStore lets an in-progress ChangeSet be read and written through the
// plain KVStore interface, so an ordinary KVStore-based helper can build a
// transaction's tentative writeset without touching committed state. It is
// the write-side counterpart of txContext's ReadPost: a Get falls through to
// the committed pre-image only when the key has no staged write or delete.
type stagingStore struct {
	pre     KVStore
	changes *ChangeSet
}

// newStagingStore binds changes atop pre so Set/Delete land in changes
// instead of mutating pre.
func newStagingStore(pre KVStore, changes *ChangeSet) *stagingStore {
	return &stagingStore{pre: pre, changes: changes}
}

func (s *stagingStore) Get(key []byte) ([]byte, error) {
	k := string(key)
	s.changes.mu.Lock()
	if s.changes.Deletes[k] {
		s.changes.mu.Unlock()
		return nil, nil
	}
	if v, ok := s.changes.Writes[k]; ok {
		s.changes.mu.Unlock()
		return v, nil
	}
	s.changes.mu.Unlock()
	return s.pre.Get(key)
}

func (s *stagingStore) Set(key, value []byte) error {
	k := string(key)
	s.changes.mu.Lock()
	delete(s.changes.Deletes, k)
	s.changes.Writes[k] = value
	s.changes.mu.Unlock()
	return nil
}

func (s *stagingStore) Delete(key []byte) error {
	k := string(key)
	s.changes.mu.Lock()
	delete(s.changes.Writes, k)
	s.changes.Deletes[k] = true
	s.changes.mu.Unlock()
	return nil
}

func (s *stagingStore) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}
