package core

import "encoding/binary"

// rawRead fetches the bytes at key under the given view, with no decoding.
// existed is false when the store held nothing for the key; err is non-nil
// only for a genuine storage-backend failure.
func rawRead(ctx StorageContext, key Key, view View) (data []byte, existed bool, err error) {
	var b []byte
	if view == ViewPre {
		b, err = ctx.ReadPre(key.Bytes())
	} else {
		b, err = ctx.ReadPost(key.Bytes())
	}
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, nil
	}
	return b, true, nil
}

// readUint64WithError is the typed-reader entry point used at the predicate
// boundary, where a missing or corrupt value must be surfaced to the host
// rather than silently absorbed (spec §6, §7.1). It is only ever called on
// the counter key from the shape validator.
func readUint64WithError(ctx StorageContext, key Key, view View) (uint64, *VpError) {
	b, existed, err := rawRead(ctx, key, view)
	if err != nil {
		return 0, newStorageError(err)
	}
	if !existed {
		return 0, newNonExistingKeyError(key.String())
	}
	if len(b) != 8 {
		return 0, &VpError{Kind: VpErrDeserialization, Err: errBadUint64Length(len(b))}
	}
	return binary.LittleEndian.Uint64(b), nil
}

type errBadUint64Length int

func (e errBadUint64Length) Error() string {
	return "uint64: expected 8 bytes, got a different length"
}

// readUint64 is the rule-internal typed reader: any failure (non-existing
// key, bad length, storage error) collapses to ok=false. This absorption is
// deliberate and load-bearing for determinism (spec §4.2, §9): a richer
// error channel here could let node-local storage state leak into the
// verdict.
func readUint64(ctx StorageContext, key Key, view View) (uint64, bool) {
	b, existed, err := rawRead(ctx, key, view)
	if err != nil || !existed || len(b) != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

// readAmount reads a token amount, which shares the counter's canonical
// little-endian u64 encoding (spec §6 "Value encodings").
func readAmount(ctx StorageContext, key Key, view View) (Amount, bool) {
	return readUint64(ctx, key, view)
}

// readBytes reads raw, undecoded bytes (content / proposal code).
func readBytes(ctx StorageContext, key Key, view View) ([]byte, bool) {
	b, existed, err := rawRead(ctx, key, view)
	if err != nil || !existed {
		return nil, false
	}
	return b, true
}

// readAddress decodes a 20-byte address value.
func readAddress(ctx StorageContext, key Key, view View) (Address, bool) {
	b, existed, err := rawRead(ctx, key, view)
	if err != nil || !existed || len(b) != 20 {
		return Address{}, false
	}
	var a Address
	copy(a[:], b)
	return a, true
}

// hasKeyPre is the rule-internal wrapper around StorageContext.HasKeyPre: a
// storage error collapses to "does not have", matching readUint64's
// discipline of never letting a transient backend failure distinguish
// itself from absence.
func hasKeyPre(ctx StorageContext, key Key) bool {
	ok, err := ctx.HasKeyPre(key.Bytes())
	if err != nil {
		return false
	}
	return ok
}

// encodeUint64 is the canonical little-endian encoding used for both the
// counter and token amounts (spec §6).
func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
