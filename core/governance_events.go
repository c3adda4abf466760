package core

import "sync"

// BroadcasterFunc is the signature the global event hook dispatches through,
// kept from the teacher's networking layer's broadcast pattern, minus the
// libp2p transport it used to sit on top of.
type BroadcasterFunc func(topic string, data []byte) error

var (
	broadcastMu   sync.RWMutex
	broadcastHook BroadcasterFunc
)

// SetBroadcaster installs the hook Broadcast dispatches through. Pass nil to
// disable broadcasting (the default, and what every test uses).
func SetBroadcaster(fn BroadcasterFunc) {
	broadcastMu.Lock()
	defer broadcastMu.Unlock()
	broadcastHook = fn
}

// Broadcast emits a governance event. With no hook installed it is a no-op
// that returns nil, so the caller's transaction path never errors for lack
// of a hook.
func Broadcast(topic string, data []byte) error {
	broadcastMu.RLock()
	fn := broadcastHook
	broadcastMu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(topic, data)
}
