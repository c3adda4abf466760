package core

import (
	"fmt"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// emptyWasmModule is the minimal valid WebAssembly module: the magic number
// and version, no sections. It stands in for a compiled proposal-init tx
// program.
var emptyWasmModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// WasmTxHost is a minimal stand-in for the WASM execution environment that,
// in the real ledger, runs a transaction's compiled program and produces the
// pre/post writeset GovVP is handed. That environment is explicitly out of
// scope for GovVP itself (spec §1); GovernanceService holds one and runs it
// ahead of every submission so the boundary between "the dispatcher executed
// a tx program" and "GovVP judges the resulting writeset" stays visible in
// the code, not just in comments.
type WasmTxHost struct {
	engine *wasmer.Engine
	store  *wasmer.Store
}

// NewWasmTxHost boots a wasmer engine/store pair.
func NewWasmTxHost() *WasmTxHost {
	engine := wasmer.NewEngine()
	return &WasmTxHost{engine: engine, store: wasmer.NewStore(engine)}
}

// RunProposalInit "executes" the (stubbed, empty) tx program and returns
// nothing but a confirmation that the module loaded: real execution would
// instead produce the ChangeSet that ValidateTx validates. Callers that want
// to exercise GovVP build the ChangeSet directly via ProposalInitTx instead
// of going through this stub.
func (h *WasmTxHost) RunProposalInit() error {
	module, err := wasmer.NewModule(h.store, emptyWasmModule)
	if err != nil {
		return fmt.Errorf("wasm tx host: compile: %w", err)
	}
	importObject := wasmer.NewImportObject()
	if _, err := wasmer.NewInstance(module, importObject); err != nil {
		return fmt.Errorf("wasm tx host: instantiate: %w", err)
	}
	return nil
}
