package core

import "testing"

func TestSubmitProposalEscrowsFundsThroughAccountManager(t *testing.T) {
	store := NewLedger()
	if err := SeedGenesis(store, DefaultGovParams()); err != nil {
		t.Fatalf("seed genesis: %v", err)
	}
	if err := store.Set(CounterKey().Bytes(), encodeUint64(0)); err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	author := Address{0x0a}
	am := NewAccountManager(store)
	if err := am.CreateAccount(author); err != nil {
		t.Fatalf("create author account: %v", err)
	}
	if err := am.Fund(author, 500); err != nil {
		t.Fatalf("fund author: %v", err)
	}

	svc := NewGovernanceService(store, 10)
	tx := ProposalInit{
		Author:     author,
		Content:    make([]byte, 10),
		StartEpoch: 13,
		EndEpoch:   16,
		Funds:      150,
	}

	accepted, id, err := svc.SubmitProposal(tx, []Address{author})
	if err != nil {
		t.Fatalf("submit proposal: %v", err)
	}
	if !accepted {
		t.Fatalf("expected proposal to be accepted")
	}
	if id != 0 {
		t.Fatalf("expected id 0, got %d", id)
	}

	authorBal, err := am.Balance(author)
	if err != nil {
		t.Fatalf("author balance: %v", err)
	}
	if authorBal != 350 {
		t.Fatalf("expected author balance 350 after escrow, got %d", authorBal)
	}
	govBal, err := am.Balance(GovAddress)
	if err != nil {
		t.Fatalf("gov balance: %v", err)
	}
	if govBal != 150 {
		t.Fatalf("expected GOV_ADDRESS balance 150 after escrow, got %d", govBal)
	}
}

func TestSubmitProposalRejectsWhenAuthorUnderfunded(t *testing.T) {
	store := NewLedger()
	if err := SeedGenesis(store, DefaultGovParams()); err != nil {
		t.Fatalf("seed genesis: %v", err)
	}
	if err := store.Set(CounterKey().Bytes(), encodeUint64(0)); err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	author := Address{0x0b}
	svc := NewGovernanceService(store, 10)
	tx := ProposalInit{
		Author:     author,
		Content:    make([]byte, 10),
		StartEpoch: 13,
		EndEpoch:   16,
		Funds:      150,
	}

	if _, _, err := svc.SubmitProposal(tx, []Address{author}); err == nil {
		t.Fatalf("expected error when author has no escrowable balance")
	}
}
