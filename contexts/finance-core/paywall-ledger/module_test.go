package paywallledger_test

import (
	"context"
	"encoding/json"
	"testing"

	paywallledger "paywall/contexts/finance-core/paywall-ledger"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	httptransport "paywall/contexts/finance-core/paywall-ledger/transport/http"
	eventschemas "paywall/contracts/events/v1"
)

func TestInMemoryModuleEndToEnd(t *testing.T) {
	module := paywallledger.NewInMemoryModule(nil, nil)
	handler := module.Handler
	ctx := context.Background()

	if _, err := handler.InitializeConfigHandler(ctx, "authority", httptransport.InitializeConfigRequest{
		FeeRecipient:        "treasury",
		MinFeeAmount:        100,
		FeePercent:          5,
		PaywallCreationCost: 50,
	}); err != nil {
		t.Fatalf("initialize config failed: %v", err)
	}

	if err := module.Store.Credit("creator", 50); err != nil {
		t.Fatalf("credit creator failed: %v", err)
	}
	if err := module.Store.Credit("reader", 1000); err != nil {
		t.Fatalf("credit reader failed: %v", err)
	}

	created, err := handler.CreatePaywallHandler(ctx, "creator", httptransport.CreatePaywallRequest{
		PaywallID:   "essay",
		MaxSupply:   3,
		PriceAmount: 1000,
	})
	if err != nil {
		t.Fatalf("create paywall failed: %v", err)
	}
	if created.CreationFee != 50 || created.Data.Slot != services.PaywallSlot("creator", "essay").String() {
		t.Fatalf("unexpected create response: %+v", created)
	}

	purchase, err := handler.PurchasePaywallHandler(ctx, "reader", "creator", "essay")
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if purchase.Payment.FeeAmount != 100 || purchase.Payment.CreatorAmount != 900 {
		t.Fatalf("unexpected split: %+v", purchase.Payment)
	}

	balances := map[string]uint64{"reader": 0, "creator": 900, "treasury": 150}
	for account, want := range balances {
		resp, err := handler.GetBalanceHandler(ctx, account)
		if err != nil {
			t.Fatalf("get balance %s failed: %v", account, err)
		}
		if resp.Data.Balance != want {
			t.Fatalf("expected %s balance %d, got %d", account, want, resp.Data.Balance)
		}
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 outbox rows, got %d", len(pending))
	}
	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			t.Fatalf("decode envelope failed: %v", err)
		}
		if envelope.SourceService != "paywall-ledger" || envelope.PartitionKeyPath != "paywall_key" {
			t.Fatalf("unexpected envelope header: %+v", envelope)
		}
		if err := eventschemas.ValidatePayload(envelope.EventType, envelope.Data); err != nil {
			t.Fatalf("outbox payload violates schema: %v", err)
		}
	}
}
