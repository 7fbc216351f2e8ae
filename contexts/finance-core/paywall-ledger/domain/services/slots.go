package services

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"strings"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
)

// DeriveSlot maps a record kind and its discriminators to a canonical slot.
// Every seed is length-prefixed before hashing, so ("ab","c") and ("a","bc")
// land on different slots.
func DeriveSlot(kind entities.SlotKind, discriminators ...string) entities.Slot {
	h := sha256.New()
	writeSeed(h, string(kind))
	for _, d := range discriminators {
		writeSeed(h, d)
	}
	var slot entities.Slot
	copy(slot[:], h.Sum(nil))
	return slot
}

func ConfigSlot() entities.Slot {
	return DeriveSlot(entities.SlotKindConfig)
}

// PaywallSlot and PaymentSlot trim identity seeds; paywall ids are taken
// byte for byte.
func PaywallSlot(creatorID string, paywallID string) entities.Slot {
	return DeriveSlot(entities.SlotKindPaywall, strings.TrimSpace(creatorID), paywallID)
}

func PaymentSlot(creatorID string, paywallID string, payerID string) entities.Slot {
	return DeriveSlot(entities.SlotKindPayment, strings.TrimSpace(creatorID), paywallID, strings.TrimSpace(payerID))
}

func writeSeed(w hash.Hash, seed string) {
	var prefix [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(prefix[:], uint64(len(seed)))
	_, _ = w.Write(prefix[:n])
	_, _ = w.Write([]byte(seed))
}
