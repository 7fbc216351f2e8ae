package entities

import "encoding/hex"

// SlotKind names the record family a slot belongs to.
type SlotKind string

const (
	SlotKindConfig  SlotKind = "program_config"
	SlotKindPaywall SlotKind = "paywall"
	SlotKindPayment SlotKind = "payment"
)

// Slot is the canonical storage address of one record instance.
type Slot [32]byte

func (s Slot) String() string {
	return hex.EncodeToString(s[:])
}

// ParseSlot decodes the hex form produced by Slot.String.
func ParseSlot(raw string) (Slot, bool) {
	var slot Slot
	decoded, err := hex.DecodeString(raw)
	if err != nil || len(decoded) != len(slot) {
		return Slot{}, false
	}
	copy(slot[:], decoded)
	return slot, true
}
