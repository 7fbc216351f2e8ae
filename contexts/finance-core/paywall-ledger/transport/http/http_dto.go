package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InitializeConfigRequest struct {
	FeeRecipient        string `json:"fee_recipient"`
	MinFeeAmount        uint64 `json:"min_fee_amount"`
	FeePercent          uint64 `json:"fee_percent"`
	PaywallCreationCost uint64 `json:"paywall_creation_cost"`
}

// UpdateFeesRequest replaces every fee field at once.
type UpdateFeesRequest = InitializeConfigRequest

type UpdateAuthorityRequest struct {
	NewAuthority string `json:"new_authority"`
}

type ConfigDTO struct {
	Slot                string `json:"slot"`
	Authority           string `json:"authority"`
	FeeRecipient        string `json:"fee_recipient"`
	MinFeeAmount        uint64 `json:"min_fee_amount"`
	FeePercent          uint64 `json:"fee_percent"`
	PaywallCreationCost uint64 `json:"paywall_creation_cost"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

type ConfigResponse struct {
	Status string    `json:"status"`
	Data   ConfigDTO `json:"data"`
}

type CreatePaywallRequest struct {
	PaywallID   string `json:"paywall_id"`
	MaxSupply   uint64 `json:"max_supply"`
	PriceAmount uint64 `json:"price_amount"`
}

type UpdatePaywallRequest struct {
	MaxSupply   uint64 `json:"max_supply"`
	PriceAmount uint64 `json:"price_amount"`
}

type PaywallDTO struct {
	Slot        string  `json:"slot"`
	PaywallID   string  `json:"paywall_id"`
	CreatorID   string  `json:"creator_id"`
	PriceAmount uint64  `json:"price_amount"`
	MaxSupply   uint64  `json:"max_supply"`
	MintedCount uint64  `json:"minted_count"`
	Remaining   *uint64 `json:"remaining,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type PaywallResponse struct {
	Status      string     `json:"status"`
	CreationFee uint64     `json:"creation_fee,omitempty"`
	Data        PaywallDTO `json:"data"`
}

type ListPaywallsRequest struct {
	CreatorID string
	Limit     int
	Offset    int
}

type ListPaywallsResponse struct {
	Status string       `json:"status"`
	Data   []PaywallDTO `json:"data"`
}

type PaymentDTO struct {
	Slot          string `json:"slot"`
	CreatorID     string `json:"creator_id"`
	PaywallID     string `json:"paywall_id"`
	PayerID       string `json:"payer_id"`
	AmountPaid    uint64 `json:"amount_paid"`
	FeeAmount     uint64 `json:"fee_amount"`
	CreatorAmount uint64 `json:"creator_amount"`
	CreatedAt     string `json:"created_at"`
}

type PurchaseResponse struct {
	Status  string     `json:"status"`
	Payment PaymentDTO `json:"payment"`
	Paywall PaywallDTO `json:"paywall"`
}

type PaymentResponse struct {
	Status string     `json:"status"`
	Data   PaymentDTO `json:"data"`
}

type CreditAccountRequest struct {
	Amount uint64 `json:"amount"`
}

type BalanceResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountID string `json:"account_id"`
		Balance   uint64 `json:"balance"`
	} `json:"data"`
}
