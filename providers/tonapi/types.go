package tonapi

// Event is one TonAPI event: a batch of actions sharing an event id.
type Event struct {
	EventID   string   `json:"event_id"`
	Timestamp int64    `json:"timestamp"`
	Actions   []Action `json:"actions"`
	IsScam    bool     `json:"is_scam"`
}

type Action struct {
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	JettonTransfer *JettonTransfer `json:"JettonTransfer,omitempty"`
	TonTransfer    *TonTransfer    `json:"TonTransfer,omitempty"`
}

// JettonTransfer is a token transfer action. Amount is in raw jetton
// units, scaled by Jetton.Decimals.
type JettonTransfer struct {
	Sender    Account    `json:"sender"`
	Recipient Account    `json:"recipient"`
	Amount    string     `json:"amount"`
	Comment   string     `json:"comment,omitempty"`
	Jetton    JettonInfo `json:"jetton"`
}

type TonTransfer struct {
	Sender    Account `json:"sender"`
	Recipient Account `json:"recipient"`
	Amount    int64   `json:"amount"`
	Comment   string  `json:"comment,omitempty"`
}

type JettonInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

type Account struct {
	Address  string `json:"address"`
	Name     string `json:"name,omitempty"`
	IsWallet bool   `json:"is_wallet,omitempty"`
}

// WebhookPayload is what TonAPI posts to the webhook endpoint. Event may
// be nil, in which case TxHash points at the full event to fetch.
type WebhookPayload struct {
	EventType string `json:"event_type,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	TxHash    string `json:"tx_hash,omitempty"`
	Lt        int64  `json:"lt,omitempty"`
	Event     *Event `json:"event,omitempty"`
}
