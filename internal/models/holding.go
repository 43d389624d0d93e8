package models

// Holding is a user's current position in one symbol. Rows with zero quantity
// never persist; a sell that exhausts the position deletes the row.
type Holding struct {
	UserID   string `json:"user_id"`
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}
