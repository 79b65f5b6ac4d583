// Package api defines the wire messages of the splitter gateway.
//
// Messages are plain structs serialized as JSON (see Codec). Field names
// follow the receipt service's historical JSON: receipts are "receiptId",
// totals are "subTotal"/"taxTotal".
package api

// Item is a receipt line item.
type Item struct {
	ID          int64   `json:"id,omitempty"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Bill is a receipt.
type Bill struct {
	ID        int64   `json:"id,omitempty"`
	StoreName string  `json:"storeName,omitempty"`
	SubTotal  float64 `json:"subTotal"`
	TaxTotal  float64 `json:"taxTotal"`
	Items     []Item  `json:"items"`
	CreatedAt int64   `json:"createdAt,omitempty"`
}

// User is a roster entry.
type User struct {
	UserID    int64  `json:"userId"`
	ReceiptID int64  `json:"receiptId"`
	Name      string `json:"name"`
}

// ShareRecord is a stored per-item, per-user share.
type ShareRecord struct {
	ItemID   int64   `json:"itemId,omitempty"`
	ItemName string  `json:"itemName,omitempty"`
	UserID   int64   `json:"userId"`
	Share    float64 `json:"share"`
	Cost     float64 `json:"cost"`
}

// SplitShare is one user's weight on a submitted item.
type SplitShare struct {
	UserID int64   `json:"userId"`
	Share  float64 `json:"share"`
}

// Split is one submitted item.
type Split struct {
	ItemID   int64        `json:"itemId"`
	ItemName string       `json:"itemName"`
	Price    float64      `json:"price"`
	Shares   []SplitShare `json:"shares"`
}

type PutBillRequest struct {
	Bill Bill `json:"bill"`
}

type PutBillResponse struct {
	ReceiptID int64 `json:"receiptId"`
}

type GetBillRequest struct {
	ReceiptID int64 `json:"receiptId"`
}

type GetBillResponse struct {
	Bill Bill `json:"bill"`
}

type GetSharesRequest struct {
	ReceiptID int64 `json:"receiptId"`
}

type GetSharesResponse struct {
	Shares []ShareRecord `json:"shares"`
}

type SubmitSharesRequest struct {
	ReceiptID int64   `json:"receiptId"`
	Splits    []Split `json:"splits"`
}

type SubmitSharesResponse struct{}

type GetCalculationRequest struct {
	ReceiptID int64 `json:"receiptId"`
}

// GetCalculationResponse carries the calculation summary as text.
type GetCalculationResponse struct {
	Text string `json:"text"`
}

type AddUsersRequest struct {
	Users []User `json:"users"`
}

// AddUsersResponse echoes the users with their assigned IDs.
type AddUsersResponse struct {
	Users []User `json:"users"`
}

type ListUsersRequest struct {
	ReceiptID int64 `json:"receiptId"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type RemoveUserRequest struct {
	ReceiptID int64 `json:"receiptId"`
	UserID    int64 `json:"userId"`
}

type RemoveUserResponse struct{}
