// Package apiconv converts between gateway wire messages and domain models.
package apiconv

import (
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/pkg/api"
)

func BillFromAPI(b api.Bill) *models.Bill {
	items := make([]models.BillItem, len(b.Items))
	for i, item := range b.Items {
		items[i] = models.BillItem{ID: item.ID, Name: item.Description, Price: item.Price}
	}
	return &models.Bill{
		ID:        b.ID,
		StoreName: b.StoreName,
		Items:     items,
		Subtotal:  b.SubTotal,
		Tax:       b.TaxTotal,
		CreatedAt: b.CreatedAt,
	}
}

func BillToAPI(b *models.Bill) api.Bill {
	items := make([]api.Item, len(b.Items))
	for i, item := range b.Items {
		items[i] = api.Item{ID: item.ID, Description: item.Name, Price: item.Price}
	}
	return api.Bill{
		ID:        b.ID,
		StoreName: b.StoreName,
		SubTotal:  b.Subtotal,
		TaxTotal:  b.Tax,
		Items:     items,
		CreatedAt: b.CreatedAt,
	}
}

func UsersToAPI(users []models.User) []api.User {
	out := make([]api.User, len(users))
	for i, u := range users {
		out[i] = api.User{UserID: u.ID, ReceiptID: u.BillID, Name: u.Name}
	}
	return out
}

func UsersFromAPI(users []api.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = models.User{ID: u.UserID, BillID: u.ReceiptID, Name: u.Name}
	}
	return out
}

func RecordsToAPI(records []models.RemoteShareRecord) []api.ShareRecord {
	out := make([]api.ShareRecord, len(records))
	for i, r := range records {
		out[i] = api.ShareRecord(r)
	}
	return out
}

func RecordsFromAPI(records []api.ShareRecord) []models.RemoteShareRecord {
	out := make([]models.RemoteShareRecord, len(records))
	for i, r := range records {
		out[i] = models.RemoteShareRecord(r)
	}
	return out
}

// SplitsToAPI converts a finalize payload. Shares keep their user order.
func SplitsToAPI(splits []models.SubmittedSplit) []api.Split {
	out := make([]api.Split, len(splits))
	for i, s := range splits {
		shares := make([]api.SplitShare, len(s.Shares))
		for j, sh := range s.Shares {
			shares[j] = api.SplitShare{UserID: sh.UserID, Share: sh.Share}
		}
		out[i] = api.Split{
			ItemID:   s.ItemID,
			ItemName: s.ItemName,
			Price:    s.Price,
			Shares:   shares,
		}
	}
	return out
}
