package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/storage/sqlite"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) (apiconnect.SplitServiceClient, apiconnect.UserServiceClient) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	mux := http.NewServeMux()
	splitPath, splitHandler := apiconnect.NewSplitServiceHandler(NewSplitService(store))
	mux.Handle(splitPath, splitHandler)
	userPath, userHandler := apiconnect.NewUserServiceHandler(NewUserService(store))
	mux.Handle(userPath, userHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL),
		apiconnect.NewUserServiceClient(http.DefaultClient, server.URL)
}

// seedBill stores Pizza (10) and Soda (2) with 1.20 tax, plus Ann and Bob.
func seedBill(t *testing.T, splits apiconnect.SplitServiceClient, users apiconnect.UserServiceClient) int64 {
	t.Helper()
	ctx := context.Background()

	put, err := splits.PutBill(ctx, connect.NewRequest(&api.PutBillRequest{Bill: api.Bill{
		StoreName: "Trattoria",
		SubTotal:  12,
		TaxTotal:  1.2,
		Items: []api.Item{
			{ID: 1, Description: "Pizza", Price: 10},
			{ID: 2, Description: "Soda", Price: 2},
		},
	}}))
	if err != nil {
		t.Fatalf("PutBill failed: %v", err)
	}
	billID := put.Msg.ReceiptID

	_, err = users.AddUsers(ctx, connect.NewRequest(&api.AddUsersRequest{Users: []api.User{
		{ReceiptID: billID, Name: "Ann"},
		{ReceiptID: billID, Name: "Bob"},
	}}))
	if err != nil {
		t.Fatalf("AddUsers failed: %v", err)
	}
	return billID
}

func TestPutBill_GetBill(t *testing.T) {
	splits, users := setupTestServer(t)
	billID := seedBill(t, splits, users)

	resp, err := splits.GetBill(context.Background(), connect.NewRequest(&api.GetBillRequest{ReceiptID: billID}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	bill := resp.Msg.Bill
	if bill.ID != billID || bill.StoreName != "Trattoria" || bill.SubTotal != 12 || bill.TaxTotal != 1.2 {
		t.Errorf("unexpected bill: %+v", bill)
	}
	if len(bill.Items) != 2 || bill.Items[1].Description != "Soda" {
		t.Errorf("unexpected items: %+v", bill.Items)
	}
	if bill.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}
}

func TestGetBill_NotFound(t *testing.T) {
	splits, _ := setupTestServer(t)

	_, err := splits.GetBill(context.Background(), connect.NewRequest(&api.GetBillRequest{ReceiptID: 42}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestPutBill_RejectsNegativePrice(t *testing.T) {
	splits, _ := setupTestServer(t)

	_, err := splits.PutBill(context.Background(), connect.NewRequest(&api.PutBillRequest{Bill: api.Bill{
		Items: []api.Item{{Description: "Refund", Price: -3}},
	}}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestSubmitShares_StoresExactCosts(t *testing.T) {
	splits, users := setupTestServer(t)
	billID := seedBill(t, splits, users)
	ctx := context.Background()

	_, err := splits.SubmitShares(ctx, connect.NewRequest(&api.SubmitSharesRequest{
		ReceiptID: billID,
		Splits: []api.Split{
			{ItemID: 1, ItemName: "Pizza", Price: 10, Shares: []api.SplitShare{{UserID: 1, Share: 2}, {UserID: 2, Share: 1}}},
			{ItemID: 2, ItemName: "Soda", Price: 2, Shares: []api.SplitShare{{UserID: 1, Share: 0}, {UserID: 2, Share: 1}}},
		},
	}))
	if err != nil {
		t.Fatalf("SubmitShares failed: %v", err)
	}

	resp, err := splits.GetShares(ctx, connect.NewRequest(&api.GetSharesRequest{ReceiptID: billID}))
	if err != nil {
		t.Fatalf("GetShares failed: %v", err)
	}

	want := []api.ShareRecord{
		{ItemID: 1, ItemName: "Pizza", UserID: 1, Share: 2, Cost: 6.667},
		{ItemID: 1, ItemName: "Pizza", UserID: 2, Share: 1, Cost: 3.333},
		{ItemID: 2, ItemName: "Soda", UserID: 1, Share: 0, Cost: 0},
		{ItemID: 2, ItemName: "Soda", UserID: 2, Share: 1, Cost: 2},
	}
	got := resp.Msg.Shares
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSubmitShares_UnknownUser(t *testing.T) {
	splits, users := setupTestServer(t)
	billID := seedBill(t, splits, users)

	_, err := splits.SubmitShares(context.Background(), connect.NewRequest(&api.SubmitSharesRequest{
		ReceiptID: billID,
		Splits: []api.Split{
			{ItemID: 1, ItemName: "Pizza", Price: 10, Shares: []api.SplitShare{{UserID: 9, Share: 1}}},
		},
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Message() != "UserId 9 does not exist" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestGetCalculation(t *testing.T) {
	splits, users := setupTestServer(t)
	billID := seedBill(t, splits, users)
	ctx := context.Background()

	t.Run("NotFound before any submission", func(t *testing.T) {
		_, err := splits.GetCalculation(ctx, connect.NewRequest(&api.GetCalculationRequest{ReceiptID: billID}))
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	_, err := splits.SubmitShares(ctx, connect.NewRequest(&api.SubmitSharesRequest{
		ReceiptID: billID,
		Splits: []api.Split{
			{ItemID: 1, ItemName: "Pizza", Price: 10, Shares: []api.SplitShare{{UserID: 1, Share: 2}, {UserID: 2, Share: 1}}},
			{ItemID: 2, ItemName: "Soda", Price: 2, Shares: []api.SplitShare{{UserID: 2, Share: 1}}},
		},
	}))
	if err != nil {
		t.Fatalf("SubmitShares failed: %v", err)
	}

	t.Run("renders id-only lines with half-up rounding", func(t *testing.T) {
		resp, err := splits.GetCalculation(ctx, connect.NewRequest(&api.GetCalculationRequest{ReceiptID: billID}))
		if err != nil {
			t.Fatalf("GetCalculation failed: %v", err)
		}
		// Ann: 6.667 + 0.667 tax; Bob: 5.333 + 0.533 tax.
		want := "Total cost per user:\n" +
			"UserId: 1, Total Cost: 7.334\n" +
			"UserId: 2, Total Cost: 5.866\n" +
			"Subtotal: 12.00\n" +
			"Tax: 1.20\n" +
			"Grand Total: 13.20"
		if resp.Msg.Text != want {
			t.Errorf("text =\n%s\nwant\n%s", resp.Msg.Text, want)
		}
	})
}
