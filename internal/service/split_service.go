package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/apiconv"
	"github.com/mmynk/splitter/internal/calculator"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/storage"
	"github.com/mmynk/splitter/internal/summarytext"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

// SplitService implements the Connect SplitService: receipts, stored shares
// and the authoritative calculation summary.
type SplitService struct {
	apiconnect.UnimplementedSplitServiceHandler
	store storage.Store
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store) *SplitService {
	return &SplitService{store: store}
}

// PutBill stores a receipt and returns its ID.
func (s *SplitService) PutBill(ctx context.Context, req *connect.Request[api.PutBillRequest]) (*connect.Response[api.PutBillResponse], error) {
	bill := apiconv.BillFromAPI(req.Msg.Bill)
	for i, item := range bill.Items {
		if item.Price < 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("item %d (%q) has negative price %v", i+1, item.Name, item.Price))
		}
	}

	if err := s.store.SaveBill(ctx, bill); err != nil {
		slog.Error("PutBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	slog.Info("Bill stored", "bill_id", bill.ID, "items", len(bill.Items))

	return connect.NewResponse(&api.PutBillResponse{ReceiptID: bill.ID}), nil
}

// GetBill retrieves a receipt by ID.
func (s *SplitService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	bill, err := s.store.GetBill(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("GetBill failed", "bill_id", req.Msg.ReceiptID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: apiconv.BillToAPI(bill)}), nil
}

// GetShares returns the stored share rows of a receipt. A receipt without
// submitted shares yields an empty list.
func (s *SplitService) GetShares(ctx context.Context, req *connect.Request[api.GetSharesRequest]) (*connect.Response[api.GetSharesResponse], error) {
	records, err := s.store.ListShares(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("GetShares failed", "bill_id", req.Msg.ReceiptID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.GetSharesResponse{Shares: apiconv.RecordsToAPI(records)}), nil
}

// SubmitShares replaces the receipt's share rows. Costs are derived here
// with exact decimal arithmetic; any cost sent by the client is ignored.
func (s *SplitService) SubmitShares(ctx context.Context, req *connect.Request[api.SubmitSharesRequest]) (*connect.Response[api.SubmitSharesResponse], error) {
	billID := req.Msg.ReceiptID
	roster, err := s.store.ListUsers(ctx, billID)
	if err != nil {
		slog.Error("SubmitShares failed to load roster", "bill_id", billID, "error", err)
		return nil, storeError(err)
	}

	records, err := shareRecords(req.Msg.Splits, roster)
	if err != nil {
		slog.Warn("SubmitShares rejected", "bill_id", billID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.ReplaceShares(ctx, billID, records); err != nil {
		slog.Error("SubmitShares failed", "bill_id", billID, "error", err)
		return nil, storeError(err)
	}
	slog.Info("Shares stored", "bill_id", billID, "items", len(req.Msg.Splits), "rows", len(records))

	return connect.NewResponse(&api.SubmitSharesResponse{}), nil
}

// shareRecords turns submitted splits into stored rows, one per user per item.
func shareRecords(splits []api.Split, roster []models.User) ([]models.RemoteShareRecord, error) {
	var records []models.RemoteShareRecord
	for _, split := range splits {
		var total float64
		for _, sh := range split.Shares {
			if _, ok := models.FindUserByID(roster, sh.UserID); !ok {
				return nil, fmt.Errorf("UserId %d does not exist", sh.UserID)
			}
			total += calculator.NormalizeShare(sh.Share)
		}
		for _, sh := range split.Shares {
			share := calculator.NormalizeShare(sh.Share)
			records = append(records, models.RemoteShareRecord{
				ItemID:   split.ItemID,
				ItemName: split.ItemName,
				UserID:   sh.UserID,
				Share:    share,
				Cost:     calculator.ExactShareCost(share, total, split.Price).InexactFloat64(),
			})
		}
	}
	return records, nil
}

// GetCalculation renders the authoritative summary for a receipt from its
// stored share rows.
func (s *SplitService) GetCalculation(ctx context.Context, req *connect.Request[api.GetCalculationRequest]) (*connect.Response[api.GetCalculationResponse], error) {
	billID := req.Msg.ReceiptID

	records, err := s.store.ListShares(ctx, billID)
	if err != nil {
		slog.Error("GetCalculation failed to load shares", "bill_id", billID, "error", err)
		return nil, storeError(err)
	}
	if len(records) == 0 {
		return nil, connect.NewError(connect.CodeNotFound,
			fmt.Errorf("no shares submitted for receipt %d", billID))
	}

	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		slog.Error("GetCalculation failed to load bill", "bill_id", billID, "error", err)
		return nil, storeError(err)
	}

	users, totals := calculator.ExactTotals(records, bill.Items, bill.Totals())
	lines := make([]summarytext.Line, 0, len(users)+3)
	for _, u := range users {
		lines = append(lines, summarytext.IDUserLine{UserID: u.UserID, Cost: u.Total})
	}
	lines = append(lines,
		summarytext.SubtotalLine{Amount: totals.Subtotal},
		summarytext.TaxLine{Amount: totals.Tax},
		summarytext.GrandTotalLine{Amount: totals.GrandTotal},
	)

	slog.Debug("Calculation rendered", "bill_id", billID, "users", len(users),
		"grand_total", totals.GrandTotal.StringFixed(2))

	return connect.NewResponse(&api.GetCalculationResponse{Text: summarytext.Write(lines)}), nil
}
