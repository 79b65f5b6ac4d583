// Package gateway is the client side of the splitter gateway.
//
// Every failure, whether a dropped connection, a non-OK status or an
// unusable payload, is reported as an *UnavailableError so callers can
// switch to local computation with a single errors.Is(err, ErrUnavailable).
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/apiconv"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

// Gateway is the set of remote operations the splitter depends on.
type Gateway interface {
	PutBill(ctx context.Context, bill models.Bill) (int64, error)
	FetchBill(ctx context.Context, billID int64) (models.Bill, error)
	AddUsers(ctx context.Context, users []models.User) ([]models.User, error)
	FetchUsers(ctx context.Context, billID int64) ([]models.User, error)
	RemoveUser(ctx context.Context, billID, userID int64) error
	FetchShares(ctx context.Context, billID int64) ([]models.RemoteShareRecord, error)
	SubmitShares(ctx context.Context, billID int64, splits []models.SubmittedSplit) error
	FetchCalculation(ctx context.Context, billID int64) (string, error)
}

var _ Gateway = (*Client)(nil)

// Client talks to the gateway over Connect.
type Client struct {
	splits apiconnect.SplitServiceClient
	users  apiconnect.UserServiceClient
}

// New creates a client for the gateway at baseURL.
// A nil httpClient uses http.DefaultClient.
func New(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		splits: apiconnect.NewSplitServiceClient(httpClient, baseURL, opts...),
		users:  apiconnect.NewUserServiceClient(httpClient, baseURL, opts...),
	}
}

func (c *Client) PutBill(ctx context.Context, bill models.Bill) (int64, error) {
	resp, err := c.splits.PutBill(ctx, connect.NewRequest(&api.PutBillRequest{Bill: apiconv.BillToAPI(&bill)}))
	if err != nil {
		return 0, classify("PutBill", err)
	}
	return resp.Msg.ReceiptID, nil
}

func (c *Client) FetchBill(ctx context.Context, billID int64) (models.Bill, error) {
	resp, err := c.splits.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{ReceiptID: billID}))
	if err != nil {
		return models.Bill{}, classify("GetBill", err)
	}
	return *apiconv.BillFromAPI(resp.Msg.Bill), nil
}

// AddUsers upserts users and returns them with gateway-assigned IDs.
func (c *Client) AddUsers(ctx context.Context, users []models.User) ([]models.User, error) {
	resp, err := c.users.AddUsers(ctx, connect.NewRequest(&api.AddUsersRequest{Users: apiconv.UsersToAPI(users)}))
	if err != nil {
		return nil, classify("AddUsers", err)
	}
	return apiconv.UsersFromAPI(resp.Msg.Users), nil
}

func (c *Client) FetchUsers(ctx context.Context, billID int64) ([]models.User, error) {
	resp, err := c.users.ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{ReceiptID: billID}))
	if err != nil {
		return nil, classify("ListUsers", err)
	}
	return apiconv.UsersFromAPI(resp.Msg.Users), nil
}

func (c *Client) RemoveUser(ctx context.Context, billID, userID int64) error {
	_, err := c.users.RemoveUser(ctx, connect.NewRequest(&api.RemoveUserRequest{ReceiptID: billID, UserID: userID}))
	if err != nil {
		return classify("RemoveUser", err)
	}
	return nil
}

func (c *Client) FetchShares(ctx context.Context, billID int64) ([]models.RemoteShareRecord, error) {
	resp, err := c.splits.GetShares(ctx, connect.NewRequest(&api.GetSharesRequest{ReceiptID: billID}))
	if err != nil {
		return nil, classify("GetShares", err)
	}
	return apiconv.RecordsFromAPI(resp.Msg.Shares), nil
}

func (c *Client) SubmitShares(ctx context.Context, billID int64, splits []models.SubmittedSplit) error {
	_, err := c.splits.SubmitShares(ctx, connect.NewRequest(&api.SubmitSharesRequest{
		ReceiptID: billID,
		Splits:    apiconv.SplitsToAPI(splits),
	}))
	if err != nil {
		return classify("SubmitShares", err)
	}
	return nil
}

// FetchCalculation returns the raw summary text. An empty body is malformed.
func (c *Client) FetchCalculation(ctx context.Context, billID int64) (string, error) {
	resp, err := c.splits.GetCalculation(ctx, connect.NewRequest(&api.GetCalculationRequest{ReceiptID: billID}))
	if err != nil {
		return "", classify("GetCalculation", err)
	}
	if resp.Msg.Text == "" {
		return "", Malformed("GetCalculation", errors.New("empty calculation text"))
	}
	return resp.Msg.Text, nil
}

// IsNotFound reports whether the gateway answered NotFound.
func IsNotFound(err error) bool {
	return CodeOf(err) == connect.CodeNotFound
}

// Describe renders err for operators: status errors show their code.
func Describe(err error) string {
	var ue *UnavailableError
	if !errors.As(err, &ue) {
		return err.Error()
	}
	switch ue.Reason {
	case ReasonStatus:
		var connectErr *connect.Error
		if errors.As(ue.Err, &connectErr) {
			return fmt.Sprintf("%s failed (%s): %s", ue.Op, ue.Code, connectErr.Message())
		}
	case ReasonTransport:
		return fmt.Sprintf("%s failed: gateway unreachable", ue.Op)
	}
	return fmt.Sprintf("%s failed: %v", ue.Op, ue.Err)
}
