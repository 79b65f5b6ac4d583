package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/splitter/internal/metrics"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

type stubSplitService struct {
	apiconnect.UnimplementedSplitServiceHandler
	seenRequestID string
}

func (s *stubSplitService) GetShares(ctx context.Context, _ *connect.Request[api.GetSharesRequest]) (*connect.Response[api.GetSharesResponse], error) {
	s.seenRequestID = GetRequestID(ctx)
	return connect.NewResponse(&api.GetSharesResponse{}), nil
}

func setup(t *testing.T) (apiconnect.SplitServiceClient, *stubSplitService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	stub := &stubSplitService{}

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSplitServiceHandler(stub, connect.WithInterceptors(
		RequestIDInterceptor(),
		LoggingInterceptor(),
		MetricsInterceptor(m),
	)))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := apiconnect.NewSplitServiceClient(server.Client(), server.URL,
		connect.WithInterceptors(RequestIDInterceptor()))
	return client, stub, m
}

func TestRequestIDInterceptor(t *testing.T) {
	client, stub, _ := setup(t)

	t.Run("client generates an ID", func(t *testing.T) {
		resp, err := client.GetShares(context.Background(), connect.NewRequest(&api.GetSharesRequest{ReceiptID: 1}))
		if err != nil {
			t.Fatalf("GetShares failed: %v", err)
		}
		echoed := resp.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(echoed); err != nil {
			t.Errorf("echoed request ID %q is not a UUID", echoed)
		}
		if stub.seenRequestID != echoed {
			t.Errorf("handler saw %q, response carried %q", stub.seenRequestID, echoed)
		}
	})

	t.Run("caller ID is preserved", func(t *testing.T) {
		req := connect.NewRequest(&api.GetSharesRequest{ReceiptID: 1})
		req.Header().Set(RequestIDHeader, "abc-123")
		resp, err := client.GetShares(context.Background(), req)
		if err != nil {
			t.Fatalf("GetShares failed: %v", err)
		}
		if got := resp.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("echoed request ID = %q, want abc-123", got)
		}
		if stub.seenRequestID != "abc-123" {
			t.Errorf("handler saw %q, want abc-123", stub.seenRequestID)
		}
	})
}

func TestMetricsInterceptor(t *testing.T) {
	client, _, m := setup(t)
	ctx := context.Background()

	if _, err := client.GetShares(ctx, connect.NewRequest(&api.GetSharesRequest{})); err != nil {
		t.Fatalf("GetShares failed: %v", err)
	}
	if _, err := client.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{})); err == nil {
		t.Fatal("expected GetBill to be unimplemented")
	}

	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues(apiconnect.SplitServiceGetSharesProcedure, "ok")); got != 1 {
		t.Errorf("GetShares ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues(apiconnect.SplitServiceGetBillProcedure, "unimplemented")); got != 1 {
		t.Errorf("GetBill unimplemented count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.RPCDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}
