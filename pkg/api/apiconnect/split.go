// Package apiconnect wires the gateway services to Connect handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/pkg/api"
)

const (
	// SplitServiceName is the fully-qualified name of the SplitService.
	SplitServiceName = "splitter.v1.SplitService"

	SplitServicePutBillProcedure        = "/splitter.v1.SplitService/PutBill"
	SplitServiceGetBillProcedure        = "/splitter.v1.SplitService/GetBill"
	SplitServiceGetSharesProcedure      = "/splitter.v1.SplitService/GetShares"
	SplitServiceSubmitSharesProcedure   = "/splitter.v1.SplitService/SubmitShares"
	SplitServiceGetCalculationProcedure = "/splitter.v1.SplitService/GetCalculation"
)

// SplitServiceHandler is the server side of the SplitService.
type SplitServiceHandler interface {
	PutBill(context.Context, *connect.Request[api.PutBillRequest]) (*connect.Response[api.PutBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	GetShares(context.Context, *connect.Request[api.GetSharesRequest]) (*connect.Response[api.GetSharesResponse], error)
	SubmitShares(context.Context, *connect.Request[api.SubmitSharesRequest]) (*connect.Response[api.SubmitSharesResponse], error)
	GetCalculation(context.Context, *connect.Request[api.GetCalculationRequest]) (*connect.Response[api.GetCalculationResponse], error)
}

// SplitServiceClient is the client side of the SplitService.
type SplitServiceClient interface {
	PutBill(context.Context, *connect.Request[api.PutBillRequest]) (*connect.Response[api.PutBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	GetShares(context.Context, *connect.Request[api.GetSharesRequest]) (*connect.Response[api.GetSharesResponse], error)
	SubmitShares(context.Context, *connect.Request[api.SubmitSharesRequest]) (*connect.Response[api.SubmitSharesResponse], error)
	GetCalculation(context.Context, *connect.Request[api.GetCalculationRequest]) (*connect.Response[api.GetCalculationResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler for the service and returns
// the path prefix to mount it on.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	routes := map[string]http.Handler{
		SplitServicePutBillProcedure:        connect.NewUnaryHandler(SplitServicePutBillProcedure, svc.PutBill, opts...),
		SplitServiceGetBillProcedure:        connect.NewUnaryHandler(SplitServiceGetBillProcedure, svc.GetBill, opts...),
		SplitServiceGetSharesProcedure:      connect.NewUnaryHandler(SplitServiceGetSharesProcedure, svc.GetShares, opts...),
		SplitServiceSubmitSharesProcedure:   connect.NewUnaryHandler(SplitServiceSubmitSharesProcedure, svc.SubmitShares, opts...),
		SplitServiceGetCalculationProcedure: connect.NewUnaryHandler(SplitServiceGetCalculationProcedure, svc.GetCalculation, opts...),
	}
	return "/" + SplitServiceName + "/", route(routes)
}

// NewSplitServiceClient builds a client for the service at baseURL.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &splitServiceClient{
		putBill:        connect.NewClient[api.PutBillRequest, api.PutBillResponse](httpClient, baseURL+SplitServicePutBillProcedure, opts...),
		getBill:        connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+SplitServiceGetBillProcedure, opts...),
		getShares:      connect.NewClient[api.GetSharesRequest, api.GetSharesResponse](httpClient, baseURL+SplitServiceGetSharesProcedure, opts...),
		submitShares:   connect.NewClient[api.SubmitSharesRequest, api.SubmitSharesResponse](httpClient, baseURL+SplitServiceSubmitSharesProcedure, opts...),
		getCalculation: connect.NewClient[api.GetCalculationRequest, api.GetCalculationResponse](httpClient, baseURL+SplitServiceGetCalculationProcedure, opts...),
	}
}

type splitServiceClient struct {
	putBill        *connect.Client[api.PutBillRequest, api.PutBillResponse]
	getBill        *connect.Client[api.GetBillRequest, api.GetBillResponse]
	getShares      *connect.Client[api.GetSharesRequest, api.GetSharesResponse]
	submitShares   *connect.Client[api.SubmitSharesRequest, api.SubmitSharesResponse]
	getCalculation *connect.Client[api.GetCalculationRequest, api.GetCalculationResponse]
}

func (c *splitServiceClient) PutBill(ctx context.Context, req *connect.Request[api.PutBillRequest]) (*connect.Response[api.PutBillResponse], error) {
	return c.putBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetShares(ctx context.Context, req *connect.Request[api.GetSharesRequest]) (*connect.Response[api.GetSharesResponse], error) {
	return c.getShares.CallUnary(ctx, req)
}

func (c *splitServiceClient) SubmitShares(ctx context.Context, req *connect.Request[api.SubmitSharesRequest]) (*connect.Response[api.SubmitSharesResponse], error) {
	return c.submitShares.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetCalculation(ctx context.Context, req *connect.Request[api.GetCalculationRequest]) (*connect.Response[api.GetCalculationResponse], error) {
	return c.getCalculation.CallUnary(ctx, req)
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitServiceHandler struct{}

func (UnimplementedSplitServiceHandler) PutBill(context.Context, *connect.Request[api.PutBillRequest]) (*connect.Response[api.PutBillResponse], error) {
	return nil, unimplemented(SplitServicePutBillProcedure)
}

func (UnimplementedSplitServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, unimplemented(SplitServiceGetBillProcedure)
}

func (UnimplementedSplitServiceHandler) GetShares(context.Context, *connect.Request[api.GetSharesRequest]) (*connect.Response[api.GetSharesResponse], error) {
	return nil, unimplemented(SplitServiceGetSharesProcedure)
}

func (UnimplementedSplitServiceHandler) SubmitShares(context.Context, *connect.Request[api.SubmitSharesRequest]) (*connect.Response[api.SubmitSharesResponse], error) {
	return nil, unimplemented(SplitServiceSubmitSharesProcedure)
}

func (UnimplementedSplitServiceHandler) GetCalculation(context.Context, *connect.Request[api.GetCalculationRequest]) (*connect.Response[api.GetCalculationResponse], error) {
	return nil, unimplemented(SplitServiceGetCalculationProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

// route dispatches on the exact procedure path.
func route(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
