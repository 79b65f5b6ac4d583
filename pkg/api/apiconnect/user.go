package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/pkg/api"
)

const (
	// UserServiceName is the fully-qualified name of the UserService.
	UserServiceName = "splitter.v1.UserService"

	UserServiceAddUsersProcedure   = "/splitter.v1.UserService/AddUsers"
	UserServiceListUsersProcedure  = "/splitter.v1.UserService/ListUsers"
	UserServiceRemoveUserProcedure = "/splitter.v1.UserService/RemoveUser"
)

// UserServiceHandler is the server side of the UserService.
type UserServiceHandler interface {
	AddUsers(context.Context, *connect.Request[api.AddUsersRequest]) (*connect.Response[api.AddUsersResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	RemoveUser(context.Context, *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error)
}

// UserServiceClient is the client side of the UserService.
type UserServiceClient interface {
	AddUsers(context.Context, *connect.Request[api.AddUsersRequest]) (*connect.Response[api.AddUsersResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	RemoveUser(context.Context, *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler for the service and returns
// the path prefix to mount it on.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	routes := map[string]http.Handler{
		UserServiceAddUsersProcedure:   connect.NewUnaryHandler(UserServiceAddUsersProcedure, svc.AddUsers, opts...),
		UserServiceListUsersProcedure:  connect.NewUnaryHandler(UserServiceListUsersProcedure, svc.ListUsers, opts...),
		UserServiceRemoveUserProcedure: connect.NewUnaryHandler(UserServiceRemoveUserProcedure, svc.RemoveUser, opts...),
	}
	return "/" + UserServiceName + "/", route(routes)
}

// NewUserServiceClient builds a client for the service at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &userServiceClient{
		addUsers:   connect.NewClient[api.AddUsersRequest, api.AddUsersResponse](httpClient, baseURL+UserServiceAddUsersProcedure, opts...),
		listUsers:  connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+UserServiceListUsersProcedure, opts...),
		removeUser: connect.NewClient[api.RemoveUserRequest, api.RemoveUserResponse](httpClient, baseURL+UserServiceRemoveUserProcedure, opts...),
	}
}

type userServiceClient struct {
	addUsers   *connect.Client[api.AddUsersRequest, api.AddUsersResponse]
	listUsers  *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	removeUser *connect.Client[api.RemoveUserRequest, api.RemoveUserResponse]
}

func (c *userServiceClient) AddUsers(ctx context.Context, req *connect.Request[api.AddUsersRequest]) (*connect.Response[api.AddUsersResponse], error) {
	return c.addUsers.CallUnary(ctx, req)
}

func (c *userServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *userServiceClient) RemoveUser(ctx context.Context, req *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error) {
	return c.removeUser.CallUnary(ctx, req)
}

// UnimplementedUserServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedUserServiceHandler struct{}

func (UnimplementedUserServiceHandler) AddUsers(context.Context, *connect.Request[api.AddUsersRequest]) (*connect.Response[api.AddUsersResponse], error) {
	return nil, unimplemented(UserServiceAddUsersProcedure)
}

func (UnimplementedUserServiceHandler) ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return nil, unimplemented(UserServiceListUsersProcedure)
}

func (UnimplementedUserServiceHandler) RemoveUser(context.Context, *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error) {
	return nil, unimplemented(UserServiceRemoveUserProcedure)
}
