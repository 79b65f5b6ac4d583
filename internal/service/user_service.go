package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/apiconv"
	"github.com/mmynk/splitter/internal/storage"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

// UserService implements the Connect UserService: per-receipt rosters.
type UserService struct {
	apiconnect.UnimplementedUserServiceHandler
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// AddUsers upserts roster entries. Users sent without an ID get the next
// free ID on their receipt.
func (s *UserService) AddUsers(ctx context.Context, req *connect.Request[api.AddUsersRequest]) (*connect.Response[api.AddUsersResponse], error) {
	users := apiconv.UsersFromAPI(req.Msg.Users)
	for i := range users {
		users[i].Name = strings.TrimSpace(users[i].Name)
		if users[i].Name == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("user %d has an empty name", i+1))
		}
		if strings.ContainsAny(users[i].Name, "\r\n") {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("user %d name spans several lines", i+1))
		}
	}

	saved, err := s.store.UpsertUsers(ctx, users)
	if err != nil {
		slog.Error("AddUsers failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	slog.Info("Users saved", "count", len(saved))

	return connect.NewResponse(&api.AddUsersResponse{Users: apiconv.UsersToAPI(saved)}), nil
}

// ListUsers returns a receipt's roster ordered by user ID.
func (s *UserService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users, err := s.store.ListUsers(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("ListUsers failed", "bill_id", req.Msg.ReceiptID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: apiconv.UsersToAPI(users)}), nil
}

// RemoveUser deletes a user and their stored shares.
func (s *UserService) RemoveUser(ctx context.Context, req *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error) {
	err := s.store.DeleteUser(ctx, req.Msg.ReceiptID, req.Msg.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("UserId %d does not exist", req.Msg.UserID))
	}
	if err != nil {
		slog.Error("RemoveUser failed", "bill_id", req.Msg.ReceiptID, "user_id", req.Msg.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	slog.Info("User removed", "bill_id", req.Msg.ReceiptID, "user_id", req.Msg.UserID)

	return connect.NewResponse(&api.RemoveUserResponse{}), nil
}
