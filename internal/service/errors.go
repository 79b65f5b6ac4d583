package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/storage"
)

// storeError maps a storage error onto a Connect error.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
