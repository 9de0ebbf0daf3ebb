// Package metadata is the client's local key/value store: the persisted
// session token, the user snapshot, settings and notifications all live here.
package metadata

import (
	"context"
)

// Keys persisted by the portal client.
const (
	KeyAuthToken     = "authToken"
	KeyCurrentUser   = "currentUser"
	KeySettings      = "lcen_user_settings"
	KeyNotifications = "lcen_notifications"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key. Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
