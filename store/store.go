// Package store implements the record store for user and post documents:
// exact key lookups, secondary index queries with resumable cursors, and
// filtered membership scans, backed by DynamoDB in production and by an
// in-memory fake in tests.
package store

import (
	"context"

	"github.com/vamoslabs/redesocial/model"
)

// UserStore persists user profile documents keyed by CognitoId.
//
// Get returns (nil, nil) when the user does not exist, so callers can map
// absence onto their own domain error.
type UserStore interface {
	Get(ctx context.Context, cognitoId string) (*model.User, error)
	Put(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	// Search scans for users whose name or email contains filter, resuming
	// from start when non-nil.
	Search(ctx context.Context, filter string, start *UserCursor, limit int) (*UserQueryResult, error)
}

// PostStore persists post documents keyed by Id, with a userId+date
// secondary index for per-author timelines.
type PostStore interface {
	Get(ctx context.Context, id string) (*model.Post, error)
	Put(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	// QueryByUser returns posts authored by userId, newest first, resuming
	// from start when non-nil. A non-nil start must be Complete.
	QueryByUser(ctx context.Context, userId string, start *PostCursor, limit int) (*PostQueryResult, error)
	// ScanByOwners returns posts whose author is in owners, in store scan
	// order. Ordering across owners is best effort, not newest first; the
	// cursor carries only the last seen post id.
	ScanByOwners(ctx context.Context, owners []string, startId string, limit int) (*PostQueryResult, error)
}

// PostQueryResult is one page of posts plus the cursor resuming the next
// page. LastKey is nil when the listing is exhausted.
type PostQueryResult struct {
	Items   []model.Post
	LastKey *PostCursor
}

// UserQueryResult is one page of a user scan.
type UserQueryResult struct {
	Items   []model.User
	LastKey *UserCursor
}
