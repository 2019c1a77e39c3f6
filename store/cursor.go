package store

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrMalformedCursor marks a lastKey token that cannot be decoded at all.
// Handlers reject these explicitly instead of silently restarting the scan.
var ErrMalformedCursor = errors.New("malformed pagination cursor")

// PostCursor is the resume position of a post listing. The single user
// timeline needs all three fields (table key plus both index keys); the home
// feed scan carries only Id.
type PostCursor struct {
	Id     string `json:"id,omitempty"`
	UserId string `json:"userId,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Complete reports whether the cursor carries every field the user-date
// index needs to resume. Incomplete cursors are treated as absent, the scan
// restarts from the beginning.
func (c *PostCursor) Complete() bool {
	return c != nil && c.Id != "" && c.UserId != "" && c.Date != ""
}

// UserCursor is the resume position of a user scan.
type UserCursor struct {
	CognitoId string `json:"cognitoId"`
}

// EncodeCursor mints the opaque lastKey token for a cursor. Clients must
// pass it back unmodified.
func EncodeCursor(cursor interface{}) string {
	raw, err := json.Marshal(cursor)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(raw)
}

// DecodePostCursor parses a lastKey token back into a post cursor. An empty
// token yields (nil, nil); a token that is not base64 JSON yields
// ErrMalformedCursor.
func DecodePostCursor(token string) (*PostCursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrMalformedCursor
	}
	cursor := &PostCursor{}
	if err := json.Unmarshal(raw, cursor); err != nil {
		return nil, ErrMalformedCursor
	}
	return cursor, nil
}

// DecodeUserCursor parses a lastKey token back into a user scan cursor.
func DecodeUserCursor(token string) (*UserCursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrMalformedCursor
	}
	cursor := &UserCursor{}
	if err := json.Unmarshal(raw, cursor); err != nil {
		return nil, ErrMalformedCursor
	}
	if cursor.CognitoId == "" {
		return nil, nil
	}
	return cursor, nil
}
