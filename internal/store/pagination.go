package store

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/safar/partsbot/internal/models"
)

type CursorPage struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

type OrderCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        int64     `json:"id"`
}

func EncodeCursor(cursor OrderCursor) string {
	data, err := json.Marshal(cursor)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// firstPage sorts after every stored order regardless of clock skew between
// the application and the database.
var firstPage = OrderCursor{
	CreatedAt: time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC),
	ID:        int64(1<<63 - 1),
}

// DecodeCursor treats an empty cursor as "start from the newest order".
func DecodeCursor(encoded string) (OrderCursor, error) {
	var cursor OrderCursor
	if encoded == "" {
		return firstPage, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return cursor, err
	}

	err = json.Unmarshal(data, &cursor)
	return cursor, err
}
