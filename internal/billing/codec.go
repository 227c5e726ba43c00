package billing

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedItems marks an unreadable persisted item blob. Readers
// aggregating across documents treat the row as contributing zero
// items instead of failing the whole listing or report.
var ErrMalformedItems = errors.New("malformed item data")

// MarshalItems encodes an item sequence as the persisted JSON blob.
// A nil sequence encodes as the empty array.
func MarshalItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalItems decodes a persisted blob back into items.
// MarshalItems and UnmarshalItems are exact inverses for any valid
// item sequence. Unknown keys (the legacy per-item "total" field) are
// ignored; anything that is not a JSON array of items fails with
// ErrMalformedItems.
func UnmarshalItems(blob string) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedItems, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: not an item array", ErrMalformedItems)
	}
	return items, nil
}
