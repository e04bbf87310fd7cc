package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PersonID is the store-assigned node identity.
// It is rendered as a decimal string on the wire.
type PersonID int64

// ParsePersonID accepts a non-negative decimal integer. Anything else is ErrInvalidID.
func ParsePersonID(raw string) (PersonID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return PersonID(n), nil
}

func (id PersonID) Int64() int64 { return int64(id) }

func (id PersonID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id PersonID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON accepts either a JSON integer or a decimal string.
func (id *PersonID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: missing", ErrInvalidID)
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
	}
	parsed, err := ParsePersonID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
