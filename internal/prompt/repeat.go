package prompt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNotNumber  = errors.New("repeat count is not a number")
	ErrOutOfRange = errors.New("repeat count out of range")
)

// ParseRepeat parses a repeat count. An empty answer means 1. Valid counts
// are 1 through 255.
func ParseRepeat(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrOutOfRange, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	if n < 1 || n > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return uint8(n), nil
}
