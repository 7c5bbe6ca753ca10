package helpers

import "strconv"

// ParseID converts a numeric path parameter into a database key.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
