package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeRowIDToken creates a base64 encoded cursor from a numeric row ID.
func EncodeRowIDToken(rowID int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(rowID, 10)))
}

// DecodeRowIDToken parses a cursor created by EncodeRowIDToken.
func DecodeRowIDToken(token string) (int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	rowID, err := strconv.ParseInt(string(decodedBytes), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (row id parse): %w", err)
	}
	return rowID, nil
}

// EncodeDateBasedToken creates a token for single date field pagination.
func EncodeDateBasedToken(date time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(date.Format(timeFormat)))
}

// DecodeDateBasedToken decodes a token for single date field pagination.
func DecodeDateBasedToken(token string) (time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	date, err := time.Parse(timeFormat, string(decodedBytes))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date, nil
}
