package errors

import (
	"math/bits"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// MaxInputLength bounds how many values a single sort request may carry.
// The CLI and the HTTP server both enforce it.
const MaxInputLength = 1 << 22

// ValidateLength validates the number of values submitted for sorting.
// Zero is allowed (sorting nothing is a no-op); anything above
// MaxInputLength is rejected.
func ValidateLength(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidSize, "length cannot be negative: %d", n)
	}
	if n > MaxInputLength {
		return New(ErrCodeInvalidSize, "too many values: %d (max %d)", n, MaxInputLength)
	}
	return nil
}

// ValidateSizeRange validates the doubling range of a benchmark run.
//
// Validation rules:
//   - minSize must be at least 2 (edge budgets are undefined below)
//   - maxSize must not be smaller than minSize
//   - maxSize must not exceed MaxInputLength
func ValidateSizeRange(minSize, maxSize int) error {
	if minSize < 2 {
		return New(ErrCodeInvalidSize, "minimum size must be at least 2, got %d", minSize)
	}
	if maxSize < minSize {
		return New(ErrCodeInvalidSize, "maximum size %d is smaller than minimum size %d", maxSize, minSize)
	}
	if maxSize > MaxInputLength {
		return New(ErrCodeInvalidSize, "maximum size too large: %d (max %d)", maxSize, MaxInputLength)
	}
	return nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

// ValidatePositive validates that a named count is at least 1.
func ValidatePositive(name string, v int) error {
	if v < 1 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %d", name, v)
	}
	return nil
}

// ValidateFormat validates an output format against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateReportID validates a benchmark report identifier.
// Report IDs are UUIDs; anything else is rejected before it reaches a store
// or becomes part of a file path.
func ValidateReportID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "report ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid report ID: %q", id)
	}
	return nil
}

// ValidateMongoURI validates a MongoDB connection string for the history
// store. Only the standard and SRV schemes are accepted.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidConfig, "MongoDB URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidConfig, "MongoDB URI must use mongodb:// or mongodb+srv:// scheme")
	}
	return nil
}

// ValidateRedisAddr validates a host:port address for the Redis cache.
func ValidateRedisAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "Redis address cannot be empty")
	}
	if strings.Contains(addr, "://") {
		return New(ErrCodeInvalidConfig, "Redis address must be host:port, not a URL: %q", addr)
	}
	if i := strings.LastIndex(addr, ":"); i < 0 || i == len(addr)-1 {
		return New(ErrCodeInvalidConfig, "Redis address must include a port: %q", addr)
	}
	return nil
}
