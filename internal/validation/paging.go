package validation

import "strconv"

const (
	DefaultPage = 1   // Page used when none or an invalid one is given
	DefaultSize = 10  // Page size used when none or an invalid one is given
	MaxSize     = 100 // Largest accepted page size
)

// Paging parses page and size query values. Bad input never fails: anything
// missing, non-numeric or out of range falls back to the defaults.
func Paging(rawPage, rawSize string) (page, size int) {
	page, size = DefaultPage, DefaultSize
	if v, err := strconv.Atoi(rawPage); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(rawSize); err == nil && v > 0 && v <= MaxSize {
		size = v
	}
	return page, size
}

// TotalPages returns ceil(total/size).
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
