package flights

import "errors"

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrFlightExists   = errors.New("flight already exists")
)

// InvalidCriteriaError reports unusable search criteria.
type InvalidCriteriaError struct {
	Detail string
}

func (e *InvalidCriteriaError) Error() string {
	return "invalid search criteria: " + e.Detail
}
