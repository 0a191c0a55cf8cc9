package models

import (
	"math"
	"strconv"
	"strings"
)

// MaxNo is the largest catalog number every backend can store and look up.
const MaxNo = math.MaxInt32

var errNoTooLarge = FieldError{Field: "no", Message: "no must be at most " + strconv.Itoa(MaxNo)}

// Validate checks a create request. Both fields are required.
func (r CreatePokemonRequest) Validate() []FieldError {
	var errs []FieldError

	if r.No == nil {
		errs = append(errs, FieldError{Field: "no", Message: "no is required"})
	} else if *r.No < 1 {
		errs = append(errs, FieldError{Field: "no", Message: "no must be a positive integer"})
	} else if *r.No > MaxNo {
		errs = append(errs, errNoTooLarge)
	}

	if r.Name == nil {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name must not be empty"})
	}

	return errs
}

// Validate checks a partial update. Absent fields are skipped; present
// fields follow the create rules.
func (r UpdatePokemonRequest) Validate() []FieldError {
	var errs []FieldError

	if r.No != nil {
		if *r.No < 1 {
			errs = append(errs, FieldError{Field: "no", Message: "no must be a positive integer"})
		} else if *r.No > MaxNo {
			errs = append(errs, errNoTooLarge)
		}
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name must not be empty"})
	}

	return errs
}

// Parse converts the query into numeric values. A zero result means the
// parameter was absent.
func (q PaginationQuery) Parse() (limit, offset int, errs []FieldError) {
	limit, errs = parsePositive("limit", q.Limit, errs)
	offset, errs = parsePositive("offset", q.Offset, errs)
	return limit, offset, errs
}

func parsePositive(field, raw string, errs []FieldError) (int, []FieldError) {
	if raw == "" {
		return 0, errs
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, append(errs, FieldError{Field: field, Message: field + " must be an integer"})
	}
	if n < 1 {
		return 0, append(errs, FieldError{Field: field, Message: field + " must be a positive number"})
	}
	return n, errs
}
