package pokemon

import "testing"

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name                  string
		policy                Pagination
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults", Pagination{DefaultLimit: 6}, 0, 0, 6, 0},
		{"explicit", Pagination{DefaultLimit: 6}, 2, 1, 2, 1},
		{"configured default", Pagination{DefaultLimit: 20}, 0, 5, 20, 5},
		{"no upper bound", Pagination{DefaultLimit: 6}, 100000, 0, 100000, 0},
		{"unset policy", Pagination{}, 0, 0, DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := tt.policy.Normalize(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tt.wantLimit, tt.wantOffset, limit, offset)
			}
		})
	}
}
