package helper

import "testing"

func TestBuildPagination(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		page    int
		perPage int
		want    Pagination
	}{
		{
			name: "first of many", total: 45, page: 1, perPage: 20,
			want: Pagination{Page: 1, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page", total: 45, page: 2, perPage: 20,
			want: Pagination{Page: 2, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last partial page", total: 45, page: 3, perPage: 20,
			want: Pagination{Page: 3, PerPage: 20, Total: 45, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result still reports one page", total: 0, page: 1, perPage: 20,
			want: Pagination{Page: 1, PerPage: 20, Total: 0, TotalPages: 1, HasNext: false, HasPrev: false},
		},
		{
			name: "exact multiple of page size", total: 40, page: 2, perPage: 20,
			want: Pagination{Page: 2, PerPage: 20, Total: 40, TotalPages: 2, HasNext: false, HasPrev: true},
		},
		{
			name: "invalid inputs fall back to defaults", total: 10, page: 0, perPage: -5,
			want: Pagination{Page: 1, PerPage: 20, Total: 10, TotalPages: 1, HasNext: false, HasPrev: false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildPagination(tc.total, tc.page, tc.perPage); got != tc.want {
				t.Errorf("BuildPagination(%d, %d, %d) = %+v, want %+v", tc.total, tc.page, tc.perPage, got, tc.want)
			}
		})
	}
}
