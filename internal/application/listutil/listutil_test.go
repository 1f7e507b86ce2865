package listutil

import (
	"net/url"
	"testing"
)

// TestParseListParams_Defaults verifies defaults when no query values are provided.
func TestParseListParams_Defaults(t *testing.T) {
	p := ParseListParams(url.Values{}, []string{"name"}, []string{"section"})
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", DefaultPerPage, p.PerPage)
	}
	if p.Sort != "" || p.Dir != "asc" {
		t.Errorf("expected empty sort with asc dir, got %q/%q", p.Sort, p.Dir)
	}
}

// TestParseListParams_Valid verifies parsing of a fully specified query.
func TestParseListParams_Valid(t *testing.T) {
	q := url.Values{
		"page": {"3"}, "per_page": {"50"},
		"sort": {"name"}, "dir": {"desc"},
		"q": {"asha"}, "section": {"EV-2"},
	}
	p := ParseListParams(q, []string{"name", "email"}, []string{"section"})
	if p.Page != 3 || p.PerPage != 50 {
		t.Errorf("page/per_page: got %d/%d, want 3/50", p.Page, p.PerPage)
	}
	if p.Sort != "name" || p.Dir != "desc" {
		t.Errorf("sort/dir: got %q/%q", p.Sort, p.Dir)
	}
	if p.Search != "asha" {
		t.Errorf("search: got %q", p.Search)
	}
	if p.Filters["section"] != "EV-2" {
		t.Errorf("section filter: got %q", p.Filters["section"])
	}
}

// TestParseListParams_Sanitised verifies hostile or invalid values are dropped.
func TestParseListParams_Sanitised(t *testing.T) {
	q := url.Values{
		"page": {"-1"}, "per_page": {"9999"},
		"sort": {"password_hash"}, "dir": {"sideways"},
		"role": {"admin"},
	}
	p := ParseListParams(q, []string{"name"}, []string{"section"})
	if p.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected default per_page, got %d", p.PerPage)
	}
	if p.Sort != "" {
		t.Errorf("disallowed sort column passed through: %q", p.Sort)
	}
	if p.Dir != "asc" {
		t.Errorf("expected dir asc, got %q", p.Dir)
	}
	if _, ok := p.Filters["role"]; ok {
		t.Error("unknown filter key passed through")
	}
}

// TestNewPageInfo verifies pagination metadata computation.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		total      int
		wantPages  int
		wantPage   int
		wantStart  int
		wantEnd    int
		wantOffset int
	}{
		{"basic", 1, 20, 85, 5, 1, 1, 20, 0},
		{"page2", 2, 20, 85, 5, 2, 21, 40, 20},
		{"lastPage", 5, 20, 85, 5, 5, 81, 85, 80},
		{"pageBeyondTotal", 10, 20, 85, 5, 5, 81, 85, 80},
		{"emptyList", 1, 20, 0, 1, 1, 0, 0, 0},
		{"exactFit", 1, 10, 10, 1, 1, 1, 10, 0},
		{"singleRow", 1, 20, 1, 1, 1, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, tt.perPage, tt.total)
			if pi.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: got %d, want %d", pi.TotalPages, tt.wantPages)
			}
			if pi.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", pi.Page, tt.wantPage)
			}
			if pi.StartRow() != tt.wantStart {
				t.Errorf("StartRow: got %d, want %d", pi.StartRow(), tt.wantStart)
			}
			if pi.EndRow() != tt.wantEnd {
				t.Errorf("EndRow: got %d, want %d", pi.EndRow(), tt.wantEnd)
			}
			if pi.Offset() != tt.wantOffset {
				t.Errorf("Offset: got %d, want %d", pi.Offset(), tt.wantOffset)
			}
		})
	}
}

// TestPageNumbers verifies page number window generation.
func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name string
		page int
		tot  int
		want []int
	}{
		{"3pages_at1", 1, 3, []int{1, 2, 3}},
		{"10pages_at1", 1, 10, []int{1, 2, 3, 4, 5}},
		{"10pages_at5", 5, 10, []int{3, 4, 5, 6, 7}},
		{"10pages_at10", 10, 10, []int{6, 7, 8, 9, 10}},
		{"1page", 1, 1, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, 20, tt.tot*20)
			got := pi.PageNumbers()
			if len(got) != len(tt.want) {
				t.Fatalf("PageNumbers length: got %d, want %d", len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("PageNumbers[%d]: got %d, want %d", i, v, tt.want[i])
				}
			}
		})
	}
}

// TestShowPagination verifies pagination visibility logic.
func TestShowPagination(t *testing.T) {
	if NewPageInfo(1, 20, 20).ShowPagination() {
		t.Error("should not show pagination when total == perPage")
	}
	if !NewPageInfo(1, 20, 21).ShowPagination() {
		t.Error("should show pagination when total > perPage")
	}
}
