package model

import (
	"testing"
	"time"
)

func int64ptr(v int64) *int64 { return &v }

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		name string
		size *int64
		want string
	}{
		{"nil size", nil, "Unknown"},
		{"zero size", int64ptr(0), "Unknown"},
		{"one byte", int64ptr(1), "1 B"},
		{"just below KB", int64ptr(1023), "1023 B"},
		{"exactly one KB", int64ptr(1024), "1.0 KB"},
		{"mid KB", int64ptr(1536), "1.5 KB"},
		{"just below MB", int64ptr(1024*1024 - 1), "1024.0 KB"},
		{"exactly one MB", int64ptr(1024 * 1024), "1.0 MB"},
		{"mid MB", int64ptr(5 * 1024 * 1024 / 2), "2.5 MB"},
		{"exactly one GB", int64ptr(1024 * 1024 * 1024), "1.0 GB"},
		{"several GB", int64ptr(3 * 1024 * 1024 * 1024), "3.0 GB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatFileSize(tc.size); got != tc.want {
				t.Errorf("FormatFileSize(%v) = %q, want %q", tc.size, got, tc.want)
			}
		})
	}
}

func TestDownloadURLFallbackChain(t *testing.T) {
	t.Run("managed URL wins even with legacy link", func(t *testing.T) {
		p := PaperModel{CloudinaryURL: "https://res.example/managed.pdf", DownloadLink: "https://legacy.example/old.pdf"}
		url, ok := p.DownloadURL()
		if !ok || url != "https://res.example/managed.pdf" {
			t.Errorf("got (%q, %v), want managed URL", url, ok)
		}
	})

	t.Run("legacy link used when managed URL absent", func(t *testing.T) {
		p := PaperModel{DownloadLink: "https://legacy.example/old.pdf"}
		url, ok := p.DownloadURL()
		if !ok || url != "https://legacy.example/old.pdf" {
			t.Errorf("got (%q, %v), want legacy link", url, ok)
		}
	})

	t.Run("no URL available", func(t *testing.T) {
		p := PaperModel{FilePath: "/srv/files/ignored.pdf", CloudURL: "https://cloud.example/also-ignored"}
		if url, ok := p.DownloadURL(); ok {
			t.Errorf("got (%q, %v), want absent", url, ok)
		}
	})
}

func TestLifecycleTransitions(t *testing.T) {
	var p PaperModel
	if got := p.Status(); got != StatusPending {
		t.Fatalf("fresh paper status = %q, want %q", got, StatusPending)
	}

	now := time.Now()

	p.MarkApproved(7, now)
	if got := p.Status(); got != StatusApproved {
		t.Fatalf("after approve status = %q, want %q", got, StatusApproved)
	}
	if p.ApprovalDate == nil || p.ApprovedBy == nil || *p.ApprovedBy != 7 {
		t.Fatal("approve must set approval_date and approved_by")
	}

	p.MarkRejected(9, "duplicate upload")
	if got := p.Status(); got != StatusRejected {
		t.Fatalf("after reject status = %q, want %q", got, StatusRejected)
	}
	if p.ApprovalDate != nil {
		t.Fatal("reject must clear approval_date")
	}
	if p.ApprovedBy == nil || *p.ApprovedBy != 9 {
		t.Fatal("reject must record the rejecting admin")
	}
	if p.RejectionReason == nil || *p.RejectionReason != "duplicate upload" {
		t.Fatal("reject must record the reason")
	}

	// re-approval clears the rejection verdict entirely
	p.MarkApproved(11, now)
	if got := p.Status(); got != StatusApproved {
		t.Fatalf("after re-approval status = %q, want %q", got, StatusApproved)
	}
	if p.RejectionReason != nil {
		t.Fatal("re-approval must clear rejection_reason")
	}
	if p.ApprovedBy == nil || *p.ApprovedBy != 11 {
		t.Fatal("approved_by must record the last actor")
	}
}
