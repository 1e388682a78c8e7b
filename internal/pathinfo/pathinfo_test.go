package pathinfo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractInfo(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Info
		ok   bool
	}{
		{
			name: "etpv5 with mapped platform",
			path: "/lan/fed/etpv5/release/251/RHEL7.6/etautotest/BUCKET1/case.tc",
			want: Info{Area: "etpv5", Release: "251", PlatformCode: "RHEL7.6", Platform: "RHEL7.6"},
			ok:   true,
		},
		{
			name: "lnx86 maps to Linux display name",
			path: "/lan/fed/etpv/release/261/lnx86/etautotest/case.tc",
			want: Info{Area: "etpv", Release: "261", PlatformCode: "lnx86", Platform: "Linux"},
			ok:   true,
		},
		{
			name: "etpv3 area",
			path: "/lan/fed/etpv3/release/231/LOP/etautotest/sub/case.tc",
			want: Info{Area: "etpv3", Release: "231", PlatformCode: "LOP", Platform: "LOP"},
			ok:   true,
		},
		{
			name: "unknown platform code passes through",
			path: "/lan/fed/etpv5/release/251/SOMEOS9/etautotest/b/case.tc",
			want: Info{Area: "etpv5", Release: "251", PlatformCode: "SOMEOS9", Platform: "SOMEOS9"},
			ok:   true,
		},
		{
			name: "unknown release rejected",
			path: "/lan/fed/etpv5/release/999/RHEL7.6/etautotest/b/case.tc",
			ok:   false,
		},
		{
			name: "unknown area rejected",
			path: "/lan/fed/etpv7/release/251/RHEL7.6/etautotest/b/case.tc",
			ok:   false,
		},
		{
			name: "missing etautotest segment",
			path: "/lan/fed/etpv5/release/251/RHEL7.6/other/b/case.tc",
			ok:   false,
		},
		{name: "empty path", path: "", ok: false},
		{name: "garbage", path: "not a path at all", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractInfo(tt.path)
			if ok != tt.ok {
				t.Fatalf("ExtractInfo(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractInfo(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestExtractBucketName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{
			name: "etpv5 bucket upper-cased",
			path: "/lan/fed/etpv5/release/251/RHEL7.6/etautotest/bucket1/case.tc",
			want: "BUCKET1",
			ok:   true,
		},
		{
			name: "already upper",
			path: "/lan/fed/etpv5/release/251/RHEL7.6/etautotest/BUCKET1/case.tc",
			want: "BUCKET1",
			ok:   true,
		},
		{
			name: "any numeric release accepted for buckets",
			path: "/lan/fed/etpv5/release/999/lnx86/etautotest/regression/case.tc",
			want: "REGRESSION",
			ok:   true,
		},
		{
			name: "etpv has no buckets",
			path: "/lan/fed/etpv/release/251/RHEL7.6/etautotest/bucket1/case.tc",
			ok:   false,
		},
		{
			name: "etpv3 has no buckets",
			path: "/lan/fed/etpv3/release/251/RHEL7.6/etautotest/bucket1/case.tc",
			ok:   false,
		},
		{name: "empty path", path: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBucketName(tt.path)
			if ok != tt.ok {
				t.Fatalf("ExtractBucketName(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ExtractBucketName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLooksLikeTestcasePath(t *testing.T) {
	if !LooksLikeTestcasePath("/lan/fed/etpv5/release/251/X/etautotest/b/case.tc") {
		t.Error("expected well-formed path to pass the soft check")
	}
	if LooksLikeTestcasePath("/home/user/case.tc") {
		t.Error("expected unrelated path to fail the soft check")
	}
	if LooksLikeTestcasePath("/lan/fed/only-half") {
		t.Error("both fixed substrings are required")
	}
}

func TestTargetsForRelease(t *testing.T) {
	if got := TargetsForRelease("261"); len(got) != 1 {
		t.Errorf("release 261: got %d targets, want 1", len(got))
	}
	if got := TargetsForRelease("251"); len(got) != 4 {
		t.Errorf("release 251: got %d targets, want 4", len(got))
	}
	if got := TargetsForRelease(""); got != nil {
		t.Errorf("empty release: got %v, want nil", got)
	}
	if got := TargetsForRelease("999"); got != nil {
		t.Errorf("unknown release: got %v, want nil", got)
	}
}
