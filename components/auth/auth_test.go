package auth

import "testing"

func TestSafeFrom(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/dashboard", "/dashboard"},
		{"/dashboard/admin?tab=roles", "/dashboard/admin?tab=roles"},
		{"https://evil.example.com/", ""},
		{"//evil.example.com", ""},
		{"javascript:alert(1)", ""},
		{"dashboard", ""},
	}
	for _, tc := range cases {
		if got := safeFrom(tc.in); got != tc.want {
			t.Errorf("safeFrom(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
