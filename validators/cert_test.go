package validators

import (
	"testing"

	"magpie/types"
)

func TestCheckCertification(t *testing.T) {
	cases := []struct {
		name       string
		targetType string
		state      types.EntityState
		bannerCard string
		bannerPage string
		count      int
		code       Code
	}{
		{"passes at threshold", "bot", types.StateApproved, "https://x.com/a.png", "https://x.com/b.png", 100, ""},
		{"passes well above", "bot", types.StateApproved, "https://x.com/a.png", "https://x.com/b.png", 5000, ""},
		{"pending bot", "bot", types.StatePending, "https://x.com/a.png", "https://x.com/b.png", 100, CodeNotApproved},
		{"already certified", "bot", types.StateCertified, "https://x.com/a.png", "https://x.com/b.png", 100, CodeNotApproved},
		{"missing card banner", "bot", types.StateApproved, "", "https://x.com/b.png", 100, CodeNoBannerCard},
		{"http card banner", "bot", types.StateApproved, "http://x.com/a.png", "https://x.com/b.png", 100, CodeNoBannerCard},
		{"missing page banner", "bot", types.StateApproved, "https://x.com/a.png", "", 100, CodeNoBannerPage},
		{"one below threshold", "bot", types.StateApproved, "https://x.com/a.png", "https://x.com/b.png", 99, CodeTooFewGuilds},
		{"server below threshold", "server", types.StateApproved, "https://x.com/a.png", "https://x.com/b.png", 99, CodeTooFewMembers},
		{"server at threshold", "server", types.StateApproved, "https://x.com/a.png", "https://x.com/b.png", 100, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cerr := CheckCertification(tc.targetType, tc.state, tc.bannerCard, tc.bannerPage, tc.count)

			if tc.code == "" {
				if cerr != nil {
					t.Fatalf("expected pass, got %s: %s", cerr.Code, cerr.Reason)
				}

				return
			}

			if cerr == nil {
				t.Fatalf("expected %s, got pass", tc.code)
			}

			if cerr.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, cerr.Code)
			}
		})
	}
}
