package validators

import (
	"strings"

	"magpie/types"
)

const (
	certMinGuilds = 100
)

// CheckCertification gates certification requests before any staff relay
// goes out. count is the guild count for bots and the member count for
// servers.
func CheckCertification(targetType string, state types.EntityState, bannerCard, bannerPage string, count int) *CheckError {
	if state != types.StateApproved {
		return checkErrCtx(CodeNotApproved, "only approved "+targetType+"s can request certification", state.String())
	}

	if bannerCard == "" || !strings.HasPrefix(bannerCard, "https://") {
		return checkErr(CodeNoBannerCard, "certification requires a HTTPS card banner")
	}

	if bannerPage == "" || !strings.HasPrefix(bannerPage, "https://") {
		return checkErr(CodeNoBannerPage, "certification requires a HTTPS page banner")
	}

	if count < certMinGuilds {
		if targetType == "server" {
			return checkErr(CodeTooFewMembers, "certification requires at least 100 members")
		}

		return checkErr(CodeTooFewGuilds, "certification requires at least 100 guilds")
	}

	return nil
}
