package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"magpie/types"
	"magpie/utils"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	minPackBots    = 2
	maxPackBots    = 7
	minPackDescLen = 10
)

// CheckPack validates a pack candidate. Bot references are de-duplicated
// and resolved; references that do not resolve to a listed bot are dropped
// before the count bounds apply.
func CheckPack(ctx context.Context, d Deps, c types.PackCandidate) (*types.PackCandidate, *CheckError) {
	out := c

	if utf8.RuneCountInString(c.Short) < minPackDescLen {
		return nil, checkErr(CodePackDescLength, "pack description must be at least 10 characters")
	}

	seen := mapset.NewSet[string]()
	bots := []string{}

	for _, id := range c.Bots {
		if !seen.Add(id) {
			continue
		}

		rec, err := d.Store.Record(ctx, "bot", id)

		if err != nil {
			return nil, checkErrCtx(CodeStore, "failed to resolve pack bot", err.Error())
		}

		if rec == nil {
			continue
		}

		bots = append(bots, id)
	}

	if len(bots) < minPackBots {
		return nil, checkErr(CodeTooFewBots, "a pack needs at least 2 listed bots")
	}

	if len(bots) > maxPackBots {
		return nil, checkErr(CodeTooManyBots, "a pack can hold at most 7 bots")
	}

	out.Bots = bots

	out.Icon = utils.StripQuotes(c.Icon)

	if out.Icon != "" && !strings.HasPrefix(out.Icon, "https://") {
		return nil, checkErr(CodeInvalidPackIcon, "pack icon must start with https://")
	}

	out.Banner = utils.StripQuotes(c.Banner)

	if out.Banner != "" && !strings.HasPrefix(out.Banner, "https://") {
		return nil, checkErr(CodeInvalidPackBanner, "pack banner must start with https://")
	}

	return &out, nil
}
