package validators

import (
	"context"
	"strings"
	"testing"

	"magpie/types"
	"magpie/verify"
)

func mustFail(t *testing.T, cerr *CheckError, code Code) {
	t.Helper()

	if cerr == nil {
		t.Fatalf("expected check to fail with %s, got success", code)
	}

	if cerr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, cerr.Code, cerr.Reason)
	}
}

func TestCheckBotAdd(t *testing.T) {
	out, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, validCandidate())

	if cerr != nil {
		t.Fatalf("expected success, got %s: %s", cerr.Code, cerr.Reason)
	}

	if out.GuildCount != 250 {
		t.Errorf("guild count should come from the application, got %d", out.GuildCount)
	}

	if out.User == nil || out.User.Username != "testbot" {
		t.Errorf("user should be the canonical record, got %+v", out.User)
	}
}

func TestCheckBotAddIgnoresSubmittedGuildCount(t *testing.T) {
	c := validCandidate()
	c.GuildCount = 999999

	out, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	if out.GuildCount != 250 {
		t.Errorf("submitted guild count must be overwritten, got %d", out.GuildCount)
	}
}

func TestCheckBotAlreadyExists(t *testing.T) {
	d := testDeps()
	d.Store.(*fakeStore).records["bot/123"] = &Record{ID: "123", State: types.StateApproved}

	_, cerr := CheckBot(context.Background(), d, ModeAdd, validCandidate())
	mustFail(t, cerr, CodeAlreadyExists)
}

func TestCheckBotBannedOrDenied(t *testing.T) {
	for _, state := range []types.EntityState{types.StateDenied, types.StateBanned} {
		d := testDeps()
		d.Store.(*fakeStore).records["bot/123"] = &Record{ID: "123", State: state}

		_, cerr := CheckBot(context.Background(), d, ModeAdd, validCandidate())
		mustFail(t, cerr, CodeBannedOrDenied)

		if cerr.Context != state.String() {
			t.Errorf("context should carry the state, got %q", cerr.Context)
		}
	}
}

func TestCheckBotEditNotFound(t *testing.T) {
	_, cerr := CheckBot(context.Background(), testDeps(), ModeEdit, validCandidate())
	mustFail(t, cerr, CodeNotFound)
}

func TestCheckBotEditClientIDImmutable(t *testing.T) {
	d := testDeps()
	d.Store.(*fakeStore).records["bot/123"] = &Record{ID: "123", ClientID: "111"}

	c := validCandidate()
	c.ClientID = "222"

	_, cerr := CheckBot(context.Background(), d, ModeEdit, c)
	mustFail(t, cerr, CodeClientIDImmutable)
}

func TestCheckBotEditLocked(t *testing.T) {
	for _, flag := range []types.EntityFlags{types.FlagEditLocked, types.FlagStaffLocked} {
		d := testDeps()
		d.Store.(*fakeStore).records["bot/123"] = &Record{ID: "123", Flags: flag}

		_, cerr := CheckBot(context.Background(), d, ModeEdit, validCandidate())
		mustFail(t, cerr, CodeEditLocked)
	}
}

func TestCheckBotEditSkipsCorroboration(t *testing.T) {
	d := testDeps()
	d.Store.(*fakeStore).records["bot/123"] = &Record{ID: "123"}
	d.Apps = fakeApps{err: verify.ErrAppNotFound}

	c := validCandidate()
	c.GuildCount = 42

	out, cerr := CheckBot(context.Background(), d, ModeEdit, c)

	if cerr != nil {
		t.Fatalf("edits must not hit the application lookup, got %s", cerr.Code)
	}

	if out.GuildCount != 42 {
		t.Errorf("edit should keep the submitted count, got %d", out.GuildCount)
	}
}

func TestCheckBotClientIDNeeded(t *testing.T) {
	d := testDeps()
	d.Apps = fakeApps{err: verify.ErrAppNotFound}

	_, cerr := CheckBot(context.Background(), d, ModeAdd, validCandidate())
	mustFail(t, cerr, CodeClientIDNeeded)
}

func TestCheckBotClientIDMismatch(t *testing.T) {
	d := testDeps()

	c := validCandidate()
	c.ClientID = "999"

	_, cerr := CheckBot(context.Background(), d, ModeAdd, c)
	mustFail(t, cerr, CodeClientIDMismatch)
}

func TestCheckBotNotPublic(t *testing.T) {
	d := testDeps()
	d.Apps = fakeApps{meta: &verify.AppMeta{ID: "123", BotPublic: false}}

	_, cerr := CheckBot(context.Background(), d, ModeAdd, validCandidate())
	mustFail(t, cerr, CodeNotPublic)
}

func TestCheckBotPrefixBoundary(t *testing.T) {
	c := validCandidate()
	c.Prefix = strings.Repeat("!", 9)

	if _, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c); cerr != nil {
		t.Errorf("9 character prefix should pass, got %s", cerr.Code)
	}

	c.Prefix = strings.Repeat("!", 10)

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodePrefixTooLong)
}

func TestCheckBotVanityRequired(t *testing.T) {
	c := validCandidate()
	c.Vanity = "x"

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeNoVanity)
}

func TestCheckBotVanityTaken(t *testing.T) {
	d := testDeps()
	d.Store.(*fakeStore).vanities["testbot"] = [2]string{"bot", "999"}

	_, cerr := CheckBot(context.Background(), d, ModeAdd, validCandidate())
	mustFail(t, cerr, CodeVanityTaken)
}

func TestCheckBotVanityOwnedBySelf(t *testing.T) {
	d := testDeps()
	d.Store.(*fakeStore).records["bot/123"] = &Record{ID: "123"}
	d.Store.(*fakeStore).vanities["testbot"] = [2]string{"bot", "123"}

	if _, cerr := CheckBot(context.Background(), d, ModeEdit, validCandidate()); cerr != nil {
		t.Errorf("keeping your own vanity on edit should pass, got %s", cerr.Code)
	}
}

func TestCheckBotVanityCaseInsensitive(t *testing.T) {
	d := testDeps()
	d.Store.(*fakeStore).vanities["testbot"] = [2]string{"bot", "999"}

	c := validCandidate()
	c.Vanity = "TeStBoT"

	_, cerr := CheckBot(context.Background(), d, ModeAdd, c)
	mustFail(t, cerr, CodeVanityTaken)
}

func TestCheckBotInvite(t *testing.T) {
	cases := []struct {
		invite string
		code   Code
	}{
		{"", ""},
		{"P:8", ""},
		{"P:268435456", ""},
		{"P:abc", CodeInvalidInvitePermNum},
		{"P:-5", CodeInvalidInvitePermNum},
		{"https://discord.com/oauth2/authorize?client_id=123", ""},
		{"http://discord.com/oauth2/authorize?client_id=123", CodeInvalidInvite},
		{"discord.gg/invite", CodeInvalidInvite},
	}

	for _, tc := range cases {
		c := validCandidate()
		c.Invite = tc.invite

		_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

		if tc.code == "" {
			if cerr != nil {
				t.Errorf("invite %q should pass, got %s", tc.invite, cerr.Code)
			}
		} else {
			mustFail(t, cerr, tc.code)
		}
	}
}

func TestCheckBotShortBoundary(t *testing.T) {
	for _, n := range []int{10, 200} {
		c := validCandidate()
		c.Short = strings.Repeat("x", n)

		if _, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c); cerr != nil {
			t.Errorf("short of %d runes should pass, got %s", n, cerr.Code)
		}
	}

	for _, n := range []int{9, 201} {
		c := validCandidate()
		c.Short = strings.Repeat("x", n)

		_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
		mustFail(t, cerr, CodeShortDescLength)
	}
}

func TestCheckBotLongBoundary(t *testing.T) {
	c := validCandidate()
	c.Long = strings.Repeat("x", 199)

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeLongDescLength)

	c.Long = strings.Repeat("x", 200)

	if _, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c); cerr != nil {
		t.Errorf("long of 200 runes should pass, got %s", cerr.Code)
	}
}

func TestCheckBotLongEscapeNormalization(t *testing.T) {
	c := validCandidate()
	c.Long = strings.Repeat("x", 200) + `line\r\nline\nline\rend`

	out, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	want := strings.Repeat("x", 200) + "line\nline\nlineend"

	if out.Long != want {
		t.Errorf("escape normalization mismatch: got %q", out.Long)
	}
}

func TestCheckBotLinks(t *testing.T) {
	c := validCandidate()
	c.Github = "github.com/someone/testbot"

	out, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	if out.Github != "https://github.com/someone/testbot" {
		t.Errorf("bare github links should gain a scheme, got %q", out.Github)
	}

	c = validCandidate()
	c.Website = "http://example.com"

	_, cerr = CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeInvalidWebsite)

	c = validCandidate()
	c.Donate = "patreon.com/someone"

	_, cerr = CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeInvalidDonate)
}

func TestCheckBotUnknownUser(t *testing.T) {
	c := validCandidate()
	c.ID = "555"

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeNotFound)
}

func TestCheckBotTags(t *testing.T) {
	c := validCandidate()
	c.Tags = make([]string, 11)

	for i := range c.Tags {
		c.Tags[i] = "fun"
	}

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeTooManyTags)

	// Unknown tags drop, duplicates collapse
	c = validCandidate()
	c.Tags = []string{"fun", "bogus", "fun", "moderation"}

	out, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	if len(out.Tags) != 2 || out.Tags[0] != "fun" || out.Tags[1] != "moderation" {
		t.Errorf("tag filter mismatch: got %v", out.Tags)
	}

	// Filtering is idempotent: a normalized list survives unchanged
	c.Tags = out.Tags

	out2, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	if len(out2.Tags) != len(out.Tags) {
		t.Errorf("tag filter should be idempotent: %v vs %v", out.Tags, out2.Tags)
	}

	c = validCandidate()
	c.Tags = []string{"bogus", "alsobogus"}

	_, cerr = CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeNoTags)
}

func TestCheckBotFeatures(t *testing.T) {
	c := validCandidate()
	c.Features = []string{"a", "b", "c", "d", "e", "f"}

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeTooManyFeatures)

	// Unknown features drop silently; an empty result is fine
	c = validCandidate()
	c.Features = []string{"bogus", "slash", "slash"}

	out, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	if len(out.Features) != 1 || out.Features[0] != "slash" {
		t.Errorf("feature filter mismatch: got %v", out.Features)
	}
}

func TestCheckBotBanners(t *testing.T) {
	d := testDeps()
	d.Banner = fakeProbe{bad: map[string]error{"https://cdn.example.com/card.png": verify.ErrNotAnImage}}

	c := validCandidate()
	c.BannerCard = "https://cdn.example.com/card.png"

	_, cerr := CheckBot(context.Background(), d, ModeAdd, c)
	mustFail(t, cerr, CodeBannerCard)

	c = validCandidate()
	c.BannerPage = "https://cdn.example.com/card.png"

	_, cerr = CheckBot(context.Background(), d, ModeAdd, c)
	mustFail(t, cerr, CodeBannerPage)
}

func TestCheckBotOwners(t *testing.T) {
	c := validCandidate()
	c.Owners = []types.Owner{{ID: "456", Main: true}}

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeMainOwnerAdd)

	c = validCandidate()
	c.Owners = []types.Owner{{ID: "not-a-snowflake"}}

	_, cerr = CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeOwnerIDParse)

	c = validCandidate()
	c.Owners = []types.Owner{{ID: "404404"}}

	_, cerr = CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeOwnerNotFound)

	c = validCandidate()
	c.Owners = make([]types.Owner, 6)

	for i := range c.Owners {
		c.Owners[i] = types.Owner{ID: "456"}
	}

	_, cerr = CheckBot(context.Background(), testDeps(), ModeAdd, c)
	mustFail(t, cerr, CodeOwnerListTooLong)

	c = validCandidate()
	c.Owners = []types.Owner{{ID: "456"}, {ID: "456"}, {ID: "789"}}

	out, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	if len(out.Owners) != 2 {
		t.Errorf("owner list should be de-duplicated, got %v", out.Owners)
	}

	for _, o := range out.Owners {
		if o.Main {
			t.Errorf("no owner from this path may be main: %v", out.Owners)
		}
	}
}

func TestCheckServerSkipsCorroboration(t *testing.T) {
	d := testDeps()
	d.Apps = fakeApps{err: verify.ErrAppNotFound}

	c := validCandidate()
	c.GuildCount = 1234

	out, cerr := CheckServer(context.Background(), d, ModeAdd, c)

	if cerr != nil {
		t.Fatalf("servers must not be corroborated, got %s: %s", cerr.Code, cerr.Reason)
	}

	if out.GuildCount != 1234 {
		t.Errorf("server member count should pass through, got %d", out.GuildCount)
	}
}

func TestCheckBotDoesNotMutateInput(t *testing.T) {
	c := validCandidate()
	c.Github = "github.com/someone/testbot"

	_, cerr := CheckBot(context.Background(), testDeps(), ModeAdd, c)

	if cerr != nil {
		t.Fatalf("expected success, got %s", cerr.Code)
	}

	if c.Github != "github.com/someone/testbot" {
		t.Errorf("input candidate was mutated: %q", c.Github)
	}
}
