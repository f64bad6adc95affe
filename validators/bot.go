// Package validators implements the admission rules for bot, server and
// pack submissions. Each chain is a fixed sequence of checks; the first
// failing check decides the reported error. Chains never mutate their
// input: the normalized candidate they return is the only thing a caller
// may persist.
package validators

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"magpie/types"
	"magpie/utils"
	"magpie/verify"

	mapset "github.com/deckarep/golang-set/v2"
)

type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

const (
	maxPrefixLen = 9
	minVanityLen = 2
	minShortLen  = 10
	maxShortLen  = 200
	minLongLen   = 200
	maxTags      = 10
	maxFeatures  = 5
	maxOwners    = 5
)

// CheckBot runs the full admission chain for a bot candidate
func CheckBot(ctx context.Context, d Deps, mode Mode, c types.Candidate) (*types.Candidate, *CheckError) {
	return checkEntity(ctx, d, mode, "bot", c)
}

// CheckServer runs the same chain for a server candidate. Servers carry no
// client ID and are not corroborated externally.
func CheckServer(ctx context.Context, d Deps, mode Mode, c types.Candidate) (*types.Candidate, *CheckError) {
	return checkEntity(ctx, d, mode, "server", c)
}

func checkEntity(ctx context.Context, d Deps, mode Mode, targetType string, c types.Candidate) (*types.Candidate, *CheckError) {
	out := c

	// Existing record
	rec, err := d.Store.Record(ctx, targetType, c.ID)

	if err != nil {
		return nil, checkErrCtx(CodeStore, "failed to look up existing record", err.Error())
	}

	switch mode {
	case ModeAdd:
		if rec != nil {
			if rec.State == types.StateDenied || rec.State == types.StateBanned {
				return nil, checkErrCtx(CodeBannedOrDenied, "this "+targetType+" has been "+rec.State.String()+", please appeal first", rec.State.String())
			}

			return nil, checkErr(CodeAlreadyExists, "this "+targetType+" is already listed")
		}
	case ModeEdit:
		if rec == nil {
			return nil, checkErr(CodeNotFound, "this "+targetType+" is not listed")
		}

		if c.ClientID != "" && rec.ClientID != "" && c.ClientID != rec.ClientID {
			return nil, checkErr(CodeClientIDImmutable, "the client ID cannot be changed after creation")
		}

		if rec.Flags.Has(types.FlagEditLocked) || rec.Flags.Has(types.FlagStaffLocked) {
			return nil, checkErr(CodeEditLocked, "this "+targetType+" is locked against edits, unlock it first")
		}
	}

	// External corroboration, add mode only. The corroborated guild count
	// is the only externally sourced field.
	if mode == ModeAdd && targetType == "bot" {
		clientID := c.ClientID

		if clientID == "" {
			clientID = c.ID
		}

		meta, err := d.Apps.Application(ctx, clientID)

		if err != nil {
			if errors.Is(err, verify.ErrAppNotFound) {
				return nil, checkErrCtx(CodeClientIDNeeded, "a valid client ID is required for this bot", err.Error())
			}

			return nil, checkErrCtx(CodeAppCheckFailed, "could not corroborate this bot against its application", err.Error())
		}

		if c.ClientID != "" && meta.ID != c.ClientID {
			return nil, checkErr(CodeClientIDMismatch, "the resolved application does not match the client ID provided")
		}

		if !meta.BotPublic {
			return nil, checkErr(CodeNotPublic, "this bot is not public, enable public invitation first")
		}

		out.GuildCount = meta.GuildCount
	}

	// Prefix and vanity
	if utf8.RuneCountInString(c.Prefix) > maxPrefixLen {
		return nil, checkErr(CodePrefixTooLong, "prefix must be 9 characters or less")
	}

	if utf8.RuneCountInString(c.Vanity) < minVanityLen {
		return nil, checkErr(CodeNoVanity, "a vanity of at least 2 characters is required")
	}

	vtt, vid, err := d.Store.ResolveVanity(ctx, strings.ToLower(c.Vanity))

	if err != nil {
		return nil, checkErrCtx(CodeStore, "failed to resolve vanity", err.Error())
	}

	if vid != "" && !(vtt == targetType && vid == c.ID) {
		return nil, checkErr(CodeVanityTaken, "this vanity is already taken")
	}

	// Invite
	invite := utils.StripQuotes(c.Invite)

	if invite != "" {
		if strings.HasPrefix(invite, "P:") {
			if _, err := strconv.ParseUint(invite[2:], 10, 64); err != nil {
				return nil, checkErr(CodeInvalidInvitePermNum, "invite permission number must be a positive integer")
			}
		} else if !strings.HasPrefix(invite, "https://") {
			return nil, checkErr(CodeInvalidInvite, "invite must start with https://")
		}
	}

	out.Invite = invite

	// Descriptions
	if n := utf8.RuneCountInString(c.Short); n < minShortLen || n > maxShortLen {
		return nil, checkErr(CodeShortDescLength, "short description must be between 10 and 200 characters")
	}

	if utf8.RuneCountInString(c.Long) < minLongLen {
		return nil, checkErr(CodeLongDescLength, "long description must be at least 200 characters")
	}

	// Users paste escaped text often enough that literal escapes are
	// rewritten unconditionally once the length check has passed
	long := strings.ReplaceAll(c.Long, `\r\n`, `\n`)
	long = strings.ReplaceAll(long, `\n`, "\n")
	long = strings.ReplaceAll(long, `\r`, "")
	out.Long = long

	// Optional links
	var linkErr *CheckError

	out.Github, linkErr = checkLink(c.Github, CodeInvalidGithub, "github link")
	if linkErr != nil {
		return nil, linkErr
	}

	out.PrivacyPolicy, linkErr = checkLink(c.PrivacyPolicy, CodeInvalidPrivacyPolicy, "privacy policy link")
	if linkErr != nil {
		return nil, linkErr
	}

	out.Donate, linkErr = checkLink(c.Donate, CodeInvalidDonate, "donate link")
	if linkErr != nil {
		return nil, linkErr
	}

	out.Website, linkErr = checkLink(c.Website, CodeInvalidWebsite, "website link")
	if linkErr != nil {
		return nil, linkErr
	}

	// Canonical user record. Whatever the caller submitted is discarded.
	user, err := d.Store.User(ctx, c.ID)

	if err != nil {
		return nil, checkErrCtx(CodeStore, "failed to look up user record", err.Error())
	}

	if user == nil {
		return nil, checkErr(CodeNotFound, "this "+targetType+" does not resolve to a known user")
	}

	out.User = user

	// Tags
	if len(c.Tags) > maxTags {
		return nil, checkErr(CodeTooManyTags, "at most 10 tags are allowed")
	}

	vocab, err := d.Store.Tags(ctx)

	if err != nil {
		return nil, checkErrCtx(CodeStore, "failed to load tag vocabulary", err.Error())
	}

	knownTags := mapset.NewSet[string]()

	for _, t := range vocab {
		knownTags.Add(t.ID)
	}

	// Unknown tags are dropped silently, duplicates collapse to one entry
	seenTags := mapset.NewSet[string]()
	outTags := []string{}

	for _, t := range c.Tags {
		if knownTags.Contains(t) && seenTags.Add(t) {
			outTags = append(outTags, t)
		}
	}

	if len(outTags) == 0 {
		return nil, checkErr(CodeNoTags, "at least one known tag is required")
	}

	out.Tags = outTags

	// Features. Unlike tags, an empty filtered list is fine.
	if len(c.Features) > maxFeatures {
		return nil, checkErr(CodeTooManyFeatures, "at most 5 features are allowed")
	}

	featVocab, err := d.Store.Features(ctx)

	if err != nil {
		return nil, checkErrCtx(CodeStore, "failed to load feature vocabulary", err.Error())
	}

	knownFeats := mapset.NewSet[string]()

	for _, f := range featVocab {
		knownFeats.Add(f.ID)
	}

	seenFeats := mapset.NewSet[string]()
	outFeats := []string{}

	for _, f := range c.Features {
		if knownFeats.Contains(f) && seenFeats.Add(f) {
			outFeats = append(outFeats, f)
		}
	}

	out.Features = outFeats

	// Banners
	if c.BannerCard != "" {
		if err := d.Banner.Probe(ctx, c.BannerCard); err != nil {
			return nil, checkErrCtx(CodeBannerCard, "card banner failed validation", err.Error())
		}
	}

	if c.BannerPage != "" {
		if err := d.Banner.Probe(ctx, c.BannerPage); err != nil {
			return nil, checkErrCtx(CodeBannerPage, "page banner failed validation", err.Error())
		}
	}

	// Owners. The main owner never enters through this path: adds attach
	// the caller as main afterwards, edits keep the stored main owner, and
	// only the transfer operation may replace it.
	if len(c.Owners) > maxOwners {
		return nil, checkErr(CodeOwnerListTooLong, "at most 5 owners may be submitted")
	}

	seenOwners := mapset.NewSet[string]()
	outOwners := []types.Owner{}

	for _, o := range c.Owners {
		if o.Main {
			return nil, checkErr(CodeMainOwnerAdd, "the main owner can only be changed through a transfer")
		}

		if _, err := strconv.ParseUint(o.ID, 10, 64); err != nil {
			return nil, checkErrCtx(CodeOwnerIDParse, "owner IDs must be numeric snowflakes", o.ID)
		}

		owner, err := d.Store.User(ctx, o.ID)

		if err != nil {
			return nil, checkErrCtx(CodeStore, "failed to look up owner", err.Error())
		}

		if owner == nil {
			return nil, checkErrCtx(CodeOwnerNotFound, "one of the owners provided does not exist", o.ID)
		}

		if seenOwners.Add(o.ID) {
			outOwners = append(outOwners, types.Owner{ID: o.ID})
		}
	}

	out.Owners = outOwners

	return &out, nil
}

// checkLink strips stray quotes and enforces https. Github links may come
// in as bare github.com paths and get the scheme prepended.
func checkLink(v string, code Code, what string) (string, *CheckError) {
	v = utils.StripQuotes(v)

	if v == "" {
		return "", nil
	}

	if code == CodeInvalidGithub && strings.HasPrefix(v, "github.com") {
		v = "https://" + v
	}

	if !strings.HasPrefix(v, "https://") {
		return "", checkErr(code, what+" must start with https://")
	}

	return v, nil
}
