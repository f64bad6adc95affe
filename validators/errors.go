package validators

// Code identifies the first rule a candidate violated. Exactly one code is
// reported per failed check; checks never aggregate.
type Code string

const (
	CodeAlreadyExists     Code = "already_exists"
	CodeBannedOrDenied    Code = "banned_or_denied"
	CodeNotFound          Code = "not_found"
	CodeClientIDImmutable Code = "client_id_immutable"
	CodeEditLocked        Code = "edit_locked"

	CodeClientIDNeeded   Code = "client_id_needed"
	CodeAppCheckFailed   Code = "app_check_failed"
	CodeClientIDMismatch Code = "client_id_mismatch"
	CodeNotPublic        Code = "not_public"

	CodePrefixTooLong        Code = "prefix_too_long"
	CodeNoVanity             Code = "no_vanity"
	CodeVanityTaken          Code = "vanity_taken"
	CodeInvalidInvitePermNum Code = "invalid_invite_perm_num"
	CodeInvalidInvite        Code = "invalid_invite"
	CodeShortDescLength      Code = "short_desc_length"
	CodeLongDescLength       Code = "long_desc_length"
	CodeInvalidGithub        Code = "invalid_github"
	CodeInvalidPrivacyPolicy Code = "invalid_privacy_policy"
	CodeInvalidDonate        Code = "invalid_donate"
	CodeInvalidWebsite       Code = "invalid_website"
	CodeTooManyTags          Code = "too_many_tags"
	CodeNoTags               Code = "no_tags"
	CodeTooManyFeatures      Code = "too_many_features"
	CodeBannerCard           Code = "banner_card"
	CodeBannerPage           Code = "banner_page"
	CodeOwnerListTooLong     Code = "owner_list_too_long"
	CodeMainOwnerAdd         Code = "main_owner_add_attempt"
	CodeOwnerIDParse         Code = "owner_id_parse"
	CodeOwnerNotFound        Code = "owner_not_found"

	CodeNotMainOwner    Code = "not_main_owner"
	CodeSelfTransfer    Code = "self_transfer"
	CodeNewOwnerUnknown Code = "new_owner_unknown"

	CodeNotApproved  Code = "not_approved"
	CodeNoBannerCard Code = "no_banner_card"
	CodeNoBannerPage Code = "no_banner_page"
	CodeTooFewGuilds  Code = "too_few_guilds"
	CodeTooFewMembers Code = "too_few_members"

	CodePackDescLength   Code = "pack_desc_length"
	CodeTooFewBots       Code = "too_few_bots"
	CodeTooManyBots      Code = "too_many_bots"
	CodeInvalidPackIcon   Code = "invalid_pack_icon"
	CodeInvalidPackBanner Code = "invalid_pack_banner"

	CodeStore Code = "store_error"
)

// CheckError is the typed result of a failed check. Reason is the
// user-facing message, Context carries the failing sub-detail (external
// sub-reason, offending value, moderation state).
type CheckError struct {
	Code    Code
	Reason  string
	Context string
}

func (e *CheckError) Error() string {
	if e.Context != "" {
		return e.Reason + " (" + e.Context + ")"
	}

	return e.Reason
}

func checkErr(code Code, reason string) *CheckError {
	return &CheckError{Code: code, Reason: reason}
}

func checkErrCtx(code Code, reason, context string) *CheckError {
	return &CheckError{Code: code, Reason: reason, Context: context}
}
