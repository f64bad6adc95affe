package types

// EntityState is the moderation state of a listed bot or server.
type EntityState int

const (
	StateApproved EntityState = iota
	StatePending
	StateDenied
	StateHidden
	StateBanned
	StateUnderReview
	StateCertified
	StateArchived
	StatePrivateViewable
	StatePrivateStaffOnly
)

func (s EntityState) String() string {
	switch s {
	case StateApproved:
		return "approved"
	case StatePending:
		return "pending"
	case StateDenied:
		return "denied"
	case StateHidden:
		return "hidden"
	case StateBanned:
		return "banned"
	case StateUnderReview:
		return "under_review"
	case StateCertified:
		return "certified"
	case StateArchived:
		return "archived"
	case StatePrivateViewable:
		return "private_viewable"
	case StatePrivateStaffOnly:
		return "private_staff_only"
	}

	return "unknown"
}

// EntityFlags is a bitmask of per-entity lock/marker flags.
type EntityFlags int

const (
	FlagEditLocked EntityFlags = 1 << iota
	FlagStaffLocked
	FlagSystem
)

func (f EntityFlags) Has(flag EntityFlags) bool {
	return f&flag == flag
}

// Owner is one entry of an entity's owner list. At most one entry may have
// Main set; the main owner is the only one who may transfer or delete.
type Owner struct {
	ID   string `db:"owner_id" json:"id"`
	Main bool   `db:"main" json:"main"`
}

// PlatformUser is the canonical user record as resolved from the users
// table. Caller-submitted user fields are never trusted; this record
// replaces them during validation.
type PlatformUser struct {
	ID       string `db:"user_id" json:"id"`
	Username string `db:"username" json:"username"`
	Avatar   string `db:"avatar" json:"avatar"`
	Bot      bool   `db:"bot" json:"bot"`
}

// Tag is one entry of the global tag vocabulary
type Tag struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Feature is one entry of the global feature vocabulary
type Feature struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Candidate is a caller-submitted bot or server payload before admission.
// Validation does not mutate it; the normalized copy returned by the check
// chain is what gets persisted. For servers, GuildCount carries the member
// count.
type Candidate struct {
	ID            string   `json:"id" validate:"required,numeric" msg:"Entity ID must be a numeric snowflake"`
	ClientID      string   `json:"client_id" validate:"omitempty,numeric" msg:"Client ID must be a numeric snowflake"`
	Prefix        string   `json:"prefix"`
	Vanity        string   `json:"vanity"`
	Short         string   `json:"short"`
	Long          string   `json:"long"`
	Invite        string   `json:"invite"`
	Website       string   `json:"website"`
	Donate        string   `json:"donate"`
	Github        string   `json:"github"`
	PrivacyPolicy string   `json:"privacy_policy"`
	BannerCard    string   `json:"banner_card"`
	BannerPage    string   `json:"banner_page"`
	Tags          []string `json:"tags"`
	Features      []string `json:"features"`
	Owners        []Owner  `json:"owners"`
	GuildCount    int      `json:"guild_count"`

	// Filled in from the users table during validation, never from the
	// submitted body
	User *PlatformUser `json:"user,omitempty"`
}
