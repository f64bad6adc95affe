package types

// IndexBotPack is the pack row shown on the index
type IndexBotPack struct {
	Owner string   `db:"owner" json:"owner_id"`
	Name  string   `db:"name" json:"name"`
	URL   string   `db:"url" json:"url"`
	Short string   `db:"short" json:"short"`
	Votes int      `db:"votes" json:"votes"`
	Bots  []string `db:"bots" json:"bot_ids"`
}

// ListIndex is the index snapshot for the bot target type
type ListIndex struct {
	Certified     []IndexBot     `json:"certified"`
	TopVoted      []IndexBot     `json:"top_voted"`
	RecentlyAdded []IndexBot     `json:"recently_added"`
	Packs         []IndexBotPack `json:"packs"`
}

// ServerIndex is the index snapshot for the server target type
type ServerIndex struct {
	TopVoted      []IndexServer `json:"top_voted"`
	RecentlyAdded []IndexServer `json:"recently_added"`
}

// SearchResponse is a search result snapshot
type SearchResponse struct {
	Query   string        `json:"query"`
	Bots    []IndexBot    `json:"bots"`
	Servers []IndexServer `json:"servers"`
}

// MiniIndex is the minimal autocomplete view of the whole list
type MiniIndex struct {
	Bots []MiniIndexBot `json:"bots"`
}
