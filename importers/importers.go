// Package importers normalizes third-party bot-list export documents into
// internal candidates. The adapted candidate goes through the same
// admission chain as a hand-written submission.
package importers

import (
	"errors"
	"regexp"
	"strings"

	"magpie/types"

	"github.com/infinitybotlist/eureka/crypto"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"
)

type Source string

const (
	SourceTopGG          Source = "topgg"
	SourceDiscordBotList Source = "dbl"
	SourceRovel          Source = "rovel"
)

var (
	ErrUnknownSource = errors.New("unknown import source")
	ErrNotAnOwner    = errors.New("you are not an owner of this bot on the source list")
)

// Sources lists the supported source identifiers for the ?src= enum
func Sources() []Source {
	return []Source{SourceTopGG, SourceDiscordBotList, SourceRovel}
}

// topggExport is the shape of a top.gg bot document
type topggExport struct {
	Username  string   `mapstructure:"username"`
	Prefix    string   `mapstructure:"prefix"`
	ShortDesc string   `mapstructure:"shortdesc"`
	LongDesc  string   `mapstructure:"longdesc"`
	Website   string   `mapstructure:"website"`
	Invite    string   `mapstructure:"invite"`
	Owners    []string `mapstructure:"owners"`
}

// dblExport is the shape of a discordbotlist.com bot document
type dblExport struct {
	Name      string   `mapstructure:"name"`
	Prefix    string   `mapstructure:"prefix"`
	ShortDesc string   `mapstructure:"short_description"`
	LongDesc  string   `mapstructure:"long_description"`
	Website   string   `mapstructure:"website"`
	Invite    string   `mapstructure:"invite_url"`
	Owners    []string `mapstructure:"owner_ids"`
}

// rovelExport is the shape of a Rovel Discord List bot document
type rovelExport struct {
	Name      string   `mapstructure:"botname"`
	Prefix    string   `mapstructure:"prefix"`
	ShortDesc string   `mapstructure:"about"`
	LongDesc  string   `mapstructure:"description"`
	Website   string   `mapstructure:"site"`
	Invite    string   `mapstructure:"invite"`
	Owners    []string `mapstructure:"owners"`
}

var vanityStrip = regexp.MustCompile("[^a-z0-9-]")

// Adapt maps a foreign export document onto a candidate for botID. The
// importing caller must appear in the document's owner list. fallbackTag
// seeds the tag list since foreign tag vocabularies never line up with
// ours.
func Adapt(src Source, doc map[string]any, botID, callerID, fallbackTag string) (*types.Candidate, error) {
	var name, prefix, short, long, website, invite string
	var owners []string

	switch src {
	case SourceTopGG:
		var e topggExport

		if err := mapstructure.Decode(doc, &e); err != nil {
			return nil, err
		}

		name, prefix, short, long, website, invite, owners = e.Username, e.Prefix, e.ShortDesc, e.LongDesc, e.Website, e.Invite, e.Owners
	case SourceDiscordBotList:
		var e dblExport

		if err := mapstructure.Decode(doc, &e); err != nil {
			return nil, err
		}

		name, prefix, short, long, website, invite, owners = e.Name, e.Prefix, e.ShortDesc, e.LongDesc, e.Website, e.Invite, e.Owners
	case SourceRovel:
		var e rovelExport

		if err := mapstructure.Decode(doc, &e); err != nil {
			return nil, err
		}

		name, prefix, short, long, website, invite, owners = e.Name, e.Prefix, e.ShortDesc, e.LongDesc, e.Website, e.Invite, e.Owners
	default:
		return nil, ErrUnknownSource
	}

	if !slices.Contains(owners, callerID) {
		return nil, ErrNotAnOwner
	}

	var extraOwners []types.Owner

	for _, o := range owners {
		if o == callerID {
			continue
		}

		extraOwners = append(extraOwners, types.Owner{ID: o})
	}

	return &types.Candidate{
		ID:       botID,
		Prefix:   prefix,
		Short:    short,
		Long:     long,
		Website:  website,
		Invite:   invite,
		Vanity:   PlaceholderVanity(name),
		Tags:     []string{fallbackTag},
		Owners:   extraOwners,
	}, nil
}

// PlaceholderVanity builds the leading-underscore vanity imported bots get
// until their owner picks a real one
func PlaceholderVanity(name string) string {
	slug := vanityStrip.ReplaceAllString(strings.ReplaceAll(strings.ToLower(name), " ", "-"), "")
	slug = strings.Trim(slug, "-")

	return "_" + slug + "-" + crypto.RandString(32)
}
