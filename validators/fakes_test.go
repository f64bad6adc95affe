package validators

import (
	"context"
	"strings"

	"magpie/types"
	"magpie/verify"
)

type fakeStore struct {
	records  map[string]*Record
	vanities map[string][2]string
	users    map[string]*types.PlatformUser
	tags     []types.Tag
	features []types.Feature
}

func (f *fakeStore) Record(_ context.Context, targetType, id string) (*Record, error) {
	return f.records[targetType+"/"+id], nil
}

func (f *fakeStore) ResolveVanity(_ context.Context, code string) (string, string, error) {
	v, ok := f.vanities[strings.ToLower(code)]

	if !ok {
		return "", "", nil
	}

	return v[0], v[1], nil
}

func (f *fakeStore) User(_ context.Context, id string) (*types.PlatformUser, error) {
	return f.users[id], nil
}

func (f *fakeStore) Tags(_ context.Context) ([]types.Tag, error) {
	return f.tags, nil
}

func (f *fakeStore) Features(_ context.Context) ([]types.Feature, error) {
	return f.features, nil
}

type fakeApps struct {
	meta *verify.AppMeta
	err  error
}

func (f fakeApps) Application(_ context.Context, clientID string) (*verify.AppMeta, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.meta, nil
}

type fakeProbe struct {
	bad map[string]error
}

func (f fakeProbe) Probe(_ context.Context, url string) error {
	return f.bad[url]
}

// testDeps builds a Deps where bot 123 is addable: the app check passes
// with 250 guilds and both 123 and user 456 resolve.
func testDeps() Deps {
	return Deps{
		Store: &fakeStore{
			records:  map[string]*Record{},
			vanities: map[string][2]string{},
			users: map[string]*types.PlatformUser{
				"123": {ID: "123", Username: "testbot", Bot: true},
				"456": {ID: "456", Username: "someone"},
				"789": {ID: "789", Username: "friend"},
			},
			tags:     []types.Tag{{ID: "fun", Name: "Fun"}, {ID: "moderation", Name: "Moderation"}},
			features: []types.Feature{{ID: "slash", Name: "Slash Commands"}},
		},
		Apps: fakeApps{
			meta: &verify.AppMeta{ID: "123", BotPublic: true, GuildCount: 250},
		},
		Banner: fakeProbe{},
	}
}

func validCandidate() types.Candidate {
	return types.Candidate{
		ID:     "123",
		Vanity: "testbot",
		Prefix: "!",
		Short:  "A bot that does bot things",
		Long:   strings.Repeat("A bot that does many bot things. ", 10),
		Tags:   []string{"fun"},
	}
}
