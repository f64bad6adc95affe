// Package verify holds the external verification capabilities consumed by
// the check chain. Both are pure gates: they never touch persistent state.
package verify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Banner probe failure kinds
var (
	ErrBadURL       = errors.New("could not fetch this URL")
	ErrBadStatus    = errors.New("URL did not return a successful status")
	ErrNotAnImage   = errors.New("URL does not point to an image")
	ErrAppNotFound  = errors.New("no application found for this client ID, a client ID may be required")
	ErrAppMalformed = errors.New("the application metadata service returned a malformed response")
)

// AppMeta is the externally corroborated application record. GuildCount is
// the only field of it that ever flows back into a candidate.
type AppMeta struct {
	ID         string
	BotPublic  bool
	GuildCount int
}

// ApplicationLookup corroborates a submitted client ID against an external
// authoritative source
type ApplicationLookup interface {
	Application(ctx context.Context, clientID string) (*AppMeta, error)
}

// ImageProbe checks that a URL resolves to an image. An empty URL is
// trivially valid and callers skip the probe for it.
type ImageProbe interface {
	Probe(ctx context.Context, url string) error
}

// HTTPImageProbe fetches the URL with a bounded timeout and requires a
// successful status plus an image/* Content-Type. No retries.
type HTTPImageProbe struct {
	Client http.Client
}

func NewImageProbe() *HTTPImageProbe {
	return &HTTPImageProbe{
		Client: http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *HTTPImageProbe) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)

	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadURL, err.Error())
	}

	resp, err := p.Client.Do(req)

	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadURL, err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")

	if !strings.HasPrefix(ct, "image") {
		return fmt.Errorf("%w: %s", ErrNotAnImage, ct)
	}

	return nil
}

type japiData struct {
	Cached bool `json:"cached"`
	Data   struct {
		Message     string `json:"message,omitempty"`
		Application *struct {
			ID        string `json:"id"`
			BotPublic bool   `json:"bot_public"`
		} `json:"application"`
		Bot *struct {
			ID                    string `json:"id"`
			ApproximateGuildCount int    `json:"approximate_guild_count"`
		} `json:"bot"`
	} `json:"data"`
}

const japiURL = "https://japi.rest/discord/v1/application/"

// JAPILookup resolves application metadata through japi.rest
type JAPILookup struct {
	Key    string
	Client http.Client

	// BaseURL overrides the japi.rest endpoint, used by tests
	BaseURL string
}

func NewApplicationLookup(key string) *JAPILookup {
	return &JAPILookup{
		Key: key,
		Client: http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (j *JAPILookup) Application(ctx context.Context, clientID string) (*AppMeta, error) {
	if _, err := strconv.ParseUint(clientID, 10, 64); err != nil {
		return nil, fmt.Errorf("error parsing client id as int: %s", clientID)
	}

	base := j.BaseURL

	if base == "" {
		base = japiURL
	}

	req, err := http.NewRequestWithContext(ctx, "GET", base+clientID, nil)

	if err != nil {
		return nil, fmt.Errorf("error creating request: %s", err.Error())
	}

	if j.Key != "" {
		req.Header.Set("Authorization", j.Key)
	}

	resp, err := j.Client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("error making request: %s", err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("we're being ratelimited by our anti-abuse provider! Please try again in %s seconds", resp.Header.Get("Retry-After"))
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w (status %d)", ErrAppNotFound, resp.StatusCode)
	}

	var data japiData

	err = json.NewDecoder(resp.Body).Decode(&data)

	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAppMalformed, err.Error())
	}

	if data.Data.Application == nil || data.Data.Bot == nil || data.Data.Bot.ID == "" {
		return nil, ErrAppMalformed
	}

	return &AppMeta{
		ID:         data.Data.Application.ID,
		BotPublic:  data.Data.Application.BotPublic,
		GuildCount: data.Data.Bot.ApproximateGuildCount,
	}, nil
}
