package importers

import (
	"errors"
	"strings"
	"testing"
)

func topggDoc() map[string]any {
	return map[string]any{
		"username":  "Test Bot",
		"prefix":    "!",
		"shortdesc": "A short description",
		"longdesc":  "A much longer description",
		"website":   "https://example.com",
		"invite":    "https://discord.com/oauth2/authorize?client_id=123",
		"owners":    []string{"456", "789"},
	}
}

func TestAdaptTopGG(t *testing.T) {
	c, err := Adapt(SourceTopGG, topggDoc(), "123", "456", "utility")

	if err != nil {
		t.Fatal(err)
	}

	if c.ID != "123" {
		t.Errorf("expected bot id 123, got %q", c.ID)
	}

	if c.Prefix != "!" || c.Short != "A short description" || c.Long != "A much longer description" {
		t.Errorf("field mapping mismatch: %+v", c)
	}

	if len(c.Tags) != 1 || c.Tags[0] != "utility" {
		t.Errorf("expected the fallback tag, got %v", c.Tags)
	}

	// The caller never appears in the extra owner list
	if len(c.Owners) != 1 || c.Owners[0].ID != "789" {
		t.Errorf("expected one extra owner 789, got %v", c.Owners)
	}

	if c.Owners[0].Main {
		t.Error("imported extra owners must not be main")
	}
}

func TestAdaptDiscordBotList(t *testing.T) {
	doc := map[string]any{
		"name":              "Test Bot",
		"prefix":            "?",
		"short_description": "A short description",
		"long_description":  "A much longer description",
		"website":           "https://example.com",
		"invite_url":        "https://discord.com/oauth2/authorize?client_id=123",
		"owner_ids":         []string{"456"},
	}

	c, err := Adapt(SourceDiscordBotList, doc, "123", "456", "utility")

	if err != nil {
		t.Fatal(err)
	}

	if c.Prefix != "?" || c.Invite == "" {
		t.Errorf("field mapping mismatch: %+v", c)
	}
}

func TestAdaptNotAnOwner(t *testing.T) {
	_, err := Adapt(SourceTopGG, topggDoc(), "123", "999", "utility")

	if !errors.Is(err, ErrNotAnOwner) {
		t.Fatalf("expected ErrNotAnOwner, got %v", err)
	}
}

func TestAdaptUnknownSource(t *testing.T) {
	_, err := Adapt(Source("bogus"), topggDoc(), "123", "456", "utility")

	if !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
}

func TestPlaceholderVanity(t *testing.T) {
	v := PlaceholderVanity("My Cool Bot!!")

	if !strings.HasPrefix(v, "_my-cool-bot-") {
		t.Errorf("unexpected vanity shape %q", v)
	}

	if strings.ContainsAny(v, " !") {
		t.Errorf("vanity must be a clean slug, got %q", v)
	}

	// Two placeholders for the same name must not collide
	if v == PlaceholderVanity("My Cool Bot!!") {
		t.Error("placeholder vanities should carry a random suffix")
	}
}
