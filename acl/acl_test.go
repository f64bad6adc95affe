package acl

import (
	"testing"

	"magpie/types"
)

var owners = []types.Owner{
	{ID: "1", Main: true},
	{ID: "2"},
	{ID: "3"},
}

func TestCanEdit(t *testing.T) {
	if !CanEdit(owners, "1") {
		t.Error("main owner should be able to edit")
	}

	if !CanEdit(owners, "2") {
		t.Error("additional owner should be able to edit")
	}

	if CanEdit(owners, "4") {
		t.Error("non-owner must not be able to edit")
	}
}

func TestCanTransferOrDelete(t *testing.T) {
	if !CanTransferOrDelete(owners, "1") {
		t.Error("main owner should be able to transfer")
	}

	if CanTransferOrDelete(owners, "2") {
		t.Error("additional owner must not be able to transfer")
	}

	if CanTransferOrDelete(owners, "4") {
		t.Error("non-owner must not be able to transfer")
	}

	if CanTransferOrDelete(nil, "1") {
		t.Error("empty owner list grants nothing")
	}
}

func TestMainOwner(t *testing.T) {
	main, ok := MainOwner(owners)

	if !ok || main.ID != "1" {
		t.Errorf("expected main owner 1, got %+v", main)
	}

	if _, ok := MainOwner([]types.Owner{{ID: "2"}}); ok {
		t.Error("a list without a main owner should report absence")
	}
}
