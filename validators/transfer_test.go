package validators

import (
	"context"
	"testing"

	"magpie/types"
)

func TestCheckTransfer(t *testing.T) {
	deps := testDeps()

	owners := []types.Owner{
		{ID: "456", Main: true},
		{ID: "789"},
	}

	cases := []struct {
		name     string
		owners   []types.Owner
		caller   string
		newOwner string
		code     Code
	}{
		{"main owner to known user", owners, "456", "789", ""},
		{"regular owner cannot transfer", owners, "789", "456", CodeNotMainOwner},
		{"stranger cannot transfer", owners, "999", "456", CodeNotMainOwner},
		{"no owners at all", nil, "456", "789", CodeNotMainOwner},
		{"transfer to self", owners, "456", "456", CodeSelfTransfer},
		{"transfer to unknown user", owners, "456", "111", CodeNewOwnerUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cerr := CheckTransfer(context.Background(), deps.Store, tc.owners, tc.caller, tc.newOwner)

			if tc.code == "" {
				if cerr != nil {
					t.Fatalf("expected pass, got %s: %s", cerr.Code, cerr.Reason)
				}

				return
			}

			if cerr == nil {
				t.Fatalf("expected %s, got pass", tc.code)
			}

			if cerr.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, cerr.Code)
			}
		})
	}
}

func TestCheckTransferUnknownUserCarriesID(t *testing.T) {
	deps := testDeps()

	owners := []types.Owner{{ID: "456", Main: true}}

	cerr := CheckTransfer(context.Background(), deps.Store, owners, "456", "111")

	if cerr == nil || cerr.Code != CodeNewOwnerUnknown {
		t.Fatalf("expected %s, got %v", CodeNewOwnerUnknown, cerr)
	}

	if cerr.Context != "111" {
		t.Fatalf("expected context to carry the unknown ID, got %q", cerr.Context)
	}
}
