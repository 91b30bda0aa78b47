package services

import (
	"testing"

	"nyumbaBack/internal/models"
)

func TestListingVisible(t *testing.T) {
	const ownerID = 7

	cases := []struct {
		name       string
		status     string
		archived   bool
		viewerID   int
		viewerRole string
		want       bool
	}{
		{"verified_anonymous", models.VerificationVerified, false, 0, "", true},
		{"verified_other_user", models.VerificationVerified, false, 3, models.RoleClient, true},
		{"pending_anonymous", models.VerificationPending, false, 0, "", false},
		{"rejected_anonymous", models.VerificationRejected, false, 0, "", false},
		{"rejected_other_user", models.VerificationRejected, false, 3, models.RoleClient, false},
		{"archived_anonymous", models.VerificationVerified, true, 0, "", false},
		{"archived_other_user", models.VerificationVerified, true, 3, models.RoleClient, false},
		{"rejected_owner", models.VerificationRejected, false, ownerID, models.RoleProvider, true},
		{"pending_owner", models.VerificationPending, false, ownerID, models.RoleProvider, true},
		{"archived_owner", models.VerificationVerified, true, ownerID, models.RoleProvider, true},
		{"rejected_admin", models.VerificationRejected, false, 42, models.RoleAdmin, true},
		{"archived_admin", models.VerificationVerified, true, 42, models.RoleAdmin, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := listingVisible(c.status, c.archived, ownerID, c.viewerID, c.viewerRole)
			if got != c.want {
				t.Errorf("listingVisible(%q, %v, owner=%d, viewer=%d, role=%q) = %v, want %v",
					c.status, c.archived, ownerID, c.viewerID, c.viewerRole, got, c.want)
			}
		})
	}
}
