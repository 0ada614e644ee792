package credits

import "workspace/internal/domain"

type AccountKind string

const (
	AccountIndividual     AccountKind = "INDIVIDUAL"
	AccountOrganizational AccountKind = "ORGANIZATION"
)

// AccountRef is a tagged reference to the balance a subject draws from:
// either a user's individual credits or an organization's shared pool.
type AccountRef struct {
	Kind AccountKind
	ID   int64
}

func Individual(userID int64) AccountRef {
	return AccountRef{Kind: AccountIndividual, ID: userID}
}

func Organizational(orgID int64) AccountRef {
	return AccountRef{Kind: AccountOrganizational, ID: orgID}
}

// ResolveAccount maps a subject to the account all of its debits and refunds
// go through. ORG_USER and ORG_ADMIN draw from the organization pool when
// they have an organization assigned; INDIVIDUAL_USER always draws from the
// personal balance, even if a stray organization_id is present.
func ResolveAccount(sub domain.Subject) AccountRef {
	switch sub.Role {
	case domain.RoleOrgUser, domain.RoleOrgAdmin:
		if sub.OrganizationID != nil {
			return Organizational(*sub.OrganizationID)
		}
	}
	return Individual(sub.UserID)
}
