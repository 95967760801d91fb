// Package vocab holds the controlled vocabularies used by technote.toml:
// document states and contributor roles.
package vocab

import "fmt"

// State is the lifecycle state of a technote.
//
// Expected transitions are draft → stable, stable → draft,
// stable → deprecated and draft → deprecated. They are not enforced.
type State string

// Document states.
const (
	StateDraft      State = "draft"      // actively drafted, may be incomplete
	StateStable     State = "stable"     // intended to be complete and accurate
	StateDeprecated State = "deprecated" // no longer relevant, may be superseded
	StateOther      State = "other"      // explained by the status note
)

// States lists every valid State in declaration order.
var States = []State{StateDraft, StateStable, StateDeprecated, StateOther}

// ParseState returns the State named s.
func ParseState(s string) (State, error) {
	for _, st := range States {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown state %q (must be one of %v)", s, States)
}

// Role is a contributor role from the Zenodo/DataCite contributor vocabulary.
type Role string

// Contributor roles.
const (
	RoleContactPerson         Role = "ContactPerson"
	RoleDataCollector         Role = "DataCollector"
	RoleDataCurator           Role = "DataCurator"
	RoleDataManager           Role = "DataManager"
	RoleDistributor           Role = "Distributor"
	RoleEditor                Role = "Editor"
	RoleFunder                Role = "Funder"
	RoleHostingInstitution    Role = "HostingInstitution"
	RoleProducer              Role = "Producer"
	RoleProjectLeader         Role = "ProjectLeader"
	RoleProjectManager        Role = "ProjectManager"
	RoleProjectMember         Role = "ProjectMember"
	RoleRegistrationAgency    Role = "RegistrationAgency"
	RoleRegistrationAuthority Role = "RegistrationAuthority"
	RoleRelatedPerson         Role = "RelatedPerson"
	RoleResearcher            Role = "Researcher"
	RoleResearchGroup         Role = "ResearchGroup"
	RoleRightsHolder          Role = "RightsHolder"
	RoleSupervisor            Role = "Supervisor"
	RoleSponsor               Role = "Sponsor"
	RoleWorkPackageLeader     Role = "WorkPackageLeader"
	RoleOther                 Role = "Other"
)

// Roles lists every valid Role.
var Roles = []Role{
	RoleContactPerson, RoleDataCollector, RoleDataCurator, RoleDataManager,
	RoleDistributor, RoleEditor, RoleFunder, RoleHostingInstitution,
	RoleProducer, RoleProjectLeader, RoleProjectManager, RoleProjectMember,
	RoleRegistrationAgency, RoleRegistrationAuthority, RoleRelatedPerson,
	RoleResearcher, RoleResearchGroup, RoleRightsHolder, RoleSupervisor,
	RoleSponsor, RoleWorkPackageLeader, RoleOther,
}

// ParseRole returns the Role named s. Matching is exact.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown contributor role %q", s)
}
