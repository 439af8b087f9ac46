package validate

import (
	"fmt"
	"strings"

	"github.com/ballotportal/election-api/internal/core/domain"
)

// BuildUserProfile validates and normalizes a raw user profile record.
func BuildUserProfile(input Record) (*domain.UserProfile, error) {
	userID, err := AsString(input["userId"], "userId")
	if err != nil {
		return nil, err
	}
	name, err := AsString(input["name"], "name")
	if err != nil {
		return nil, err
	}
	picture, err := AsString(input["profilePicture"], "profilePicture")
	if err != nil {
		return nil, err
	}
	if !IsHTTPURL(picture) {
		return nil, domain.NewValidationError(domain.CodeURLValidationFailed, "profilePicture must be a valid http(s) URL")
	}
	state, err := AsString(input["state"], "state")
	if err != nil {
		return nil, err
	}
	lga, err := AsString(input["localGovernment"], "localGovernment")
	if err != nil {
		return nil, err
	}
	role, err := AsString(input["role"], "role")
	if err != nil {
		return nil, err
	}
	role = strings.ToLower(role)
	if !domain.IsValidRole(role) {
		return nil, domain.NewValidationError(domain.CodeInvalidRole, fmt.Sprintf("role must be one of: %s, %s", domain.RoleAdmin, domain.RoleUser))
	}
	registered, err := optionalArray(input, "registeredElections")
	if err != nil {
		return nil, err
	}

	return &domain.UserProfile{
		UserID:              userID,
		Name:                name,
		ProfilePicture:      picture,
		State:               state,
		LocalGovernment:     lga,
		Role:                role,
		RegisteredElections: identifiers(registered),
	}, nil
}

// BuildElection validates and normalizes a raw election record. Only the
// region field that matches the scope is kept.
func BuildElection(input Record) (*domain.Election, error) {
	electionID, err := AsString(input["electionId"], "electionId")
	if err != nil {
		return nil, err
	}
	rawScope, err := AsString(input["scope"], "scope")
	if err != nil {
		return nil, err
	}
	scope := domain.ElectionScope(rawScope)
	if !scope.Valid() {
		return nil, domain.NewValidationError(domain.CodeInvalidType,
			fmt.Sprintf("scope must be one of: %s, %s, %s", domain.ScopeNational, domain.ScopeState, domain.ScopeLocalGovernment))
	}
	voters, err := optionalArray(input, "eligibleVoterIds")
	if err != nil {
		return nil, err
	}
	rawStatus, err := AsString(input["status"], "status")
	if err != nil {
		return nil, err
	}
	status := domain.ElectionStatus(rawStatus)
	if !status.Valid() {
		return nil, domain.NewValidationError(domain.CodeInvalidType,
			fmt.Sprintf("status must be one of: %s, %s, %s", domain.ElectionOpen, domain.ElectionClosed, domain.ElectionUpcoming))
	}

	election := &domain.Election{
		ElectionID:       electionID,
		Scope:            scope,
		EligibleVoterIDs: identifiers(voters),
		Status:           status,
	}

	switch scope {
	case domain.ScopeState:
		if election.State, err = AsString(input["state"], "state"); err != nil {
			return nil, err
		}
	case domain.ScopeLocalGovernment:
		if election.LocalGovernment, err = AsString(input["localGovernment"], "localGovernment"); err != nil {
			return nil, err
		}
	}

	return election, nil
}
