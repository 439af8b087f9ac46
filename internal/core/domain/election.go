package domain

import "time"

// ElectionScope determines which conditional region field applies.
type ElectionScope string

const (
	ScopeNational        ElectionScope = "national"
	ScopeState           ElectionScope = "state"
	ScopeLocalGovernment ElectionScope = "localGovernment"
)

// ElectionStatus is the administrative status of an election.
type ElectionStatus string

const (
	ElectionOpen     ElectionStatus = "open"
	ElectionClosed   ElectionStatus = "closed"
	ElectionUpcoming ElectionStatus = "upcoming"
)

func (s ElectionScope) Valid() bool {
	switch s {
	case ScopeNational, ScopeState, ScopeLocalGovernment:
		return true
	}
	return false
}

func (s ElectionStatus) Valid() bool {
	switch s {
	case ElectionOpen, ElectionClosed, ElectionUpcoming:
		return true
	}
	return false
}

// Election is the normalized election record. State and LocalGovernment are
// only populated for the matching scope and are omitted otherwise.
type Election struct {
	ElectionID       string         `json:"electionId" bson:"_id"`
	Scope            ElectionScope  `json:"scope" bson:"scope"`
	State            string         `json:"state,omitempty" bson:"state,omitempty"`
	LocalGovernment  string         `json:"localGovernment,omitempty" bson:"local_government,omitempty"`
	EligibleVoterIDs []string       `json:"eligibleVoterIds" bson:"eligible_voter_ids"`
	Status           ElectionStatus `json:"status" bson:"status"`
	CreatedAt        time.Time      `json:"createdAt,omitempty" bson:"created_at"`
}

// HasEligibleVoter reports whether userID is explicitly listed as eligible.
func (e *Election) HasEligibleVoter(userID string) bool {
	for _, id := range e.EligibleVoterIDs {
		if id == userID {
			return true
		}
	}
	return false
}
