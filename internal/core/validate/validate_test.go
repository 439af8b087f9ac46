package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballotportal/election-api/internal/core/domain"
)

func TestAsString(t *testing.T) {
	bad := []any{nil, 42, true, "", "   ", []any{"x"}, map[string]any{}}
	for _, v := range bad {
		_, err := AsString(v, "name")
		assert.True(t, domain.IsCode(err, domain.CodeMissingField), "value %#v", v)
	}

	got, err := AsString("  Ada  ", "name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got)
}

func TestAsString_ErrorCarriesStatus(t *testing.T) {
	_, err := AsString(nil, "userId")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 400, ve.HTTPStatus)
	assert.Equal(t, "userId is required", ve.Message)
	assert.Equal(t, domain.ErrorBody{Code: domain.CodeMissingField, Message: "userId is required"}, ve.Payload().Error)
}

func TestAsArray(t *testing.T) {
	for _, v := range []any{nil, "a,b", 3, map[string]any{"0": "a"}} {
		_, err := AsArray(v, "eligibleVoterIds")
		assert.True(t, domain.IsCode(err, domain.CodeInvalidType), "value %#v", v)
	}

	in := []any{"a", 1.0, nil}
	got, err := AsArray(in, "eligibleVoterIds")
	require.NoError(t, err)
	assert.Equal(t, in, got)

	got, err = AsArray([]string{"x", "y"}, "ids")
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y"}, got)
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://x.com"))
	assert.True(t, IsHTTPURL("http://cdn.example.org/a.png?s=1"))
	assert.True(t, IsHTTPURL("HTTPS://X.COM"))
	assert.False(t, IsHTTPURL("ftp://x.com"))
	assert.False(t, IsHTTPURL("not a url"))
	assert.False(t, IsHTTPURL("https://"))
	assert.False(t, IsHTTPURL("://missing-scheme"))
	assert.False(t, IsHTTPURL(""))
	assert.False(t, IsHTTPURL("/img/p.png"))
	assert.False(t, IsHTTPURL("http://[::1"))
	assert.True(t, IsHTTPURL("  https://x.com/a.png  "))
}

func validProfile() Record {
	return Record{
		"userId":          "u-1",
		"name":            " Chioma Obi ",
		"profilePicture":  "https://img.example.com/u1.png",
		"state":           "Lagos",
		"localGovernment": "Ikeja",
		"role":            "USER",
	}
}

func TestBuildUserProfile_Normalizes(t *testing.T) {
	p, err := BuildUserProfile(validProfile())
	require.NoError(t, err)

	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, "Chioma Obi", p.Name)
	assert.Equal(t, domain.RoleUser, p.Role)
	assert.Equal(t, []string{}, p.RegisteredElections)
}

func TestBuildUserProfile_RegisteredElections(t *testing.T) {
	in := validProfile()
	in["registeredElections"] = []any{"e1", 7.0}

	p, err := BuildUserProfile(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "7"}, p.RegisteredElections)

	in["registeredElections"] = "e1"
	_, err = BuildUserProfile(in)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidType))
}

func TestBuildUserProfile_Failures(t *testing.T) {
	cases := []struct {
		name  string
		patch func(Record)
		code  string
	}{
		{"missing userId", func(r Record) { delete(r, "userId") }, domain.CodeMissingField},
		{"blank name", func(r Record) { r["name"] = "  " }, domain.CodeMissingField},
		{"ftp picture", func(r Record) { r["profilePicture"] = "ftp://x.com/p.png" }, domain.CodeURLValidationFailed},
		{"relative picture", func(r Record) { r["profilePicture"] = "/img/p.png" }, domain.CodeURLValidationFailed},
		{"missing state", func(r Record) { r["state"] = nil }, domain.CodeMissingField},
		{"missing lga", func(r Record) { delete(r, "localGovernment") }, domain.CodeMissingField},
		{"unknown role", func(r Record) { r["role"] = "superuser" }, domain.CodeInvalidRole},
		{"non-string role", func(r Record) { r["role"] = 1 }, domain.CodeMissingField},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validProfile()
			tc.patch(in)
			p, err := BuildUserProfile(in)
			assert.Nil(t, p)
			assert.True(t, domain.IsCode(err, tc.code), "got %v", err)
		})
	}
}

func TestBuildElection_StateScope(t *testing.T) {
	e, err := BuildElection(Record{
		"electionId":       "e1",
		"scope":            "state",
		"state":            "Lagos",
		"localGovernment":  "Ikeja",
		"eligibleVoterIds": []any{},
		"status":           "open",
	})
	require.NoError(t, err)

	assert.Equal(t, "e1", e.ElectionID)
	assert.Equal(t, domain.ScopeState, e.Scope)
	assert.Equal(t, "Lagos", e.State)
	assert.Empty(t, e.LocalGovernment)
	assert.Equal(t, domain.ElectionOpen, e.Status)
}

func TestBuildElection_NationalOmitsRegions(t *testing.T) {
	e, err := BuildElection(Record{
		"electionId": "pres-2027",
		"scope":      "national",
		"state":      "Lagos",
		"status":     "upcoming",
	})
	require.NoError(t, err)
	assert.Empty(t, e.State)
	assert.Empty(t, e.LocalGovernment)
	assert.Equal(t, []string{}, e.EligibleVoterIDs)
}

func TestBuildElection_Failures(t *testing.T) {
	base := func() Record {
		return Record{
			"electionId":       "e1",
			"scope":            "localGovernment",
			"localGovernment":  "Ikeja",
			"eligibleVoterIds": []any{"u-1"},
			"status":           "open",
		}
	}
	cases := []struct {
		name  string
		patch func(Record)
		code  string
	}{
		{"invalid scope", func(r Record) { r["scope"] = "invalid" }, domain.CodeInvalidType},
		{"invalid status", func(r Record) { r["status"] = "paused" }, domain.CodeInvalidType},
		{"voters not array", func(r Record) { r["eligibleVoterIds"] = "u-1" }, domain.CodeInvalidType},
		{"lga required for lga scope", func(r Record) { delete(r, "localGovernment") }, domain.CodeMissingField},
		{"state required for state scope", func(r Record) { r["scope"] = "state" }, domain.CodeMissingField},
		{"missing id", func(r Record) { r["electionId"] = "" }, domain.CodeMissingField},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			tc.patch(in)
			_, err := BuildElection(in)
			assert.True(t, domain.IsCode(err, tc.code), "got %v", err)
		})
	}
}
