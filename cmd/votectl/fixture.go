package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ballotportal/election-api/internal/core/ports"
	"github.com/ballotportal/election-api/internal/core/session"
)

// fixture is the seed file layout. Elections and profiles stay raw so they
// pass through the same field validation as API requests.
type fixture struct {
	Elections []map[string]any `yaml:"elections"`
	Profiles  []map[string]any `yaml:"profiles"`
	Periods   []periodFixture  `yaml:"periods"`
}

type periodFixture struct {
	ElectionID string             `yaml:"electionId"`
	Title      string             `yaml:"title"`
	StartTime  string             `yaml:"startTime"`
	EndTime    string             `yaml:"endTime"`
	Candidates []candidateFixture `yaml:"candidates"`
}

type candidateFixture struct {
	Name     string `yaml:"name"`
	LGA      string `yaml:"lga"`
	PhotoURL string `yaml:"photoUrl"`
}

func loadFixture(r io.Reader) (*fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx fixture
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fixture is empty")
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fx, nil
}

func (p periodFixture) window() *session.Window {
	return &session.Window{StartTime: p.StartTime, EndTime: p.EndTime}
}

func (p periodFixture) input() (ports.CreatePeriodInput, error) {
	start, ok := session.ParseTimestamp(p.StartTime)
	if !ok {
		return ports.CreatePeriodInput{}, fmt.Errorf("startTime %q is not a timestamp", p.StartTime)
	}
	end, ok := session.ParseTimestamp(p.EndTime)
	if !ok {
		return ports.CreatePeriodInput{}, fmt.Errorf("endTime %q is not a timestamp", p.EndTime)
	}
	return ports.CreatePeriodInput{
		ElectionID: p.ElectionID,
		Title:      p.Title,
		StartTime:  start,
		EndTime:    end,
	}, nil
}
