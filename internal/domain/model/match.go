// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"
)

// ISODateLayout is the canonical rendering of a match date.
const ISODateLayout = "2006-01-02"

// MaxScore is the largest goal count a side may carry. Loaders reject more.
const MaxScore = math.MaxInt32

// Match is one played international fixture.
type Match struct {
	Date       time.Time // calendar date at UTC midnight, no time component
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	Tournament string
	Country    string // host country or location
}

// Year returns the calendar year the match was played in.
func (m Match) Year() int { return m.Date.Year() }

// TotalScore returns the goals scored by both sides.
func (m Match) TotalScore() int { return m.HomeScore + m.AwayScore }

// Label renders the fixture as "<home> vs <away>".
func (m Match) Label() string { return m.HomeTeam + " vs " + m.AwayTeam }

// ISODate returns the match date as YYYY-MM-DD.
func (m Match) ISODate() string { return m.Date.Format(ISODateLayout) }

// Outcome classifies a result from the home side's perspective.
type Outcome int

// Outcome values.
const (
	HomeWin Outcome = iota
	AwayWin
	Draw
)

// Outcome reports who won the match.
func (m Match) Outcome() Outcome {
	switch {
	case m.HomeScore > m.AwayScore:
		return HomeWin
	case m.HomeScore < m.AwayScore:
		return AwayWin
	default:
		return Draw
	}
}
