package entity

import (
	"regexp"
	"strings"
	"time"
)

// Bootcamp is a published listing owned by exactly one user. Latitude and
// longitude are filled from the geocoded address at creation time. Photo holds
// the stored filename, AverageCost is recomputed from the courses underneath.
type Bootcamp struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Careers       []string  `json:"careers"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	JobGuarantee  bool      `json:"job_guarantee"`
	AcceptGI      bool      `json:"accept_gi"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	AverageCost   *int      `json:"average_cost,omitempty"`
	Photo         string    `json:"photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Populated relation, only present on list/get responses that ask for it.
	Courses []*Course `json:"courses,omitempty"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug stored alongside the bootcamp name.
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
