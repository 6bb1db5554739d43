package models

import "time"

// HistoryEntry is one element of a profile's visit history: a distinct
// (ip, user_agent) fingerprint together with the last time it was seen.
type HistoryEntry struct {
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	VisitDate time.Time `json:"visit_date"`
}

// CookiePayload is the application-defined session payload stored on a
// profile. The shape of each entry is owned by the frontend; the core
// only reads and rewrites a couple of well-known fields on refresh.
type CookiePayload []map[string]any

// Profile is the provenance record for any actor, anonymous or bound to
// an Identity. Exactly one Profile exists per anonymous session or per
// bound identity at a time; its Association is deleted with it.
type Profile struct {
	// ID is the internal unique identifier of the profile.
	ID int64 `json:"-"`

	// Key is the opaque 32-hex session key handed to the client.
	Key string `json:"key"`

	// CreatedDate is when the profile was first seen.
	CreatedDate time.Time `json:"created_date"`

	// VisitDate is the last time the profile's owner was seen.
	VisitDate time.Time `json:"visit_date"`

	// Avatar is an optional URL to the actor's avatar image.
	Avatar *string `json:"avatar"`

	// CookieData is the session payload, a list of key-value maps.
	CookieData CookiePayload `json:"cookie_data"`

	// Locations is an application-defined list of location records.
	Locations []map[string]any `json:"locations"`

	// IP and UserAgent are the last-seen network provenance.
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`

	// History is the append-only visit history, one entry per distinct
	// (ip, user_agent) pair.
	History []HistoryEntry `json:"history"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// TouchProvenance records a fresh sighting of the profile's owner.
//
// It overwrites the last-seen IP, user agent and visit date, then folds
// the sighting into History: an existing entry with the same
// (ip, user_agent) pair gets its visit date bumped in place, otherwise
// a new entry is appended. History grows one entry per distinct client
// fingerprint and is never truncated.
//
// Callers must invoke this before persisting any provenance mutation so
// the history write lands in the same atomic unit as the profile write.
func (p *Profile) TouchProvenance(clientIP, userAgent string, now time.Time) {
	p.IP = clientIP
	p.UserAgent = userAgent
	p.VisitDate = now

	for i := range p.History {
		if p.History[i].IP == clientIP && p.History[i].UserAgent == userAgent {
			p.History[i].VisitDate = now
			return
		}
	}

	p.History = append(p.History, HistoryEntry{
		IP:        clientIP,
		UserAgent: userAgent,
		VisitDate: now,
	})
}
