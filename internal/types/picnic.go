package types

import "time"

// PicnicCreated is returned by GET /picnic-add/.
type PicnicCreated struct {
	ID   int64     `json:"id"`
	City string    `json:"city"`
	Time time.Time `json:"time"`
}

// PicnicDetail is one entry of GET /all-picnics/.
type PicnicDetail struct {
	ID    int64     `json:"id"`
	City  string    `json:"city"`
	Time  time.Time `json:"time"`
	Users []User    `json:"users"`
}

// PicnicFilter narrows the picnic listing. Nil fields do not filter.
type PicnicFilter struct {
	At    *time.Time // exact picnic time
	Since *time.Time // picnics at or after this instant
}

// RegistrationSummary is returned by GET /picnic-register/.
type RegistrationSummary struct {
	RegistrationID int64     `json:"registration_id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	PicnicID       int64     `json:"picnic_id"`
	Time           time.Time `json:"time"`
}
