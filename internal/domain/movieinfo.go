package domain

import (
	"github.com/lib/pq"
)

// MovieInfo is the metadata document owned by the MovieInfo store.
type MovieInfo struct {
	ID          string         `json:"movieInfoId" db:"id"`
	Name        string         `json:"name" db:"name" validate:"required"`
	Year        int            `json:"year" db:"year" validate:"required,gt=0"`
	Cast        pq.StringArray `json:"cast" db:"cast_members" validate:"required,min=1,dive,required"`
	ReleaseDate Date           `json:"release_date" db:"release_date"`
}

// MovieInfoMessages maps validated fields to their user-facing violation message.
var MovieInfoMessages = map[string]string{
	"name": "movieInfos.name must be present",
	"year": "movieInfod.year must be positive",
	"cast": "movieInfos.cast must be present",
}

// ApplyUpdate replaces every mutable field with the values from u. The id is kept.
func (m *MovieInfo) ApplyUpdate(u MovieInfo) {
	m.Name = u.Name
	m.Year = u.Year
	m.Cast = append(pq.StringArray(nil), u.Cast...)
	m.ReleaseDate = u.ReleaseDate
}

// Clone returns a deep copy.
func (m MovieInfo) Clone() MovieInfo {
	c := m
	c.Cast = append(pq.StringArray(nil), m.Cast...)
	return c
}
