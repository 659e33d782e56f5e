package billboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ttpr0/go-cityroute/geo"
)

var ErrNoProjection = errors.New("no matching projection")

type Film struct {
	Title    string   `json:"title"`
	Genre    string   `json:"genre"`
	Director string   `json:"director"`
	Actors   []string `json:"actors"`
}

type Cinema struct {
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Loc     geo.Coord `json:"loc"`
}

type Projection struct {
	Film     Film      `json:"film"`
	Cinema   Cinema    `json:"cinema"`
	Start    time.Time `json:"start"`
	Language string    `json:"language"`
}

// Billboard is the set of films on show with their projections.
type Billboard struct {
	Films       []Film
	Cinemas     []Cinema
	Projections []Projection
}

// NewBillboard collects the distinct films and cinemas of the projections
// and orders projections by start time.
func NewBillboard(projections []Projection) *Billboard {
	b := &Billboard{
		Projections: append([]Projection(nil), projections...),
	}
	sort.SliceStable(b.Projections, func(i, j int) bool {
		return b.Projections[i].Start.Before(b.Projections[j].Start)
	})
	films := map[string]bool{}
	cinemas := map[string]bool{}
	for _, p := range projections {
		if !films[p.Film.Title] {
			films[p.Film.Title] = true
			b.Films = append(b.Films, p.Film)
		}
		if !cinemas[p.Cinema.Name] {
			cinemas[p.Cinema.Name] = true
			b.Cinemas = append(b.Cinemas, p.Cinema)
		}
	}
	return b
}

//*******************************************
// search
//*******************************************

type SearchField string

const (
	BY_TITLE    SearchField = "title"
	BY_GENRE    SearchField = "genre"
	BY_DIRECTOR SearchField = "director"
	BY_ACTOR    SearchField = "actor"
)

func SearchFieldFromString(s string) (SearchField, error) {
	switch field := SearchField(strings.ToLower(s)); field {
	case BY_TITLE, BY_GENRE, BY_DIRECTOR, BY_ACTOR:
		return field, nil
	default:
		return BY_TITLE, fmt.Errorf("unknown search field %q", s)
	}
}

// SearchByTitle returns the projections whose film title contains word,
// ignoring case.
func (self *Billboard) SearchByTitle(word string) []Projection {
	word = strings.ToLower(word)
	result := []Projection{}
	for _, p := range self.Projections {
		if strings.Contains(strings.ToLower(p.Film.Title), word) {
			result = append(result, p)
		}
	}
	return result
}

func (self *Billboard) SearchByGenre(genre string) []Film {
	return self._FilterFilms(func(f Film) bool {
		return strings.EqualFold(f.Genre, genre)
	})
}

func (self *Billboard) SearchByDirector(director string) []Film {
	return self._FilterFilms(func(f Film) bool {
		return strings.EqualFold(f.Director, director)
	})
}

func (self *Billboard) SearchByActor(actor string) []Film {
	return self._FilterFilms(func(f Film) bool {
		for _, a := range f.Actors {
			if strings.EqualFold(a, actor) {
				return true
			}
		}
		return false
	})
}

// Search returns the matching films for any field; for titles the distinct
// films of the matching projections.
func (self *Billboard) Search(field SearchField, query string) []Film {
	switch field {
	case BY_GENRE:
		return self.SearchByGenre(query)
	case BY_DIRECTOR:
		return self.SearchByDirector(query)
	case BY_ACTOR:
		return self.SearchByActor(query)
	default:
		seen := map[string]bool{}
		films := []Film{}
		for _, p := range self.SearchByTitle(query) {
			if !seen[p.Film.Title] {
				seen[p.Film.Title] = true
				films = append(films, p.Film)
			}
		}
		return films
	}
}

func (self *Billboard) _FilterFilms(match func(Film) bool) []Film {
	result := []Film{}
	for _, f := range self.Films {
		if match(f) {
			result = append(result, f)
		}
	}
	return result
}

// EarliestProjection returns the first projection of the exact title that
// starts at or after the given time.
func (self *Billboard) EarliestProjection(title string, after time.Time) (Projection, error) {
	for _, p := range self.Projections {
		if strings.EqualFold(p.Film.Title, title) && !p.Start.Before(after) {
			return p, nil
		}
	}
	return Projection{}, fmt.Errorf("%w: %q after %s", ErrNoProjection, title, after.Format("15:04"))
}
