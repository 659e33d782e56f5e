package billboard

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ttpr0/go-cityroute/geo"
	. "github.com/ttpr0/go-cityroute/util"
)

// IScheduleSource delivers the current billboard.
type IScheduleSource interface {
	FetchBillboard(ctx context.Context) (*Billboard, error)
}

// _ParseStart accepts RFC 3339 timestamps and "15:04" times on day.
func _ParseStart(s string, day time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("15:04", strings.TrimSpace(s), day.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid projection start %q", s)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

//*******************************************
// json schedule
//*******************************************

type _JSONProjection struct {
	Film     string `json:"film"`
	Cinema   string `json:"cinema"`
	Start    string `json:"start"`
	Language string `json:"language"`
}

type _JSONSchedule struct {
	Films       []Film            `json:"films"`
	Cinemas     []Cinema          `json:"cinemas"`
	Projections []_JSONProjection `json:"projections"`
}

// FileSource reads a schedule from a .json or .csv file. Times given as
// "15:04" refer to the day returned by Today.
type FileSource struct {
	File  string
	Today func() time.Time
}

func NewFileSource(file string) *FileSource {
	return &FileSource{File: file, Today: time.Now}
}

func (self *FileSource) FetchBillboard(ctx context.Context) (*Billboard, error) {
	today := self.Today()
	switch strings.ToLower(filepath.Ext(self.File)) {
	case ".json":
		return self._ReadJSON(today)
	case ".csv":
		return self._ReadCSV(today)
	default:
		return nil, fmt.Errorf("unsupported schedule file %q", self.File)
	}
}

func (self *FileSource) _ReadJSON(today time.Time) (*Billboard, error) {
	raw, err := ReadJSONFromFile[_JSONSchedule](self.File)
	if err != nil {
		return nil, err
	}
	films := NewDict[string, Film](len(raw.Films))
	for _, f := range raw.Films {
		films[f.Title] = f
	}
	cinemas := NewDict[string, Cinema](len(raw.Cinemas))
	for _, c := range raw.Cinemas {
		cinemas[c.Name] = c
	}
	projections := NewList[Projection](len(raw.Projections))
	for _, p := range raw.Projections {
		if !films.ContainsKey(p.Film) {
			return nil, fmt.Errorf("projection of unknown film %q", p.Film)
		}
		if !cinemas.ContainsKey(p.Cinema) {
			return nil, fmt.Errorf("projection in unknown cinema %q", p.Cinema)
		}
		start, err := _ParseStart(p.Start, today)
		if err != nil {
			return nil, err
		}
		projections.Add(Projection{
			Film:     films[p.Film],
			Cinema:   cinemas[p.Cinema],
			Start:    start,
			Language: p.Language,
		})
	}
	return NewBillboard(projections), nil
}

//*******************************************
// csv schedule
//*******************************************

// one row per projection, actors separated by '|'
type _CSVRow struct {
	Title    string  `csv:"title"`
	Genre    string  `csv:"genre"`
	Director string  `csv:"director"`
	Actors   string  `csv:"actors"`
	Cinema   string  `csv:"cinema"`
	Address  string  `csv:"address"`
	Lat      float64 `csv:"lat"`
	Lon      float64 `csv:"lon"`
	Start    string  `csv:"start"`
	Language string  `csv:"language"`
}

func (self *FileSource) _ReadCSV(today time.Time) (*Billboard, error) {
	rows, err := ReadCSVFromFile[_CSVRow](self.File, ';')
	if err != nil {
		return nil, err
	}
	projections := NewList[Projection](100)
	for row := range rows {
		if row.Title == "" || row.Cinema == "" {
			continue
		}
		start, err := _ParseStart(row.Start, today)
		if err != nil {
			return nil, err
		}
		actors := []string{}
		for _, a := range strings.Split(row.Actors, "|") {
			if a = strings.TrimSpace(a); a != "" {
				actors = append(actors, a)
			}
		}
		projections.Add(Projection{
			Film: Film{
				Title:    row.Title,
				Genre:    row.Genre,
				Director: row.Director,
				Actors:   actors,
			},
			Cinema: Cinema{
				Name:    row.Cinema,
				Address: row.Address,
				Loc:     geo.NewCoord(row.Lat, row.Lon),
			},
			Start:    start,
			Language: row.Language,
		})
	}
	return NewBillboard(projections), nil
}
