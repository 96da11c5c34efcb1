// Package export renders a trip into downloadable documents: plain text, CSV,
// JSON, a standalone HTML page, and a print-oriented HTML page for saving as
// PDF. All renderers are pure functions of the trip and the export time.
package export

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Format names an export serialization.
type Format string

const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatText, FormatCSV, FormatJSON, FormatHTML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("export.ParseFormat: %w: export format %q not supported", domain.ErrValidation, s)
}

// Document is a rendered export ready to be served as a download.
type Document struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Summary is the counter block appended to JSON exports.
type Summary struct {
	TotalDays           int `json:"totalDays"`
	TotalActivities     int `json:"totalActivities"`
	CompletedActivities int `json:"completedActivities"`
}

// Summarize counts the days and activities of trip.
func Summarize(trip domain.Trip) Summary {
	return Summary{
		TotalDays:           len(trip.Days),
		TotalActivities:     trip.TotalActivities(),
		CompletedActivities: trip.CompletedActivities(),
	}
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName derives the download name: every non-alphanumeric character of the
// trip name becomes "_", the result is lowercased and suffixed with
// "_itinerary". The print format is served as HTML.
func FileName(tripName string, f Format) string {
	ext := string(f)
	if f == FormatPDF {
		ext = "html"
	}
	return strings.ToLower(unsafeName.ReplaceAllString(tripName, "_")) + "_itinerary." + ext
}

// Render produces the document for trip in format f. now is the export time.
func Render(f Format, trip domain.Trip, now time.Time) (Document, error) {
	if len(trip.Days) == 0 {
		return Document{}, fmt.Errorf("export.Render: %w: trip has no days", domain.ErrValidation)
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	switch f {
	case FormatText:
		body, contentType = renderText(trip), "text/plain; charset=utf-8"
	case FormatCSV:
		body, err = renderCSV(trip)
		contentType = "text/csv; charset=utf-8"
	case FormatJSON:
		body, err = renderJSON(trip, now)
		contentType = "application/json"
	case FormatHTML:
		body, err = renderHTML(pageTmpl, trip, now)
		contentType = "text/html; charset=utf-8"
	case FormatPDF:
		body, err = renderHTML(printTmpl, trip, now)
		contentType = "text/html; charset=utf-8"
	default:
		return Document{}, fmt.Errorf("export.Render: %w: export format %q not supported", domain.ErrValidation, f)
	}
	if err != nil {
		return Document{}, fmt.Errorf("export.Render: %s: %w", f, err)
	}

	return Document{FileName: FileName(trip.Name, f), ContentType: contentType, Body: body}, nil
}

// ---- date and number formatting -------------------------------------------

func shortDate(t time.Time) string { return t.Format("1/2/2006") }
func longDate(t time.Time) string  { return t.Format("January 2, 2006") }
func fullDate(t time.Time) string  { return t.Format("Monday, January 2, 2006") }
func dayDate(t time.Time) string   { return t.Format("Monday, January 2") }

// hours renders a duration the way a number prints in the browser: no
// trailing zeros.
func hours(h float64) string { return strconv.FormatFloat(h, 'f', -1, 64) }

// ---- txt -------------------------------------------------------------------

var upper = cases.Upper(language.Und)

func renderText(trip domain.Trip) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", upper.String(trip.Name))
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", utf8.RuneCountInString(trip.Name)))
	fmt.Fprintf(&b, "Start Date: %s\n", shortDate(trip.StartDate))
	fmt.Fprintf(&b, "Duration: %d days\n\n", len(trip.Days))

	for _, day := range trip.Days {
		fmt.Fprintf(&b, "DAY %d - %s\n", day.DayNumber, fullDate(day.Date))
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 50))

		if len(day.Activities) == 0 {
			b.WriteString("No activities planned\n\n")
		}
		for _, a := range day.Activities {
			mark := "○"
			if a.Completed {
				mark = "✓"
			}
			fmt.Fprintf(&b, "%s %s\n", mark, a.Title)
			if a.Time != "" {
				fmt.Fprintf(&b, "   Time: %s\n", a.Time)
			}
			if a.Duration != 0 {
				fmt.Fprintf(&b, "   Duration: %s hours\n", hours(a.Duration))
			}
			if a.Location != "" {
				fmt.Fprintf(&b, "   Location: %s\n", a.Location)
			}
			if a.Description != "" {
				fmt.Fprintf(&b, "   Notes: %s\n", a.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// ---- csv -------------------------------------------------------------------

// csvHeaders defines the column names written as the first row of every CSV export.
var csvHeaders = []string{
	"Day", "Date", "Activity", "Time", "Duration (hours)", "Location", "Description", "Completed",
}

func renderCSV(trip domain.Trip) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeaders); err != nil {
		return nil, err
	}
	for _, day := range trip.Days {
		dayNum, date := strconv.Itoa(day.DayNumber), shortDate(day.Date)
		if len(day.Activities) == 0 {
			if err := w.Write([]string{dayNum, date, "No activities planned", "", "", "", "", "false"}); err != nil {
				return nil, err
			}
			continue
		}
		for _, a := range day.Activities {
			duration := ""
			if a.Duration != 0 {
				duration = hours(a.Duration)
			}
			rec := []string{dayNum, date, a.Title, a.Time, duration, a.Location, a.Description, strconv.FormatBool(a.Completed)}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ---- json ------------------------------------------------------------------

// Exported is the JSON export document: the trip's own fields plus the
// export time and a summary.
type Exported struct {
	domain.Trip
	ExportedAt time.Time `json:"exportedAt"`
	Summary    Summary   `json:"summary"`
}

func renderJSON(trip domain.Trip, now time.Time) ([]byte, error) {
	return json.MarshalIndent(Exported{Trip: trip, ExportedAt: now.UTC(), Summary: Summarize(trip)}, "", "  ")
}

// ParseJSON reads a JSON export back into an Exported document. Besides this
// package's own output it accepts files written by the browser version of the
// planner, whose dates may be plain "2006-01-02" days and whose ids are not
// UUIDs. Such ids come back as uuid.Nil so the importer assigns fresh ones.
func ParseJSON(data []byte) (Exported, error) {
	var in importedDoc
	if err := json.Unmarshal(data, &in); err != nil {
		return Exported{}, fmt.Errorf("export.ParseJSON: %w: invalid itinerary file: %v", domain.ErrValidation, err)
	}
	return in.exported(), nil
}

type importedDoc struct {
	ID         looseID       `json:"id"`
	Name       string        `json:"name"`
	StartDate  looseTime     `json:"startDate"`
	Days       []importedDay `json:"days"`
	CreatedAt  looseTime     `json:"createdAt"`
	UpdatedAt  looseTime     `json:"updatedAt"`
	ExportedAt looseTime     `json:"exportedAt"`
	Summary    Summary       `json:"summary"`
}

type importedDay struct {
	ID         looseID            `json:"id"`
	DayNumber  int                `json:"dayNumber"`
	Date       looseTime          `json:"date"`
	Activities []importedActivity `json:"activities"`
}

type importedActivity struct {
	ID          looseID   `json:"id"`
	Title       string    `json:"title"`
	Time        string    `json:"time"`
	Duration    float64   `json:"duration"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Completed   bool      `json:"completed"`
	CreatedAt   looseTime `json:"createdAt"`
	UpdatedAt   looseTime `json:"updatedAt"`
}

func (in importedDoc) exported() Exported {
	trip := domain.Trip{
		ID:        uuid.UUID(in.ID),
		Name:      in.Name,
		StartDate: time.Time(in.StartDate),
		CreatedAt: time.Time(in.CreatedAt),
		UpdatedAt: time.Time(in.UpdatedAt),
	}
	if in.Days != nil {
		trip.Days = make([]domain.Day, len(in.Days))
	}
	for i, d := range in.Days {
		day := domain.Day{
			ID:        uuid.UUID(d.ID),
			DayNumber: d.DayNumber,
			Date:      time.Time(d.Date),
		}
		if d.Activities != nil {
			day.Activities = make([]domain.Activity, len(d.Activities))
		}
		for j, a := range d.Activities {
			day.Activities[j] = domain.Activity{
				ID:          uuid.UUID(a.ID),
				Title:       a.Title,
				Time:        a.Time,
				Duration:    a.Duration,
				Description: a.Description,
				Location:    a.Location,
				Completed:   a.Completed,
				CreatedAt:   time.Time(a.CreatedAt),
				UpdatedAt:   time.Time(a.UpdatedAt),
			}
		}
		trip.Days[i] = day
	}
	return Exported{Trip: trip, ExportedAt: time.Time(in.ExportedAt), Summary: in.Summary}
}

// looseTime decodes an RFC 3339 timestamp or a bare "2006-01-02" date (as UTC
// midnight). null and "" decode to the zero time.
type looseTime time.Time

func (t *looseTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if v, err := time.Parse(layout, s); err == nil {
			*t = looseTime(v)
			return nil
		}
	}
	return fmt.Errorf("unrecognised date %q", s)
}

// looseID keeps a UUID and maps any other id to uuid.Nil.
type looseID uuid.UUID

func (id *looseID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*id = looseID(uuid.Nil)
		return nil
	}
	v, err := uuid.Parse(s)
	if err != nil {
		v = uuid.Nil
	}
	*id = looseID(v)
	return nil
}

// ---- html ------------------------------------------------------------------

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"shortDate": shortDate,
	"longDate":  longDate,
	"fullDate":  fullDate,
	"dayDate":   dayDate,
	"hours":     hours,
}

var (
	pageTmpl  = template.Must(template.New("page.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/page.html.tmpl"))
	printTmpl = template.Must(template.New("print.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/print.html.tmpl"))
)

type htmlData struct {
	Trip    domain.Trip
	Summary Summary
	Now     time.Time
}

func renderHTML(t *template.Template, trip domain.Trip, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, htmlData{Trip: trip, Summary: Summarize(trip), Now: now}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
