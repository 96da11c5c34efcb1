package itinerary

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// TimeLayout is the wall-clock format of Activity.Time.
const TimeLayout = "15:04"

// ActivityInput holds the editable fields of an activity, as shown in the
// add/edit form.
type ActivityInput struct {
	Title       string  `json:"title"`
	Time        string  `json:"time"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
}

// normalize trims the text fields, defaults the duration and validates.
func (in ActivityInput) normalize(op string) (ActivityInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Time = strings.TrimSpace(in.Time)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return in, fmt.Errorf("itinerary.%s: %w: activity title is required", op, domain.ErrValidation)
	}
	if in.Time != "" {
		if _, err := time.Parse(TimeLayout, in.Time); err != nil {
			return in, fmt.Errorf("itinerary.%s: %w: time must be HH:MM", op, domain.ErrValidation)
		}
	}
	if math.IsInf(in.Duration, 0) {
		return in, fmt.Errorf("itinerary.%s: %w: duration must be a finite number of hours", op, domain.ErrValidation)
	}
	if math.IsNaN(in.Duration) || in.Duration <= 0 {
		in.Duration = domain.DefaultActivityDuration
	}
	return in, nil
}

func (p *Planner) activityIndex(op string, dayID, activityID uuid.UUID) (int, int, error) {
	di, err := p.dayIndex(op, dayID)
	if err != nil {
		return 0, 0, err
	}
	ai := slices.IndexFunc(p.trip.Days[di].Activities, func(a domain.Activity) bool { return a.ID == activityID })
	if ai < 0 {
		return 0, 0, fmt.Errorf("itinerary.%s: %w: activity %s", op, domain.ErrNotFound, activityID)
	}
	return di, ai, nil
}

// Draft returns the form values for adding (activityID nil) or editing an
// activity. A new activity starts blank with the default duration.
func (p *Planner) Draft(dayID uuid.UUID, activityID *uuid.UUID) (ActivityInput, error) {
	if activityID == nil {
		if _, err := p.dayIndex("Draft", dayID); err != nil {
			return ActivityInput{}, err
		}
		return ActivityInput{Duration: domain.DefaultActivityDuration}, nil
	}

	di, ai, err := p.activityIndex("Draft", dayID, *activityID)
	if err != nil {
		return ActivityInput{}, err
	}
	a := p.trip.Days[di].Activities[ai]
	in := ActivityInput{
		Title:       a.Title,
		Time:        a.Time,
		Duration:    a.Duration,
		Description: a.Description,
		Location:    a.Location,
	}
	if in.Duration <= 0 {
		in.Duration = domain.DefaultActivityDuration
	}
	return in, nil
}

// SaveActivity appends a new activity to the day when activityID is nil, or
// edits the identified one in place. Edits keep the id, creation time and
// completion state.
func (p *Planner) SaveActivity(dayID uuid.UUID, activityID *uuid.UUID, in ActivityInput) (domain.Activity, error) {
	in, err := in.normalize("SaveActivity")
	if err != nil {
		return domain.Activity{}, err
	}
	now := p.stamp()

	if activityID != nil {
		di, ai, err := p.activityIndex("SaveActivity", dayID, *activityID)
		if err != nil {
			return domain.Activity{}, err
		}
		a := &p.trip.Days[di].Activities[ai]
		a.Title = in.Title
		a.Time = in.Time
		a.Duration = in.Duration
		a.Description = in.Description
		a.Location = in.Location
		a.UpdatedAt = now
		p.trip.UpdatedAt = now
		return *a, nil
	}

	di, err := p.dayIndex("SaveActivity", dayID)
	if err != nil {
		return domain.Activity{}, err
	}
	day := &p.trip.Days[di]
	if len(day.Activities) >= domain.MaxActivitiesPerDay {
		return domain.Activity{}, fmt.Errorf("itinerary.SaveActivity: %w: maximum %d activities per day", domain.ErrPolicy, domain.MaxActivitiesPerDay)
	}

	a := domain.Activity{
		ID:          p.newID(),
		Title:       in.Title,
		Time:        in.Time,
		Duration:    in.Duration,
		Description: in.Description,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	day.Activities = append(day.Activities, a)
	p.trip.UpdatedAt = now
	return a, nil
}

// RemoveActivity deletes an activity from its day.
func (p *Planner) RemoveActivity(dayID, activityID uuid.UUID) error {
	di, ai, err := p.activityIndex("RemoveActivity", dayID, activityID)
	if err != nil {
		return err
	}
	p.trip.Days[di].Activities = slices.Delete(p.trip.Days[di].Activities, ai, ai+1)
	p.trip.UpdatedAt = p.stamp()
	return nil
}

// ToggleActivity flips the completion flag of an activity.
func (p *Planner) ToggleActivity(dayID, activityID uuid.UUID) (domain.Activity, error) {
	di, ai, err := p.activityIndex("ToggleActivity", dayID, activityID)
	if err != nil {
		return domain.Activity{}, err
	}
	now := p.stamp()
	a := &p.trip.Days[di].Activities[ai]
	a.Completed = !a.Completed
	a.UpdatedAt = now
	p.trip.UpdatedAt = now
	return *a, nil
}
