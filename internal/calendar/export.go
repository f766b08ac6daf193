package calendar

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Exporter writes birthday events as an iCalendar feed.
type Exporter struct {
	Clock book.Clock

	// FormatSummary lets the shell inject localized event titles.
	FormatSummary func(name string, age int) string
}

// ReminderTrigger returns the ISO 8601 duration for an alarm the given number
// of days before the event. Zero means "at the start of the day".
func ReminderTrigger(days int) string {
	return fmt.Sprintf(config.ReminderTriggerFormat, days)
}

// Export writes one VEVENT per record birthday for the previous, current and
// next year. An empty trigger disables alarms. It returns the number of events.
func (e *Exporter) Export(w io.Writer, records []*book.Record, reminderTrigger string) (int, error) {
	now := e.Clock.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, r := range records {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		for _, ev := range e.events(r, bday, reminderTrigger, now) {
			ev.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, ev.Component)
		}
	}

	log := slog.With(config.LogKeyComponent, config.CompCalendar)

	if len(cal.Children) == 0 {
		if _, err := io.WriteString(w, config.StubVCalendar); err != nil {
			return 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
		}
		log.Info(config.MsgExported, config.LogKeyEvents, 0)
		return 0, nil
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Info(config.MsgExported, config.LogKeyEvents, len(cal.Children))
	return len(cal.Children), nil
}

// events builds the yearly occurrences around now, never before the year of birth.
func (e *Exporter) events(r *book.Record, bday book.Birthday, reminderTrigger string, now time.Time) []*ical.Event {
	uidBase := eventUIDBase(r.UID(), bday)
	loc := now.Location()

	var events []*ical.Event
	for y := now.Year() - config.ExportYearsAroundNow; y <= now.Year()+config.ExportYearsAroundNow; y++ {
		if y < bday.Year() {
			continue
		}
		age := y - bday.Year()

		summary := e.summary(r.Name(), age)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, bday.Month(), bday.Day(), 0, 0, 0, 0, loc))
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}
		events = append(events, event)
	}
	return events
}

func (e *Exporter) summary(name string, age int) string {
	if e.FormatSummary != nil {
		return e.FormatSummary(name, age)
	}
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// eventUIDBase derives a stable identifier from the record UID, so events
// keep their identity across exports while the birthday stays the same.
func eventUIDBase(recordUID string, bday book.Birthday) string {
	input := fmt.Sprintf(config.FormatHashInput, recordUID, bday.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the value directly so the encoder does not add VALUE=TEXT.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
