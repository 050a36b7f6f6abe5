package calendar

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/borgmon/jumpin/pkg/models"
	"github.com/emersion/go-ical"
)

const productID = "-//JumpIn//Meeting Invite//EN"

// ShareTimeLayout is how ShareText prints the start time
const ShareTimeLayout = "Mon Jan 2 2006 15:04 MST"

// ShareText is the plain-text invitation copied from a meeting card
func ShareText(m models.Meeting, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("Join my meeting \"%s\"\nWhen: %s\nLink: %s",
		m.Title, m.StartTime.In(loc).Format(ShareTimeLayout), m.Link)
}

// EncodeInvite renders m as an iCalendar file with a single event
func EncodeInvite(m models.Meeting, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, m.ID)
	event.Props.SetText(ical.PropSummary, m.Title)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, m.StartTime.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, m.EndTime.UTC())

	if m.Link != "" {
		if u, err := url.Parse(m.Link); err == nil {
			event.Props.SetURI(ical.PropURL, u)
		}
		event.Props.SetText(ical.PropLocation, m.Link)
	}

	description := strings.TrimSpace(m.Description)
	if description == "" {
		description = fmt.Sprintf("%s meeting", m.Platform)
	}
	if m.Link != "" {
		description += "\n\nJoin: " + m.Link
	}
	event.Props.SetText(ical.PropDescription, description)

	for _, name := range m.Participants {
		attendee := ical.NewProp(ical.PropAttendee)
		attendee.Params.Set(ical.ParamCommonName, name)
		if strings.Contains(name, "@") {
			attendee.Value = "mailto:" + name
		} else {
			attendee.Value = "invalid:nomail"
		}
		event.Props.Add(attendee)
	}

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode invite: %w", err)
	}
	return buf.Bytes(), nil
}

// InviteFilename is a file name for m's .ics export
func InviteFilename(m models.Meeting) string {
	var b strings.Builder
	for _, r := range strings.ToLower(m.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "meeting"
	}
	return name + ".ics"
}
