package calendar

import (
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// windowsToIANA maps the Windows zone names Outlook puts in TZID
var windowsToIANA = map[string]string{
	"Pacific Standard Time":        "America/Los_Angeles",
	"Mountain Standard Time":       "America/Denver",
	"Central Standard Time":        "America/Chicago",
	"Eastern Standard Time":        "America/New_York",
	"Atlantic Standard Time":       "America/Halifax",
	"Alaskan Standard Time":        "America/Anchorage",
	"Hawaiian Standard Time":       "Pacific/Honolulu",
	"GMT Standard Time":            "Europe/London",
	"Central Europe Standard Time": "Europe/Paris",
	"China Standard Time":          "Asia/Shanghai",
	"Tokyo Standard Time":          "Asia/Tokyo",
	"India Standard Time":          "Asia/Kolkata",
	"AUS Eastern Standard Time":    "Australia/Sydney",
}

// normalizeComponentTimezones rewrites Windows TZIDs (as sent by Outlook invites) to IANA names
func normalizeComponentTimezones(comp *ical.Component) {
	for _, name := range []string{ical.PropDateTimeStart, ical.PropDateTimeEnd} {
		prop := comp.Props.Get(name)
		if prop == nil {
			continue
		}
		if ianaName, ok := windowsToIANA[prop.Params.Get(ical.ParamTimezoneID)]; ok {
			prop.Params.Set(ical.ParamTimezoneID, ianaName)
		}
	}
}

// timezoneOf picks the zone DTSTART is read in, falling back to loc for floating times
func timezoneOf(comp *ical.Component, loc *time.Location) *time.Location {
	dtstart := comp.Props.Get(ical.PropDateTimeStart)
	if dtstart == nil {
		return loc
	}
	if strings.HasSuffix(dtstart.Value, "Z") {
		return time.UTC
	}
	if tzid := dtstart.Params.Get(ical.ParamTimezoneID); tzid != "" {
		if ianaName, ok := windowsToIANA[tzid]; ok {
			tzid = ianaName
		}
		if zone, err := time.LoadLocation(tzid); err == nil {
			return zone
		}
	}
	return loc
}
