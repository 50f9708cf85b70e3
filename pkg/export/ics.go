// Package export renders the computed schedule into shippable artifacts: an
// ICS calendar for the user's calendar app and a CSV dosage table.
package export

import (
	"bytes"
	"strings"
	"time"
	"unicode/utf8"

	"agrocalc-be/pkg/schedule"

	"github.com/google/uuid"
)

const icsDateLayout = "20060102"

// CalendarOptions carries the per-calendar presentation fields. EventName is
// reused for every event; EventURL is optional.
type CalendarOptions struct {
	EventName string
	EventURL  string
}

// Calendar renders the event list as an RFC 5545 calendar. Every event is an
// all-day entry spanning 24 hours, its description the newline-joined dose
// lines of that date.
func Calendar(events []schedule.Event, opts CalendarOptions) []byte {
	var buf bytes.Buffer
	writeICSLine(&buf, "BEGIN:VCALENDAR")
	writeICSLine(&buf, "VERSION:2.0")
	writeICSLine(&buf, "PRODID:-//agrocalc//schedule//EN")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, event := range events {
		writeICSLine(&buf, "BEGIN:VEVENT")
		writeICSLine(&buf, "UID:"+uuid.NewString()+"@agrocalc")
		writeICSLine(&buf, "DTSTAMP:"+stamp)
		writeICSLine(&buf, "DTSTART;VALUE=DATE:"+event.Date.Format(icsDateLayout))
		writeICSLine(&buf, "DTEND;VALUE=DATE:"+event.Date.AddDate(0, 0, 1).Format(icsDateLayout))
		writeICSLine(&buf, "SUMMARY:"+escapeICSText(opts.EventName))
		writeICSLine(&buf, "DESCRIPTION:"+escapeICSText(strings.Join(event.Descriptions, "\n")))
		if opts.EventURL != "" {
			writeICSLine(&buf, "URL:"+opts.EventURL)
		}
		writeICSLine(&buf, "END:VEVENT")
	}

	writeICSLine(&buf, "END:VCALENDAR")
	return buf.Bytes()
}

// writeICSLine terminates with CRLF and folds content longer than 75 octets
// as the RFC requires. Folds may only land on rune boundaries: the catalog
// carries multi-byte product names, and a fold inside a UTF-8 sequence
// produces an invalid file. Continuation lines budget one octet for their
// leading space.
func writeICSLine(buf *bytes.Buffer, line string) {
	limit := 75
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		limit = 74
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

func escapeICSText(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(text)
}
