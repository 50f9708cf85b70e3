package export

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"
	"agrocalc-be/pkg/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRendersAllDayEvents(t *testing.T) {
	events := []schedule.Event{
		{
			Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Descriptions: []string{"Root Juice - 20 ml", "Bio Grow - 40 ml"},
		},
		{
			Date:         time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			Descriptions: []string{"Root Juice - 20 ml"},
		},
	}

	out := string(Calendar(events, CalendarOptions{
		EventName: "Feeding, 100 L reservoir",
		EventURL:  "https://example.com",
	}))

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240101")
	// 24h event: DTEND is the following day.
	assert.Contains(t, out, "DTEND;VALUE=DATE:20240102")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240108")
	// Shared-date doses are one event with a joined description; the comma in
	// the summary is escaped.
	assert.Contains(t, out, "Root Juice - 20 ml\\nBio Grow - 40 ml")
	assert.Contains(t, out, "SUMMARY:Feeding\\, 100 L reservoir")
	assert.Contains(t, out, "URL:https://example.com")
}

func TestCalendarFoldsLongLines(t *testing.T) {
	events := []schedule.Event{{
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Descriptions: []string{strings.Repeat("Very Long Product Name - 10 ml ", 8)},
	}}

	out := string(Calendar(events, CalendarOptions{EventName: "Feeding"}))
	for _, line := range strings.Split(out, "\r\n") {
		assert.LessOrEqual(t, len(line), 75)
	}
}

func TestCalendarFoldsOnRuneBoundaries(t *testing.T) {
	events := []schedule.Event{{
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Descriptions: []string{strings.Repeat("Корневой стимулятор - 20 мл ", 6)},
	}}

	out := string(Calendar(events, CalendarOptions{EventName: "Подкормка растений"}))
	for _, line := range strings.Split(out, "\r\n") {
		assert.LessOrEqual(t, len(line), 75)
		assert.True(t, utf8.ValidString(line), "fold split a rune: %q", line)
	}

	// Unfolding restores the content byte for byte.
	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	assert.Contains(t, unfolded, "SUMMARY:Подкормка растений")
	assert.Contains(t, unfolded, "Корневой стимулятор - 20 мл")
}

func TestSpreadsheetGrid(t *testing.T) {
	products := []*entity.Product{
		{
			Name:      "Bio Grow",
			BrandName: "BioBizz",
			Phases: []entity.Phase{
				{Name: constant.PhaseStart, Weeks: "1", Formula: "v/2"},
				{Name: constant.PhaseVegetativeFirst, Weeks: "2", Formula: "v*2"},
			},
		},
		{
			Name:      "Broken",
			BrandName: "BioBizz",
			Phases: []entity.Phase{
				{Name: constant.PhaseStart, Weeks: "1", Formula: "v/0"},
			},
		},
	}

	out, err := Spreadsheet(products, 100)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], ",")
	require.Len(t, header, len(constant.PhaseOrder)+1)

	first := strings.Split(lines[1], ",")
	assert.Equal(t, "BioBizz - Bio Grow", first[0])
	assert.Equal(t, "50", first[1])
	assert.Equal(t, "200", first[2])
	// Absent phases render as dashes.
	assert.Equal(t, "-", first[3])

	// An unevaluable formula dashes its own cell only.
	second := strings.Split(lines[2], ",")
	assert.Equal(t, "-", second[1])
}
