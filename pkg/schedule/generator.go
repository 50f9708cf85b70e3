// Package schedule turns a selected product set and a reservoir volume into
// a time-ordered list of dosing events starting from the user's cycle start
// date.
package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/pkg/apperr"
	"agrocalc-be/pkg/formula"
)

// Event is one calendar entry: every product dosed on that date contributes
// one description line, in product insertion order.
type Event struct {
	Date         time.Time
	Descriptions []string
}

// Generate walks each product's phases in the global phase order, keeping a
// per-product cursor that starts at startDate and advances by weeks*7 days
// after each present phase. Events sharing a date are merged into one bucket.
//
// An unparseable start date aborts the whole schedule: a partial schedule
// would dose the wrong products, not just miss a date. A phase whose formula
// cannot be evaluated still occupies its slot, rendered with the placeholder
// dash.
func Generate(products []*entity.Product, volume int, startDate string) ([]Event, error) {
	start, err := time.Parse(constant.CycleStartDateLayout, startDate)
	if err != nil {
		return nil, apperr.InvalidStartDate("start date " + strconv.Quote(startDate) + " does not match yyyy-mm-dd")
	}

	buckets := make(map[time.Time][]string)
	var dates []time.Time

	for _, product := range products {
		cursor := start
		for _, phaseName := range constant.PhaseOrder {
			phase := product.PhaseByName(phaseName)
			if phase == nil {
				continue
			}
			if strings.TrimSpace(phase.Formula) == "" {
				continue
			}

			weeks, err := parseWeeks(phase.Weeks)
			if err != nil {
				return nil, apperr.Validation(
					"phase " + phase.Name + " of product " + strconv.Quote(product.Name) +
						" has non-numeric weeks " + strconv.Quote(phase.Weeks))
			}

			if _, seen := buckets[cursor]; !seen {
				dates = append(dates, cursor)
			}
			buckets[cursor] = append(buckets[cursor], describeDose(product, volume, phase.Formula))

			cursor = cursor.AddDate(0, 0, weeks*7)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	events := make([]Event, len(dates))
	for i, date := range dates {
		events[i] = Event{Date: date, Descriptions: buckets[date]}
	}
	return events, nil
}

func describeDose(product *entity.Product, volume int, expr string) string {
	quantity, err := formula.Evaluate(expr, float64(volume))
	if err != nil {
		// Evaluation failures are contained per cell.
		return product.Name + " - - ml"
	}
	return product.Name + " - " + strconv.FormatFloat(quantity, 'f', -1, 64) + " ml"
}

func parseWeeks(raw string) (int, error) {
	weeks, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return weeks, nil
}
