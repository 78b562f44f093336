package availability

import (
	"fmt"
	"sort"
	"time"

	"syncslot/models"
	"syncslot/utils"
)

var categoryRank = map[string]int{
	models.CategoryBusy:          0,
	models.CategoryPreferredSlot: 1,
}

// AggregateMonth buckets events by the start of their day in loc and emits
// one synthetic all-day event per day and category, carrying the number of
// events of that category starting that day. Days with no events of a
// category produce nothing for it. A nil loc means UTC.
func AggregateMonth(events []models.CalendarEvent, loc *time.Location) []models.CalendarEvent {
	if loc == nil {
		loc = time.UTC
	}

	dayStarts := make(map[string]time.Time)
	counts := make(map[string]map[string]int)
	for _, ev := range events {
		if ev.Start.IsZero() {
			continue
		}
		category := ev.Category
		if category == "" {
			category = models.CategoryOther
		}
		local := ev.Start.In(loc)
		dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		key := dayStart.Format(utils.DateLayout)
		if _, ok := counts[key]; !ok {
			counts[key] = make(map[string]int)
			dayStarts[key] = dayStart
		}
		counts[key][category]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]models.CalendarEvent, 0, len(days)*2)
	for _, day := range days {
		start := dayStarts[day]
		for _, category := range orderedCategories(counts[day]) {
			n := counts[day][category]
			out = append(out, models.CalendarEvent{
				ID:       fmt.Sprintf("summary:%s:%s", day, category),
				Title:    summaryTitle(category, n),
				Start:    start,
				End:      start.AddDate(0, 0, 1),
				Category: category,
				AllDay:   true,
				Count:    n,
				Summary:  true,
			})
		}
	}
	return out
}

func orderedCategories(byCategory map[string]int) []string {
	cats := make([]string, 0, len(byCategory))
	for c, n := range byCategory {
		if n > 0 {
			cats = append(cats, c)
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		ri, iKnown := categoryRank[cats[i]]
		rj, jKnown := categoryRank[cats[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return cats[i] < cats[j]
		}
	})
	return cats
}

func summaryTitle(category string, n int) string {
	switch category {
	case models.CategoryBusy:
		return fmt.Sprintf("%d busy", n)
	case models.CategoryPreferredSlot:
		return fmt.Sprintf("%d preferred", n)
	default:
		return fmt.Sprintf("%d %s", n, category)
	}
}
