package calendar

import (
	"sort"

	"github.com/yanqian/unievents/internal/domain/event"
)

// WeekEventIndex maps a YYYY-MM-DD key to that day's events in ascending start order.
type WeekEventIndex map[string][]event.Event

// BuildIndex groups fetched events by their own Date field and orders each day by start time.
// Ties keep fetch order. Events dated outside the window are dropped, and events with an
// unparseable start sort after the parseable ones so layout can report them.
func BuildIndex(w Window, grouped map[string][]event.Event) WeekEventIndex {
	index := make(WeekEventIndex, DaysPerWeek)
	for key, fetched := range grouped {
		if !w.Contains(key) {
			continue
		}
		var events []event.Event
		for _, ev := range fetched {
			if ev.Date == key {
				events = append(events, ev)
			}
		}
		if len(events) == 0 {
			continue
		}
		sortByStart(events)
		index[key] = events
	}
	return index
}

// Day returns the ordered events of a date key.
func (idx WeekEventIndex) Day(key string) []event.Event {
	return idx[key]
}

// Count is the number of indexed events across the week.
func (idx WeekEventIndex) Count() int {
	total := 0
	for _, events := range idx {
		total += len(events)
	}
	return total
}

func sortByStart(events []event.Event) {
	type keyed struct {
		start TimeOfDay
		ok    bool
	}
	keys := make(map[string]keyed, len(events))
	keyFor := func(ev event.Event) keyed {
		if k, ok := keys[ev.StartTime]; ok {
			return k
		}
		start, err := ParseTimeOfDay(ev.StartTime)
		k := keyed{start: start, ok: err == nil}
		keys[ev.StartTime] = k
		return k
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := keyFor(events[i]), keyFor(events[j])
		if a.ok != b.ok {
			return a.ok
		}
		return a.start < b.start
	})
}
