package appointment

import (
	"sort"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

// SortedView splits an owner's appointments around "now" based on the slot
// start time: upcoming ascending, history descending.
type SortedView struct {
	Upcoming []models.Appointment `json:"upcoming"`
	History  []models.Appointment `json:"history"`
}

// Partition builds a SortedView. Appointments whose slot reference did not
// resolve are excluded from both halves rather than failing the view.
func Partition(appointments []models.Appointment, now time.Time) SortedView {
	view := SortedView{
		Upcoming: []models.Appointment{},
		History:  []models.Appointment{},
	}

	for _, ap := range appointments {
		if ap.Schedule == nil {
			continue
		}
		if ap.Schedule.StartTime.After(now) {
			view.Upcoming = append(view.Upcoming, ap)
		} else {
			view.History = append(view.History, ap)
		}
	}

	sort.Slice(view.Upcoming, func(i, j int) bool {
		return view.Upcoming[i].Schedule.StartTime.Before(view.Upcoming[j].Schedule.StartTime)
	})
	sort.Slice(view.History, func(i, j int) bool {
		return view.History[i].Schedule.StartTime.After(view.History[j].Schedule.StartTime)
	})

	return view
}
