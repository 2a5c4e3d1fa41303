package availability

import (
	"time"

	"showdan/models"
)

// Resolution is the smallest unit busy ranges are stored with.
const Resolution = time.Second

// DayBounds returns the first and last instant of the calendar day containing t
// in loc. Both bounds are inclusive.
func DayBounds(t time.Time, loc *time.Location) (dayStart, dayEnd time.Time) {
	t = t.In(loc)
	dayStart = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	dayEnd = dayStart.AddDate(0, 0, 1).Add(-Resolution)
	return dayStart, dayEnd
}

// Bounds is a new [Start, End) for an existing range.
type Bounds struct {
	ID    string
	Start time.Time
	End   time.Time
}

// DayPlan is the set of writes that clears one day from an owner's ranges.
type DayPlan struct {
	Delete []string
	Update []Bounds
	Insert []models.BusyTime // IDs are assigned by the caller
}

func (p DayPlan) Deleted() int  { return len(p.Delete) }
func (p DayPlan) Modified() int { return len(p.Update) }
func (p DayPlan) Empty() bool   { return len(p.Delete)+len(p.Update)+len(p.Insert) == 0 }

// Intersects uses the closed day window: a range ending exactly at dayStart
// still touches the day and is cut back to leave a gap.
func Intersects(bt models.BusyTime, dayStart, dayEnd time.Time) bool {
	return !bt.StartAt.After(dayEnd) && !bt.EndAt.Before(dayStart)
}

// PlanDayDeletion classifies each range independently against the day. Ranges
// that do not intersect the day are ignored. A truncation that leaves nothing
// of a range deletes it instead.
func PlanDayDeletion(ranges []models.BusyTime, dayStart, dayEnd time.Time) DayPlan {
	leftEdge := dayStart.Add(-Resolution)
	rightEdge := dayEnd.Add(Resolution)

	var plan DayPlan
	for _, bt := range ranges {
		if !Intersects(bt, dayStart, dayEnd) {
			continue
		}
		startsBefore := bt.StartAt.Before(dayStart)
		endsAfter := bt.EndAt.After(dayEnd)

		switch {
		case !startsBefore && !endsAfter:
			plan.Delete = append(plan.Delete, bt.ID)

		case startsBefore && !endsAfter:
			plan.truncate(bt, bt.StartAt, leftEdge)

		case !startsBefore && endsAfter:
			plan.truncate(bt, rightEdge, bt.EndAt)

		default:
			if bt.EndAt.After(rightEdge) {
				right := bt
				right.ID = ""
				right.StartAt = rightEdge
				plan.Insert = append(plan.Insert, right)
			}
			plan.truncate(bt, bt.StartAt, leftEdge)
		}
	}
	return plan
}

func (p *DayPlan) truncate(bt models.BusyTime, start, end time.Time) {
	if !end.After(start) {
		p.Delete = append(p.Delete, bt.ID)
		return
	}
	p.Update = append(p.Update, Bounds{ID: bt.ID, Start: start, End: end})
}
