package availability

import (
	"testing"
	"time"

	"showdan/models"
)

var day = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

func span(id string, start, end time.Time) models.BusyTime {
	return models.BusyTime{ID: id, OwnerID: "u1", StartAt: start, EndAt: end, IsAllDay: true, Note: id}
}

func TestDayBounds(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*3600)
	start, end := DayBounds(time.Date(2026, 5, 10, 22, 30, 0, 0, time.UTC), nairobi)
	if want := time.Date(2026, 5, 11, 0, 0, 0, 0, nairobi); !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
	if want := time.Date(2026, 5, 11, 23, 59, 59, 0, nairobi); !end.Equal(want) {
		t.Fatalf("end = %v, want %v", end, want)
	}
}

func TestPlanDayDeletion(t *testing.T) {
	dayStart, dayEnd := DayBounds(day, time.UTC)
	leftEdge := dayStart.Add(-time.Second)
	rightEdge := dayEnd.Add(time.Second)

	tests := []struct {
		name       string
		in         models.BusyTime
		wantDelete bool
		wantUpdate *Bounds
		wantInsert *Bounds
	}{
		{
			name:       "contained",
			in:         span("a", day.Add(9*time.Hour), day.Add(17*time.Hour)),
			wantDelete: true,
		},
		{
			name:       "whole day exactly",
			in:         span("b", dayStart, dayEnd),
			wantDelete: true,
		},
		{
			name:       "starts before ends inside",
			in:         span("c", day.Add(-5*time.Hour), day.Add(3*time.Hour)),
			wantUpdate: &Bounds{ID: "c", Start: day.Add(-5 * time.Hour), End: leftEdge},
		},
		{
			name:       "starts inside ends after",
			in:         span("d", day.Add(20*time.Hour), day.Add(30*time.Hour)),
			wantUpdate: &Bounds{ID: "d", Start: rightEdge, End: day.Add(30 * time.Hour)},
		},
		{
			name:       "spans the day",
			in:         span("e", day.AddDate(0, 0, -2), day.AddDate(0, 0, 2)),
			wantUpdate: &Bounds{ID: "e", Start: day.AddDate(0, 0, -2), End: leftEdge},
			wantInsert: &Bounds{Start: rightEdge, End: day.AddDate(0, 0, 2)},
		},
		{
			name:       "ends exactly at day start",
			in:         span("f", day.Add(-2*time.Hour), dayStart),
			wantUpdate: &Bounds{ID: "f", Start: day.Add(-2 * time.Hour), End: leftEdge},
		},
		{
			name:       "truncation leaves nothing",
			in:         span("g", leftEdge, day.Add(time.Hour)),
			wantDelete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanDayDeletion([]models.BusyTime{tt.in}, dayStart, dayEnd)

			if tt.wantDelete != (len(plan.Delete) == 1) {
				t.Fatalf("delete = %v, want %v", plan.Delete, tt.wantDelete)
			}
			if tt.wantUpdate == nil && len(plan.Update) != 0 {
				t.Fatalf("unexpected update %+v", plan.Update)
			}
			if tt.wantUpdate != nil {
				if len(plan.Update) != 1 || plan.Update[0] != *tt.wantUpdate {
					t.Fatalf("update = %+v, want %+v", plan.Update, *tt.wantUpdate)
				}
			}
			if tt.wantInsert == nil && len(plan.Insert) != 0 {
				t.Fatalf("unexpected insert %+v", plan.Insert)
			}
			if tt.wantInsert != nil {
				if len(plan.Insert) != 1 {
					t.Fatalf("insert = %+v", plan.Insert)
				}
				got := plan.Insert[0]
				if !got.StartAt.Equal(tt.wantInsert.Start) || !got.EndAt.Equal(tt.wantInsert.End) || got.Note != tt.in.Note || got.ID != "" {
					t.Fatalf("insert = %+v, want %+v", got, *tt.wantInsert)
				}
			}
		})
	}
}

func TestPlanIgnoresOtherDays(t *testing.T) {
	dayStart, dayEnd := DayBounds(day, time.UTC)
	ranges := []models.BusyTime{
		span("before", day.Add(-48*time.Hour), day.Add(-2*time.Second)),
		span("after", day.Add(24*time.Hour), day.Add(30*time.Hour)),
	}
	if plan := PlanDayDeletion(ranges, dayStart, dayEnd); !plan.Empty() {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}
