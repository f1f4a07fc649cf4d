package streak

import (
	"testing"
	"time"
)

func entry(completed bool) *Entry {
	return &Entry{Completed: completed}
}

func TestApplyToggle(t *testing.T) {
	tests := []struct {
		name      string
		before    Counters
		today     *Entry
		yesterday *Entry
		completed bool
		want      Counters
	}{
		{
			name:      "first completion with no history starts a streak",
			before:    Counters{Current: 0, Best: 0},
			completed: true,
			want:      Counters{Current: 1, Best: 1},
		},
		{
			name:      "completed yesterday extends the streak",
			before:    Counters{Current: 5, Best: 5},
			yesterday: entry(true),
			completed: true,
			want:      Counters{Current: 6, Best: 6},
		},
		{
			name:      "missed yesterday restarts at one and keeps best",
			before:    Counters{Current: 6, Best: 6},
			yesterday: entry(false),
			completed: true,
			want:      Counters{Current: 1, Best: 6},
		},
		{
			name:      "no log yesterday restarts a stale streak",
			before:    Counters{Current: 4, Best: 9},
			completed: true,
			want:      Counters{Current: 1, Best: 9},
		},
		{
			name:      "undo today's completion decrements",
			before:    Counters{Current: 3, Best: 3},
			today:     entry(true),
			completed: false,
			want:      Counters{Current: 2, Best: 3},
		},
		{
			name:      "redo after undo increments",
			before:    Counters{Current: 2, Best: 3},
			today:     entry(false),
			completed: true,
			want:      Counters{Current: 3, Best: 3},
		},
		{
			name:      "undo never goes below zero",
			before:    Counters{Current: 0, Best: 2},
			today:     entry(true),
			completed: false,
			want:      Counters{Current: 0, Best: 2},
		},
		{
			name:      "not completed on a fresh day is a no-op",
			before:    Counters{Current: 4, Best: 7},
			yesterday: entry(true),
			completed: false,
			want:      Counters{Current: 4, Best: 7},
		},
		{
			name:      "repeating the same completed value changes nothing",
			before:    Counters{Current: 4, Best: 4},
			today:     entry(true),
			completed: true,
			want:      Counters{Current: 4, Best: 4},
		},
		{
			name:      "yesterday is ignored once today has a log",
			before:    Counters{Current: 4, Best: 4},
			today:     entry(false),
			yesterday: entry(false),
			completed: true,
			want:      Counters{Current: 5, Best: 5},
		},
		{
			name:      "increment past best raises best",
			before:    Counters{Current: 7, Best: 7},
			yesterday: entry(true),
			completed: true,
			want:      Counters{Current: 8, Best: 8},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ApplyToggle(test.before, test.today, test.yesterday, test.completed)
			if got != test.want {
				t.Errorf("ApplyToggle() = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestApplyToggle_Invariants(t *testing.T) {
	logStates := []*Entry{nil, entry(false), entry(true)}

	for current := 0; current <= 4; current++ {
		for best := current; best <= 6; best++ {
			for _, today := range logStates {
				for _, yesterday := range logStates {
					for _, completed := range []bool{false, true} {
						before := Counters{Current: current, Best: best}
						got := ApplyToggle(before, today, yesterday, completed)

						if got.Current < 0 {
							t.Fatalf("current streak negative: before=%+v got=%+v", before, got)
						}
						if got.Best < got.Current {
							t.Fatalf("best below current: before=%+v got=%+v", before, got)
						}
						if got.Best < before.Best {
							t.Fatalf("best decreased: before=%+v got=%+v", before, got)
						}
					}
				}
			}
		}
	}
}

func TestApplyToggle_RepeatedToggleIsIdempotent(t *testing.T) {
	for _, completed := range []bool{false, true} {
		first := ApplyToggle(Counters{Current: 3, Best: 5}, nil, entry(true), completed)
		// the first call stored today's log with the requested value
		second := ApplyToggle(first, entry(completed), entry(true), completed)
		if second != first {
			t.Errorf("completed=%v: second toggle changed counters %+v -> %+v", completed, first, second)
		}
	}
}

func TestRecompute(t *testing.T) {
	today := time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local)
	day := func(offset int, completed bool) Day {
		return Day{Date: today.AddDate(0, 0, offset), Completed: completed}
	}

	tests := []struct {
		name string
		days []Day
		want Counters
	}{
		{
			name: "no history",
			want: Counters{},
		},
		{
			name: "run ending today",
			days: []Day{day(-2, true), day(-1, true), day(0, true)},
			want: Counters{Current: 3, Best: 3},
		},
		{
			name: "run ending yesterday still counts",
			days: []Day{day(-3, true), day(-2, true), day(-1, true)},
			want: Counters{Current: 3, Best: 3},
		},
		{
			name: "gap before today breaks the current run",
			days: []Day{day(-5, true), day(-4, true), day(-3, true), day(-2, false)},
			want: Counters{Current: 0, Best: 3},
		},
		{
			name: "best taken from an older longer run",
			days: []Day{
				day(-10, true), day(-9, true), day(-8, true), day(-7, true),
				day(-1, true), day(0, true),
			},
			want: Counters{Current: 2, Best: 4},
		},
		{
			name: "unsorted input",
			days: []Day{day(0, true), day(-2, true), day(-1, true)},
			want: Counters{Current: 3, Best: 3},
		},
		{
			name: "not completed today falls back to yesterday",
			days: []Day{day(-1, true), day(0, false)},
			want: Counters{Current: 1, Best: 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Recompute(test.days, today)
			if got != test.want {
				t.Errorf("Recompute() = %+v, want %+v", got, test.want)
			}
		})
	}
}
