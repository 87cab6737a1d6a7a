package app

import (
	"context"
	"math"
	"sort"
	"time"

	"weighttracker/internal/domain"
)

// BMI thresholds of the WHO "normal" band.
const (
	bmiNormalMin = 18.5
	bmiNormalMax = 25.0
)

// DashboardService assembles the aggregated view of an account's weight
// history and goal progress.
type DashboardService struct {
	weights domain.WeightRepository
}

// NewDashboardService creates a DashboardService backed by the given
// repository.
func NewDashboardService(weights domain.WeightRepository) *DashboardService {
	return &DashboardService{weights: weights}
}

// Row is a single line of the history table. PNL and BMI are absent when
// they cannot be derived. A synthetic starting point has Real=false and no
// EntryID.
type Row struct {
	Day     time.Time
	Kg      float64
	PNL     *float64
	BMI     *float64
	Real    bool
	EntryID *int64
}

// Dashboard is everything the main page needs: the chart series, the history
// rows and the derived goal figures. Pointer fields are nil when the inputs
// to derive them are missing.
type Dashboard struct {
	Labels []string
	Data   []float64
	Rows   []Row

	Current     *float64
	Progress    *float64
	DaysElapsed *int
	NormalMin   *float64
	NormalMax   *float64
}

// ForAccount builds the dashboard for the given account as of now.
func (s *DashboardService) ForAccount(ctx context.Context, acct *domain.Account) (*Dashboard, error) {
	entries, err := s.weights.ListByAccount(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(entries, acct, time.Now().UTC()), nil
}

// BuildDashboard derives the dashboard from an account's entries and goal
// settings. When both a goal start date and a start weight are set, and no
// real entry exists on that date, a synthetic starting point is prepended so
// the chart and the per-row deltas begin at the goal.
func BuildDashboard(entries []domain.WeightEntry, acct *domain.Account, today time.Time) *Dashboard {
	rows := make([]Row, 0, len(entries)+1)
	for _, e := range entries {
		id := e.ID
		rows = append(rows, Row{Day: e.Day, Kg: e.Kg, Real: true, EntryID: &id})
	}

	if acct.GoalStart != nil && acct.StartWeight != nil {
		occupied := false
		for _, e := range entries {
			if sameDay(e.Day, *acct.GoalStart) {
				occupied = true
				break
			}
		}
		if !occupied {
			rows = append(rows, Row{Day: *acct.GoalStart, Kg: *acct.StartWeight})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })

	d := &Dashboard{
		Labels: make([]string, 0, len(rows)),
		Data:   make([]float64, 0, len(rows)),
		Rows:   rows,
	}
	for _, r := range rows {
		d.Labels = append(d.Labels, r.Day.Format(domain.DayFormat))
		d.Data = append(d.Data, r.Kg)
	}

	if len(rows) > 0 {
		current := rows[len(rows)-1].Kg
		d.Current = &current
	}

	if d.Current != nil && acct.StartWeight != nil && acct.TargetWeight != nil {
		fullRange := math.Abs(*acct.StartWeight - *acct.TargetWeight)
		if fullRange == 0 {
			fullRange = 1
		}
		progress := clamp(math.Abs(*acct.StartWeight-*d.Current)/fullRange*100, 0, 100)
		d.Progress = &progress
	}

	if acct.GoalStart != nil {
		days := daysBetween(*acct.GoalStart, today)
		d.DaysElapsed = &days
	}

	if acct.HeightCm != nil && *acct.HeightCm > 0 {
		h := *acct.HeightCm / 100
		h2 := h * h
		for i := range d.Rows {
			bmi := d.Rows[i].Kg / h2
			d.Rows[i].BMI = &bmi
		}
		normalMin := bmiNormalMin * h2
		normalMax := bmiNormalMax * h2
		d.NormalMin = &normalMin
		d.NormalMax = &normalMax
	}

	var prev *float64
	for i := range d.Rows {
		if prev != nil {
			pnl := d.Rows[i].Kg - *prev
			d.Rows[i].PNL = &pnl
		}
		kg := d.Rows[i].Kg
		prev = &kg
	}

	return d
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts whole days from a to b; negative when b precedes a.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
