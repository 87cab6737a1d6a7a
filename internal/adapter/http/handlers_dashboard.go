package adapthttp

import (
	"net/http"

	"weighttracker/internal/domain"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	acct := accountFromContext(r)

	dash, err := s.dashboard.ForAccount(r.Context(), acct)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.render(w, r, "dashboard.html", dash)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	acct := accountFromContext(r)

	goal := domain.Goal{
		HeightCm:     parseFloatField(r, "height_cm"),
		StartWeight:  parseFloatField(r, "start_weight"),
		TargetWeight: parseFloatField(r, "target_weight"),
	}

	dateWarning := false
	if raw := r.PostFormValue("goal_start"); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			// A bad date does not block the other field updates; keep the
			// previously stored goal start.
			goal.GoalStart = acct.GoalStart
			dateWarning = true
		} else {
			goal.GoalStart = &day
		}
	}

	if err := s.accounts.UpdateGoal(r.Context(), acct.ID, goal); err != nil {
		s.internalError(w, r, err)
		return
	}

	if dateWarning {
		setFlash(w, "warning", "Invalid date format")
	} else {
		setFlash(w, "success", "Goals updated")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
