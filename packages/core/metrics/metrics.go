package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "leaderboard"

// Metrics counts score-accounting activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	PlayersCreated     prometheus.Counter
	ScoreChanges       prometheus.Counter
	PointsAwarded      prometheus.Counter
	GameSubmissions    prometheus.Counter
	PlacementErrors    prometheus.Counter
	LedgerDriftPlayers prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PlayersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_created_total",
			Help:      "Players created explicitly or by game submissions.",
		}),
		ScoreChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_changes_total",
			Help:      "Score history entries written.",
		}),
		PointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Sum of positive deltas applied.",
		}),
		GameSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "game_submissions_total",
			Help:      "Batch game results processed.",
		}),
		PlacementErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_errors_total",
			Help:      "Placements skipped during game submissions.",
		}),
		LedgerDriftPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_drift_players",
			Help:      "Players whose total disagrees with their history at the last audit.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.PlayersCreated,
			m.ScoreChanges,
			m.PointsAwarded,
			m.GameSubmissions,
			m.PlacementErrors,
			m.LedgerDriftPlayers,
		)
	}
	return m
}

func (m *Metrics) PlayerCreated() {
	if m == nil {
		return
	}
	m.PlayersCreated.Inc()
}

func (m *Metrics) ScoreApplied(delta int64) {
	if m == nil {
		return
	}
	m.ScoreChanges.Inc()
	if delta > 0 {
		m.PointsAwarded.Add(float64(delta))
	}
}

func (m *Metrics) GameSubmitted(skipped int) {
	if m == nil {
		return
	}
	m.GameSubmissions.Inc()
	m.PlacementErrors.Add(float64(skipped))
}

func (m *Metrics) LedgerAudited(drifting int) {
	if m == nil {
		return
	}
	m.LedgerDriftPlayers.Set(float64(drifting))
}
