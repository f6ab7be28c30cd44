/*
monitor.go - Background over-allocation monitor

PURPOSE:
  Periodically scans every team's capacity for the quarters in progress and
  logs teams committed past 100%. The same scan backs the /api/alerts
  endpoint so dashboards and the background check agree.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Scans quarters whose date range contains today
  - Logs each over-allocated team; results also served on demand

CONFIGURATION:
  - CheckInterval: How often to scan (default: 1 hour)
  - Enabled: Whether the monitor is active (default: true)

USAGE:
  monitor := api.NewCapacityMonitor(store)
  monitor.Start()
  // ... later
  monitor.Stop()

SEE ALSO:
  - handlers.go: GetAlerts endpoint (on-demand scan)
  - allocation/capacity.go: CalculateTeamCapacity
*/
package api

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/warp/planning-engine/allocation"
	"github.com/warp/planning-engine/planning"
)

// CapacityAlert flags one team committed past 100% for a quarter.
type CapacityAlert struct {
	TeamID    string  `json:"team_id"`
	TeamName  string  `json:"team_name"`
	QuarterID string  `json:"quarter_id"`
	Allocated float64 `json:"allocated"`
}

// ScanOverAllocations checks every team against every quarter currently in
// progress and returns the over-allocated combinations.
func ScanOverAllocations(ctx context.Context, store planning.EntityStore) ([]CapacityAlert, error) {
	snap, err := store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := planning.Today()
	alerts := []CapacityAlert{}
	for _, quarter := range planning.Quarters(snap.Cycles) {
		rng := planning.DateRange{Start: quarter.StartDate, End: quarter.EndDate}
		if !rng.Contains(today) {
			continue
		}
		for _, team := range snap.Teams {
			check := allocation.CalculateTeamCapacity(
				team, allocation.QuarterPeriod(quarter.ID), snap.Allocations, snap.Cycles, snap.Epics)
			if check.IsOverAllocated {
				alerts = append(alerts, CapacityAlert{
					TeamID:    string(team.ID),
					TeamName:  team.Name,
					QuarterID: string(quarter.ID),
					Allocated: check.Allocated,
				})
			}
		}
	}
	return alerts, nil
}

// GetAlerts returns the current over-allocation alerts.
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := ScanOverAllocations(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to scan capacity", err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// =============================================================================
// BACKGROUND MONITOR
// =============================================================================

// CapacityMonitor runs the over-allocation scan on a schedule.
type CapacityMonitor struct {
	Store         planning.EntityStore
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCapacityMonitor creates a new monitor with the default interval.
func NewCapacityMonitor(store planning.EntityStore) *CapacityMonitor {
	return &CapacityMonitor{
		Store:         store,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the background scan loop.
func (m *CapacityMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Enabled || m.ticker != nil {
		return
	}

	m.ticker = time.NewTicker(m.CheckInterval)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		// Scan once at startup, then on each tick.
		m.runScan()
		for {
			select {
			case <-m.ticker.C:
				m.runScan()
			case <-m.stop:
				return
			}
		}
	}()
	log.Printf("Capacity monitor started (interval: %v)", m.CheckInterval)
}

// Stop halts the scan loop and waits for it to finish.
func (m *CapacityMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	close(m.stop)
	m.wg.Wait()
	m.ticker = nil
	log.Println("Capacity monitor stopped")
}

func (m *CapacityMonitor) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alerts, err := ScanOverAllocations(ctx, m.Store)
	if err != nil {
		log.Printf("Capacity scan failed: %v", err)
		return
	}
	for _, a := range alerts {
		log.Printf("Over-allocation: team %s (%s) at %.0f%% for %s",
			a.TeamName, a.TeamID, a.Allocated, a.QuarterID)
	}
}
