package piptank

import (
	"errors"
	"fmt"

	"github.com/codeking/oilfox-hub/components/core"
	"github.com/codeking/oilfox-hub/components/metrics"
	"github.com/codeking/oilfox-hub/components/oilfox"
	"github.com/codeking/oilfox-hub/components/status"
	"github.com/codeking/oilfox-hub/components/tank"
)

// SyncTask performs one full synchronization cycle.
//
// The cycle is strictly sequential: ensure token, fetch summary, normalize,
// reconcile. Any stage failure aborts the remainder of the cycle; the next
// scheduled cycle is the retry.
type SyncTask struct {
	session     *oilfox.Session
	client      *oilfox.Client
	gen         oilfox.SchemaGeneration
	reconciler  *tank.Reconciler
	health      status.Handler
	syncMetrics *metrics.SyncMetrics
}

// NewSyncTask is a SyncTask initialization.
//
// Parameters:
//   - session to obtain a fresh bearer token.
//   - client to fetch the summary.
//   - gen - vendor API schema generation.
//   - reconciler to persist mapped records.
//   - health to report the instance health code.
//   - syncMetrics to record cycle outcomes, optional.
func NewSyncTask(
	session *oilfox.Session,
	client *oilfox.Client,
	gen oilfox.SchemaGeneration,
	reconciler *tank.Reconciler,
	health status.Handler,
	syncMetrics *metrics.SyncMetrics,
) *SyncTask {
	return &SyncTask{
		session:     session,
		client:      client,
		gen:         gen,
		reconciler:  reconciler,
		health:      health,
		syncMetrics: syncMetrics,
	}
}

// Run executes a single synchronization cycle.
func (t *SyncTask) Run() error {
	err := t.runCycle()

	t.observe(err)

	return err
}

func (t *SyncTask) runCycle() error {
	// Force a login on every cycle: the token lifecycle stays trivial and a
	// stale persisted token can never poison a cycle.
	token, err := t.session.EnsureToken(true)
	if err != nil {
		return fmt.Errorf("ensuring token failed: %w", err)
	}

	t.health.SetStatus(status.CodeActive)

	body, err := t.client.Get(t.gen.SummaryPath(), token)
	if err != nil {
		return fmt.Errorf("fetching summary failed: %w", err)
	}

	records, err := oilfox.Normalize(body, t.gen)
	if err != nil {
		return fmt.Errorf("normalizing summary failed: %w", err)
	}

	core.Log.Debugf("tank-sync: mapped records: count=%d", len(records))

	if err := t.reconciler.Apply(records); err != nil {
		return fmt.Errorf("reconciling records failed: %w", err)
	}

	if t.syncMetrics != nil {
		t.syncMetrics.ObserveRecords(records)
	}

	return nil
}

func (t *SyncTask) observe(err error) {
	switch {
	case err == nil:
		t.health.SetStatus(status.CodeActive)

	case errors.Is(err, status.StatusAuthError):
		t.health.SetStatus(status.CodeInvalidCredentials)

	default:
		t.health.SetStatus(status.CodeError)
	}

	if t.syncMetrics != nil {
		t.syncMetrics.ObserveCycle(cycleResult(err))
	}
}

func cycleResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, status.StatusAuthError):
		return metrics.ResultAuth
	case errors.Is(err, status.StatusConnectivityError):
		return metrics.ResultConnectivity
	case errors.Is(err, status.StatusFormatError):
		return metrics.ResultFormat
	case errors.Is(err, status.StatusSinkError):
		return metrics.ResultSink
	default:
		return metrics.ResultOther
	}
}
