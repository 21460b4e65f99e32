package piptank

import (
	"context"
	"time"

	"github.com/codeking/oilfox-hub/components/core"
	"github.com/codeking/oilfox-hub/components/http/htclient"
	"github.com/codeking/oilfox-hub/components/metrics"
	"github.com/codeking/oilfox-hub/components/oilfox"
	"github.com/codeking/oilfox-hub/components/status"
	"github.com/codeking/oilfox-hub/components/system/syssched"
	"github.com/codeking/oilfox-hub/components/tank"
)

// SyncPipeline periodically synchronizes tank telemetry into the value sink.
type SyncPipeline struct {
	task   *SyncTask
	runner *syssched.AsyncTaskRunner
}

// SyncPipelineParams provides various configuration options for SyncPipeline.
type SyncPipelineParams struct {
	// Credentials of the vendor account.
	Credentials oilfox.Credentials

	// Generation - vendor API schema generation.
	Generation oilfox.SchemaGeneration

	// BaseURL overrides the production API endpoint, empty for the default.
	BaseURL string

	// UpdateInterval - how often to run a synchronization cycle.
	UpdateInterval time.Duration

	// FetchTimeout - how long to wait for a single API response.
	FetchTimeout time.Duration

	// ParentScope is the sink scope under which device groups are created.
	ParentScope string
}

// NewSyncPipeline initializes all components of the synchronization flow.
//
// Parameters:
//   - ctx - parent context.
//   - closer to register all resources that should be closed.
//   - valueSink to persist device groups and named values.
//   - tokenStore to persist the session token.
//   - health to report the instance health code.
//   - syncMetrics to record cycle outcomes, optional.
//   - params - various pipeline parameters.
func NewSyncPipeline(
	ctx context.Context,
	closer *core.FanoutCloser,
	valueSink tank.ValueSink,
	tokenStore tank.TokenStore,
	health status.Handler,
	syncMetrics *metrics.SyncMetrics,
	params SyncPipelineParams,
) *SyncPipeline {
	client := oilfox.NewClient(ctx, htclient.NewDefaultClient(), oilfox.ClientParams{
		BaseURL:    params.BaseURL,
		Generation: params.Generation,
		Timeout:    params.FetchTimeout,
	})

	session := oilfox.NewSession(client, params.Credentials, tokenStore)

	reconciler := tank.NewReconciler(valueSink, params.ParentScope)

	task := NewSyncTask(session, client, params.Generation, reconciler, health, syncMetrics)

	runner := syssched.NewAsyncTaskRunner(
		ctx,
		task,
		&logErrorHandler{email: params.Credentials.Email},
		params.UpdateInterval,
	)
	closer.Add("tank-sync-runner", runner)

	return &SyncPipeline{
		task:   task,
		runner: runner,
	}
}

// Start begins periodic synchronization.
func (p *SyncPipeline) Start() {
	p.runner.Start()
}

// RunOnce performs a single synchronization cycle synchronously.
func (p *SyncPipeline) RunOnce() error {
	return p.task.Run()
}
