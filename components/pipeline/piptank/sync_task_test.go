package piptank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codeking/oilfox-hub/components/core"
	"github.com/codeking/oilfox-hub/components/oilfox"
	"github.com/codeking/oilfox-hub/components/status"
	"github.com/codeking/oilfox-hub/components/storage/stcore"
	"github.com/codeking/oilfox-hub/components/storage/stsink"
	"github.com/codeking/oilfox-hub/components/tank"
)

type testVendorAPI struct {
	server *httptest.Server

	loginBody   string
	loginCode   int
	summaryBody string

	loginCount   atomic.Int32
	summaryCount atomic.Int32
	gotAuth      atomic.Value
}

func newTestVendorAPI(t *testing.T) *testVendorAPI {
	t.Helper()

	api := &testVendorAPI{
		loginBody: `{"access_token": "token-1"}`,
		loginCode: http.StatusOK,
		summaryBody: `{
			"devices": [{
				"id": "dev-1",
				"hwid": "HW-1",
				"tank": {"volume": 1000, "height": 120},
				"lastMetering": {
					"value": 5,
					"currentOilHeight": 80,
					"liters": 600,
					"fillingPercentage": 60,
					"battery": 90
				}
			}]
		}`,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/v4/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		api.loginCount.Add(1)

		w.WriteHeader(api.loginCode)

		_, err := w.Write([]byte(api.loginBody))
		require.Nil(t, err)
	})

	mux.HandleFunc("/v4/summary", func(w http.ResponseWriter, r *http.Request) {
		api.summaryCount.Add(1)
		api.gotAuth.Store(r.Header.Get("Authorization"))

		_, err := w.Write([]byte(api.summaryBody))
		require.Nil(t, err)
	})

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)

	return api
}

type testSyncEnv struct {
	pipeline *SyncPipeline
	sink     *stsink.Sink
	store    *stsink.TokenStore
	health   *status.Holder
}

func newTestSyncEnv(t *testing.T, baseURL string) *testSyncEnv {
	t.Helper()

	db, err := stcore.NewBboltDB(filepath.Join(t.TempDir(), "test.db"), nil)
	require.Nil(t, err)
	t.Cleanup(func() { require.Nil(t, db.Close()) })

	sink, err := stsink.NewSink(
		stcore.NewBboltDBBucket(db, "groups"),
		stcore.NewBboltDBBucket(db, "values"),
		stcore.NewBboltDBBucket(db, "profiles"),
	)
	require.Nil(t, err)

	store := stsink.NewTokenStore(stcore.NewBboltDBBucket(db, "token"))

	health := status.NewHolder()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	closer := &core.FanoutCloser{}

	pipeline := NewSyncPipeline(ctx, closer, sink, store, health, nil,
		SyncPipelineParams{
			Credentials: oilfox.Credentials{
				Email:    "user@example.com",
				Password: "secret",
			},
			Generation:     oilfox.SchemaGen2,
			BaseURL:        baseURL,
			UpdateInterval: time.Hour,
			FetchTimeout:   time.Second * 5,
			ParentScope:    "oilfox",
		})

	return &testSyncEnv{
		pipeline: pipeline,
		sink:     sink,
		store:    store,
		health:   health,
	}
}

func TestSyncTaskRunOnce(t *testing.T) {
	api := newTestVendorAPI(t)
	env := newTestSyncEnv(t, api.server.URL)

	require.Nil(t, env.pipeline.RunOnce())
	require.Equal(t, status.CodeActive, env.health.Get())

	require.Equal(t, int32(1), api.loginCount.Load())
	require.Equal(t, int32(1), api.summaryCount.Load())
	require.Equal(t, "Bearer token-1", api.gotAuth.Load())

	token, err := env.store.GetToken()
	require.Nil(t, err)
	require.Equal(t, "token-1", token)

	groups, err := env.sink.Groups()
	require.Nil(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "dev-1", groups[0].ExternalID)
	require.Equal(t, "HW-1", groups[0].Label)
	require.Equal(t, "oilfox", groups[0].ParentScope)

	values, err := env.sink.Values(groups[0].Handle)
	require.Nil(t, err)
	require.Len(t, values, 8)

	require.Equal(t, tank.FieldName, values[0].Name)
	require.Equal(t, "HW-1", values[0].Value)
	require.Equal(t, tank.FieldVolume, values[1].Name)
	require.Equal(t, 1000.0, values[1].Value)
	require.Equal(t, tank.FieldTankHeight, values[2].Name)
	require.Equal(t, int64(120), values[2].Value)
	require.Equal(t, tank.FieldEmptyHeight, values[3].Name)
	require.Equal(t, int64(5), values[3].Value)
	require.Equal(t, tank.FieldFillingHeight, values[4].Name)
	require.Equal(t, int64(80), values[4].Value)
	require.Equal(t, tank.FieldCurrentLevelLiters, values[5].Name)
	require.Equal(t, 600.0, values[5].Value)
	require.Equal(t, tank.FieldCurrentLevelPercent, values[6].Name)
	require.Equal(t, int64(60), values[6].Value)
	require.Equal(t, tank.FieldBattery, values[7].Name)
	require.Equal(t, int64(90), values[7].Value)
}

func TestSyncTaskRunOnceIdempotent(t *testing.T) {
	api := newTestVendorAPI(t)
	env := newTestSyncEnv(t, api.server.URL)

	require.Nil(t, env.pipeline.RunOnce())
	require.Nil(t, env.pipeline.RunOnce())

	// Every cycle re-authenticates.
	require.Equal(t, int32(2), api.loginCount.Load())

	groups, err := env.sink.Groups()
	require.Nil(t, err)
	require.Len(t, groups, 1)

	values, err := env.sink.Values(groups[0].Handle)
	require.Nil(t, err)
	require.Len(t, values, 8)
}

func TestSyncTaskRunOnceAuthFailure(t *testing.T) {
	api := newTestVendorAPI(t)
	api.loginCode = http.StatusUnauthorized
	api.loginBody = `{}`

	env := newTestSyncEnv(t, api.server.URL)

	err := env.pipeline.RunOnce()
	require.True(t, errors.Is(err, status.StatusAuthError))
	require.Equal(t, status.CodeInvalidCredentials, env.health.Get())

	// The cycle was aborted before the summary fetch.
	require.Equal(t, int32(0), api.summaryCount.Load())

	_, err = env.store.GetToken()
	require.True(t, errors.Is(err, status.StatusNoData))

	groups, err := env.sink.Groups()
	require.Nil(t, err)
	require.Empty(t, groups)
}

func TestSyncTaskRunOnceConnectivityFailure(t *testing.T) {
	api := newTestVendorAPI(t)
	api.server.Close()

	env := newTestSyncEnv(t, api.server.URL)

	err := env.pipeline.RunOnce()
	require.True(t, errors.Is(err, status.StatusConnectivityError))
	require.Equal(t, status.CodeError, env.health.Get())
}

func TestSyncTaskRunOnceMalformedSummary(t *testing.T) {
	api := newTestVendorAPI(t)
	api.summaryBody = `{}`

	env := newTestSyncEnv(t, api.server.URL)

	err := env.pipeline.RunOnce()
	require.True(t, errors.Is(err, status.StatusFormatError))
	require.Equal(t, status.CodeError, env.health.Get())

	// The device group tree is untouched by the failed cycle.
	groups, err := env.sink.Groups()
	require.Nil(t, err)
	require.Empty(t, groups)
}
