package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.etcd.io/bbolt"

	"github.com/codeking/oilfox-hub/components/core"
	"github.com/codeking/oilfox-hub/components/http/htcore"
	"github.com/codeking/oilfox-hub/components/metrics"
	"github.com/codeking/oilfox-hub/components/oilfox"
	"github.com/codeking/oilfox-hub/components/pipeline/piphttp"
	"github.com/codeking/oilfox-hub/components/pipeline/piptank"
	"github.com/codeking/oilfox-hub/components/status"
	"github.com/codeking/oilfox-hub/components/storage/stcore"
	"github.com/codeking/oilfox-hub/components/storage/stsink"
	"github.com/codeking/oilfox-hub/components/system/syssched"
)

var rootCmd = &cobra.Command{
	Use:   "oilfox-hub",
	Short: "Synchronize OilFox tank telemetry into a persistent named-value store",

	RunE: func(_ *cobra.Command, _ []string) error {
		return doSync()
	},

	PreRunE: func(_ *cobra.Command, _ []string) error {
		return checkRequiredSettings("account.email", "account.password")
	},
}

func init() {
	flags := rootCmd.Flags()

	flags.String("email", "", "vendor account email address")
	flags.String("password", "", "vendor account password")
	flags.Int("interval", 60, "synchronization interval in minutes")
	flags.Int("schema", int(oilfox.SchemaGen2), "vendor API schema generation (1 or 2)")
	flags.String("base-url", "", "vendor API base URL override")
	flags.String("db-path", "oilfox-hub.db", "database file path, empty disables persistence")
	flags.String("parent-scope", "oilfox", "sink scope for created device groups")
	flags.String("http-host", "", "HTTP API host")
	flags.Int("http-port", 8080, "HTTP API port")
	flags.String("log-level", "info", "logging level")
	flags.String("log-file", "", "log file path, stderr if empty")

	errPanic(viper.BindPFlag("account.email", flags.Lookup("email")))
	errPanic(viper.BindPFlag("account.password", flags.Lookup("password")))
	errPanic(viper.BindPFlag("sync.interval", flags.Lookup("interval")))
	errPanic(viper.BindPFlag("sync.schema", flags.Lookup("schema")))
	errPanic(viper.BindPFlag("api.base-url", flags.Lookup("base-url")))
	errPanic(viper.BindPFlag("storage.db-path", flags.Lookup("db-path")))
	errPanic(viper.BindPFlag("sink.parent-scope", flags.Lookup("parent-scope")))
	errPanic(viper.BindPFlag("http.host", flags.Lookup("http-host")))
	errPanic(viper.BindPFlag("http.port", flags.Lookup("http-port")))
	errPanic(viper.BindPFlag("logging.level", flags.Lookup("log-level")))
	errPanic(viper.BindPFlag("logging.location", flags.Lookup("log-file")))

	viper.SetEnvPrefix("OILFOX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func errPanic(err error) {
	if err != nil {
		panic(err)
	}
}

func checkRequiredSettings(keys ...string) error {
	var missing []string

	for _, key := range keys {
		if viper.GetString(key) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required config not set: %s", strings.Join(missing, ", "))
	}

	return nil
}

// newBucketFactory prepares the persistence layer.
//
// Remarks:
//   - An empty dbPath disables persistence: all buckets become non-operational
//     and the state doesn't survive a restart.
func newBucketFactory(
	closer *core.FanoutCloser,
	dbPath string,
) (func(bucket string) stcore.DB, error) {
	if dbPath == "" {
		core.Log.Warnf("main: persistence disabled: state won't survive restarts")

		return func(string) stcore.DB { return &stcore.NoopDB{} }, nil
	}

	db, err := stcore.NewBboltDB(dbPath, &bbolt.Options{
		Timeout: time.Second * 5,
	})
	if err != nil {
		return nil, err
	}
	closer.Add("bbolt-database", core.FuncCloser(db.Close))

	return func(bucket string) stcore.DB { return stcore.NewBboltDBBucket(db, bucket) }, nil
}

func doSync() error {
	if err := core.SetLogLevel(viper.GetString("logging.level")); err != nil {
		return err
	}
	if location := viper.GetString("logging.location"); location != "" {
		if err := core.SetLogFile(location); err != nil {
			return err
		}
	}

	gen := oilfox.SchemaGeneration(viper.GetInt("sync.schema"))
	if !gen.Valid() {
		return fmt.Errorf("unsupported schema generation: %d: %w",
			viper.GetInt("sync.schema"), status.StatusInvalidState)
	}

	appContext, cancelFunc := signal.NotifyContext(context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancelFunc()

	fanoutCloser := &core.FanoutCloser{}
	defer func() {
		if err := fanoutCloser.Close(); err != nil {
			core.Log.Errorf("main: failed to close resources: %v", err)
		}
	}()

	newBucket, err := newBucketFactory(fanoutCloser, viper.GetString("storage.db-path"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	valueSink, err := stsink.NewSink(
		newBucket("groups"),
		newBucket("values"),
		newBucket("profiles"),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize value sink: %w", err)
	}

	tokenStore := stsink.NewTokenStore(newBucket("token"))

	healthHolder := status.NewHolder()

	syncMetrics := metrics.NewSyncMetrics(prometheus.DefaultRegisterer)

	serverPipeline, err := piphttp.NewServerPipeline(fanoutCloser, htcore.ServerParams{
		Host: viper.GetString("http.host"),
		Port: viper.GetInt("http.port"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	mux := serverPipeline.GetServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/health", piphttp.NewHealthHandler(healthHolder))
	mux.Handle("/tanks", piphttp.NewTankHandler(valueSink))
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		htcore.WriteText(w, "oilfox-hub")
	})

	syncPipeline := piptank.NewSyncPipeline(
		appContext,
		fanoutCloser,
		valueSink,
		tokenStore,
		healthHolder,
		syncMetrics,
		piptank.SyncPipelineParams{
			Credentials: oilfox.Credentials{
				Email:    viper.GetString("account.email"),
				Password: viper.GetString("account.password"),
			},
			Generation:     gen,
			BaseURL:        viper.GetString("api.base-url"),
			UpdateInterval: time.Duration(viper.GetInt("sync.interval")) * time.Minute,
			FetchTimeout:   oilfox.DefaultTimeout,
			ParentScope:    viper.GetString("sink.parent-scope"),
		},
	)

	starters := []syssched.Starter{serverPipeline, syncPipeline}
	for _, starter := range starters {
		starter.Start()
	}

	<-appContext.Done()

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		core.Log.Errorf("main: %v", err)
		os.Exit(1)
	}
}
