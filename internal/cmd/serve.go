package cmd

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/server"
	"github.com/MeKo-Tech/colorblend/internal/sheet"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve color mixes and mode swatches over HTTP",
	Long: `Serve the blend engine over HTTP.

Endpoints:
  GET /healthz
  GET /modes
  GET /mix?src=RRGGBB&dst=RRGGBB&mode=multiply[&op=src-atop][&gamma=srgb]
  GET /swatches/{mode}.png
  GET /status`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("archive", "", "Swatch archive to serve (optional)")
	serveCmd.Flags().Bool("generate-missing", true, "Render swatches missing from the archive on demand")
	serveCmd.Flags().Int("max-concurrent-renders", runtime.NumCPU(), "Max concurrent swatch renders (default: number of CPUs)")
	serveCmd.Flags().Duration("render-timeout", 30*time.Second, "Timeout per swatch render")
	serveCmd.Flags().String("cache-control", "no-store", "Cache-Control header for served swatches")
	serveCmd.Flags().Int("swatch-size", sheet.DefaultSize, "Size of swatches rendered on demand")
	serveCmd.Flags().String("gamma", "linear", "Gamma curve for swatches rendered on demand")

	bindFlags(serveCmd, []flagBinding{
		{"serve.addr", "addr"},
		{"serve.archive", "archive"},
		{"serve.generate_missing", "generate-missing"},
		{"serve.max_concurrent_renders", "max-concurrent-renders"},
		{"serve.render_timeout", "render-timeout"},
		{"serve.cache_control", "cache-control"},
		{"serve.swatch_size", "swatch-size"},
		{"serve.gamma", "gamma"},
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	curve, err := gamma.ParseCurve(viper.GetString("serve.gamma"))
	if err != nil {
		return err
	}

	cfg := server.Config{
		ArchivePath:          viper.GetString("serve.archive"),
		SwatchSize:           viper.GetInt("serve.swatch_size"),
		Gamma:                curve,
		GenerateMissing:      viper.GetBool("serve.generate_missing"),
		MaxConcurrentRenders: viper.GetInt("serve.max_concurrent_renders"),
		RenderTimeout:        viper.GetDuration("serve.render_timeout"),
		CacheControl:         viper.GetString("serve.cache_control"),
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to init server: %w", err)
	}
	defer srv.Close()

	logger.Info("colorblend server listening",
		"addr", addr,
		"archive", cfg.ArchivePath,
		"generate_missing", cfg.GenerateMissing,
		"max_concurrent_renders", cfg.MaxConcurrentRenders,
	)

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}
	return httpSrv.ListenAndServe()
}
