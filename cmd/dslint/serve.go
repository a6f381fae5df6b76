package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	engineopts "github.com/phyten/dslint/internal/engine/opts"
	"github.com/phyten/dslint/internal/logging"
	"github.com/phyten/dslint/internal/web"
)

const shutdownTimeout = 5 * time.Second

// openBrowser はテストで差し替えます。
var openBrowser = browser.OpenURL

func newServeCmd(a *app) *cobra.Command {
	var (
		port    int
		host    string
		repo    string
		open    bool
		maxBody int64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and the JSON lint API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port < 0 || port > 65535 {
				return fmt.Errorf("invalid port: %d", port)
			}
			log := logging.L()
			defaults := engineopts.Defaults(repo)
			defaults.Logger = log
			if err := engineopts.NormalizeAndValidate(&defaults); err != nil {
				return err
			}
			handler := web.New(defaults, web.WithLogger(log), web.WithMaxBodyBytes(maxBody)).Handler()

			ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
			if err != nil {
				return err
			}
			url := "http://" + ln.Addr().String() + "/"
			abs, _ := filepath.Abs(repo)
			log.Info("dslint serve listening", zap.String("url", url), zap.String("repo", abs))
			fmt.Fprintf(a.stderr, "dslint serve listening on %s\n", url)
			if open {
				if err := openBrowser(url); err != nil {
					log.Warn("could not open browser", zap.Error(err))
				}
			}
			return serve(cmd.Context(), ln, handler)
		},
	}
	fs := cmd.Flags()
	fs.IntVarP(&port, "port", "p", 8080, "port to listen on (0 picks a free port)")
	fs.StringVar(&host, "host", "127.0.0.1", "address to bind")
	fs.StringVar(&repo, "repo", ".", "root directory for /api/scan")
	fs.BoolVar(&open, "open", false, "open the UI in the default browser")
	fs.Int64Var(&maxBody, "max-body-bytes", engineopts.DefaultMaxFileBytes, "largest accepted /api/lint request body")
	return cmd
}

// serve は ctx が取り消されるまで ln で待ち受け、取り消し後は処理中のリクエストを待って停止します。
func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}
