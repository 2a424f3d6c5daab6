package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/ib-77/fluentrop/pkg/rop"
	"github.com/ib-77/fluentrop/pkg/rop/async"
	"github.com/ib-77/fluentrop/pkg/rop/httpx"
	"github.com/ib-77/fluentrop/pkg/rop/roplog"
)

var addrFlag = cli.StringFlag{
	Name:    "addr",
	Usage:   "listen address of the HTTP server",
	Value:   ":8080",
	EnvVars: []string{"ROPCHECK_ADDR"},
}

var Serve = cli.Command{
	Action: serve,
	Name:   "serve",
	Usage:  "serves POST /signup and answers with the validation result",
	Flags: []cli.Flag{
		&addrFlag,
	},
}

func serve(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              c.String(addrFlag.Name),
		Handler:           newHandler(logger, c.Duration(timeoutFlag.Name)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func newHandler(logger zerolog.Logger, timeout time.Duration) http.Handler {
	writer := httpx.Writer{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", func(w http.ResponseWriter, req *http.Request) {
		ctx := logger.WithContext(req.Context())

		// the body must not be read once the handler has returned
		decoded := decodeSignup(req.Body)
		r := rop.Bind(decoded, func(s Signup) rop.ResultOf[Signup] {
			return async.Await(ctx, async.RunWithTimeout(ctx, timeout, func(ctx context.Context) rop.ResultOf[Signup] {
				return checkSignupAsync(ctx, s)
			}))
		})

		roplog.LogOf(ctx, r, "signup")
		httpx.Write(writer, w, r)
	})
	return mux
}
