/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
)

var logger = log.New("healthcheck")

const (
	statusSuccess = "success"
	statusFailure = "failure"
	checkOK       = "ok"

	defaultTimeout = 5 * time.Second
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Check pings a single backing service.
type Check func(ctx context.Context) error

type Config struct {
	Version string
	// Checks are keyed by the name reported in the response.
	Checks  map[string]Check
	Timeout time.Duration
	Clock   clock.Clock
}

// Controller for health check and version API.
type Controller struct {
	version string
	checker health.Checker
	clock   clock.Clock
}

// HealthCheckResponse is the body of GET /healthcheck.
type HealthCheckResponse struct {
	Status      string            `json:"status"`
	CurrentTime time.Time         `json:"current_time"`
	Checks      map[string]string `json:"checks,omitempty"`
}

type versionResponse struct {
	Version string `json:"version"`
}

func NewController(router router, config *Config) *Controller {
	timeout := lo.Ternary(config.Timeout > 0, config.Timeout, defaultTimeout)

	c := &Controller{
		version: config.Version,
		clock:   config.Clock,
	}

	if c.clock == nil {
		c.clock = clock.New()
	}

	opts := []health.CheckerOption{
		health.WithDisabledCache(),
		health.WithTimeout(timeout),
		health.WithInterceptors(logFailures),
	}

	names := lo.Keys(config.Checks)
	slices.Sort(names)

	for _, name := range names {
		opts = append(opts, health.WithCheck(health.Check{
			Name:    name,
			Timeout: timeout,
			Check:   config.Checks[name],
		}))
	}

	c.checker = health.NewChecker(opts...)

	router.GET("/healthcheck", echo.WrapHandler(
		health.NewHandler(c.checker, health.WithResultWriter(&resultWriter{clock: c.clock}))))
	router.GET("/version", c.GetVersion)

	return c
}

// Stop stops the underlying checker.
func (c *Controller) Stop() {
	c.checker.Stop()
}

// GetVersion returns the build version.
// GET /version.
func (c *Controller) GetVersion(e echo.Context) error {
	return e.JSON(http.StatusOK, versionResponse{Version: c.version})
}

func logFailures(next health.InterceptorFunc) health.InterceptorFunc {
	return func(ctx context.Context, name string, state health.CheckState) health.CheckState {
		result := next(ctx, name, state)

		if result.Result != nil {
			logger.Warnc(ctx, "Health check failed", logfields.WithHealthCheck(name), log.WithError(result.Result))
		}

		return result
	}
}

// resultWriter renders checker results as HealthCheckResponse.
type resultWriter struct {
	clock clock.Clock
}

func (rw *resultWriter) Write(result *health.CheckerResult, statusCode int, w http.ResponseWriter, _ *http.Request) error {
	resp := &HealthCheckResponse{
		Status:      lo.Ternary(result.Status == health.StatusUp, statusSuccess, statusFailure),
		CurrentTime: rw.clock.Now().UTC(),
	}

	if len(result.Details) > 0 {
		resp.Checks = make(map[string]string, len(result.Details))

		for name, cr := range result.Details {
			switch {
			case cr.Error != nil:
				resp.Checks[name] = cr.Error.Error()
			case cr.Status != health.StatusUp:
				resp.Checks[name] = string(cr.Status)
			default:
				resp.Checks[name] = checkOK
			}
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal health response: %w", err)
	}

	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(statusCode)

	_, err = w.Write(b)

	return err
}
