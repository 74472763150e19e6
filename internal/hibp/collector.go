package hibp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/initstring/pwnreport/internal/config"
	"github.com/initstring/pwnreport/internal/model"
	"github.com/initstring/pwnreport/internal/progress"
)

// Collector runs the sequential per-address query loop against the API.
//
// The loop is deliberately single-threaded with a mandatory sleep after
// every request. Rate limiting is state held by the remote server, so
// parallelizing or batching would not speed anything up; it would just get
// the client blocked. Requests are issued in the exact order addresses were
// extracted, which in turn fixes the ordering of the final report.
type Collector struct {
	// client performs the individual API calls.
	client *Client

	// delay is the mandatory sleep after each request.
	delay time.Duration

	// failureThreshold aborts the run once this many unexpected statuses
	// have been seen.
	failureThreshold int

	// sleep suspends the loop. Replaceable so tests can verify the delay
	// contract without waiting for real time to pass.
	sleep func(time.Duration)

	// reporter receives one update per completed request.
	reporter progress.Reporter

	// logger for structured logging.
	logger *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithDelay sets the mandatory inter-request delay.
func WithDelay(delay time.Duration) CollectorOption {
	return func(c *Collector) {
		c.delay = delay
	}
}

// WithFailureThreshold sets how many unexpected HTTP statuses are tolerated
// before the run aborts.
func WithFailureThreshold(threshold int) CollectorOption {
	return func(c *Collector) {
		c.failureThreshold = threshold
	}
}

// WithSleepFunc replaces the sleep implementation. Tests inject a recorder
// here to assert the delay elapses between consecutive requests.
func WithSleepFunc(sleep func(time.Duration)) CollectorOption {
	return func(c *Collector) {
		c.sleep = sleep
	}
}

// WithProgress sets the progress reporter. Defaults to no output.
func WithProgress(reporter progress.Reporter) CollectorOption {
	return func(c *Collector) {
		c.reporter = reporter
	}
}

// WithCollectorLogger sets a custom logger.
func WithCollectorLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) {
		c.logger = logger
	}
}

// NewCollector creates a Collector around the given client.
func NewCollector(client *Client, opts ...CollectorOption) *Collector {
	c := &Collector{
		client:           client,
		delay:            config.DefaultSleep,
		failureThreshold: config.DefaultFailureThreshold,
		sleep:            time.Sleep,
		reporter:         progress.NopReporter{},
		logger:           slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run checks every address in order and returns the raw results.
//
// Response handling:
//   - 200 with a non-empty body: breach data, stored under the address.
//   - 404 (empty body): no breaches, discarded.
//   - anything else: counted as a failure. A transport error (no response
//     at all) counts the same way, since the cause is indistinguishable
//     from edge throttling at this level.
//
// When the failure count reaches the threshold, Run returns
// ErrRateLimitSuspected immediately without issuing further requests;
// results collected so far are discarded by the caller. After every
// completed request that does not abort the run, the configured delay
// elapses before the next one.
func (c *Collector) Run(ctx context.Context, emails []string) (*model.RawResults, error) {
	results := model.NewRawResults()
	failedCount := 0

	c.reporter.SetTotal(len(emails))

	for i, address := range emails {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		res, err := c.client.CheckAccount(ctx, address)
		if err != nil {
			// Context cancellation surfaces as a request error; abort
			// outright rather than counting it as an API failure.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			failedCount++
			c.logger.Warn("request failed",
				"address", address,
				"error", err,
				"failedCount", failedCount,
			)
			c.reporter.Step("error")

			if failedCount >= c.failureThreshold {
				return nil, fmt.Errorf("aborting after %d failed responses: %w",
					failedCount, ErrRateLimitSuspected)
			}
			c.sleep(c.delay)
			continue
		}

		if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNotFound {
			failedCount++
			c.logger.Warn("unexpected HTTP status",
				"address", address,
				"status", res.StatusCode,
				"failedCount", failedCount,
			)

			if failedCount >= c.failureThreshold {
				c.reporter.Step(strconv.Itoa(res.StatusCode))
				return nil, fmt.Errorf("aborting after %d unexpected responses: %w",
					failedCount, ErrRateLimitSuspected)
			}
		}

		// A non-empty body means breaches were found for this address.
		if res.Body != "" {
			results.Set(address, res.Body)
		}

		c.logger.Debug("account checked",
			"address", address,
			"status", res.StatusCode,
			"index", i+1,
			"total", len(emails),
		)
		c.reporter.Step(strconv.Itoa(res.StatusCode))

		// Politeness contract: sleep after every request, success or not.
		c.sleep(c.delay)
	}

	c.reporter.Finish()
	return results, nil
}
