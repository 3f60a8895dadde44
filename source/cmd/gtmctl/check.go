package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/apicheck"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a running API against the expected portfolio data",
	RunE:  runCheck,
}

var checkArgs struct {
	baseURL string
	timeout time.Duration
	expect  apicheck.Expectations
}

func init() {
	defaults := apicheck.DefaultExpectations()
	flags := checkCmd.Flags()

	flags.StringVar(&checkArgs.baseURL, "base-url", "http://localhost:8001", "Base URL of the API under test")
	flags.DurationVar(&checkArgs.timeout, "timeout", 10*time.Second, "Per-request timeout")
	flags.Int64Var(&checkArgs.expect.TotalCaseStudies, "expect-total", defaults.TotalCaseStudies, "Expected number of case studies")
	flags.Int64Var(&checkArgs.expect.StartupStudies, "expect-startups", defaults.StartupStudies, "Expected number of startup case studies")
	flags.Int64Var(&checkArgs.expect.MNCStudies, "expect-mncs", defaults.MNCStudies, "Expected number of MNC case studies")
	flags.Float64Var(&checkArgs.expect.MinSuccessRate, "min-success-rate", defaults.MinSuccessRate, "Lowest acceptable success rate")
	flags.Float64Var(&checkArgs.expect.MinRevenueMillions, "min-revenue", defaults.MinRevenueMillions, "Lowest acceptable total revenue impact, in $M")
	flags.Float64Var(&checkArgs.expect.MinLTVCAC, "min-ltv-cac", defaults.MinLTVCAC, "Lowest acceptable LTV:CAC ratio")
	flags.Float64Var(&checkArgs.expect.MaxLTVCAC, "max-ltv-cac", defaults.MaxLTVCAC, "Highest acceptable LTV:CAC ratio")
	flags.StringVar(&checkArgs.expect.FrameworkName, "framework", defaults.FrameworkName, "Framework name fragment that must be present")
	flags.DurationVar(&checkArgs.expect.MaxResponseTime, "max-response-time", defaults.MaxResponseTime, "Response time threshold")
}

func runCheck(cmd *cobra.Command, argv []string) error {
	client := &http.Client{Timeout: checkArgs.timeout}
	checker := apicheck.New(checkArgs.baseURL, client, checkArgs.expect)

	fmt.Fprintf(cmd.OutOrStdout(), "Checking GTM Strategy Portfolio API at %s\n\n", checkArgs.baseURL)
	report := checker.Run(cmd.Context())
	report.Write(cmd.OutOrStdout())

	if !report.OK() {
		return fmt.Errorf("%d of %d checks failed", len(report.Failed()), len(report.Results))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All checks passed!")
	return nil
}
