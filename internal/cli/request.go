package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fourteendev/httpman/config"
	"github.com/fourteendev/httpman/http"
	"github.com/fourteendev/httpman/output"
	"github.com/fourteendev/httpman/pkg/jsonpath"
	"github.com/fourteendev/httpman/pkg/jsonschema"
	"github.com/fourteendev/httpman/stats"
)

// requestOptions carries the resolved flags shared by every verb.
type requestOptions struct {
	headers    []string
	body       string
	token      string
	timeout    time.Duration
	verbose    bool
	noColor    bool
	noRetry    bool
	retries    int
	retryDelay time.Duration
	configPath string
	extract    string
	schemaPath string
	showStats  bool
}

// addRequestFlags registers the flags shared by all verbs. Body flags
// are only added where a body makes sense.
func addRequestFlags(cmd *cobra.Command, withBody bool) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("no-retry", false, "Disable the retry loop")
	cmd.Flags().Int("retries", 0, "Total attempts (overrides config)")
	cmd.Flags().Duration("retry-delay", 0, "Delay between attempts (overrides config)")
	cmd.Flags().StringP("config", "c", "", "Client configuration file (YAML or JSON)")
	cmd.Flags().String("extract", "", "JSONPath to extract from the response body")
	cmd.Flags().String("schema", "", "JSON Schema file to validate the response body against")
	cmd.Flags().Bool("stats", false, "Print request statistics after the call")
	if withBody {
		cmd.Flags().StringP("data", "d", "", "Data to send in the request body")
	}
}

func readRequestOptions(cmd *cobra.Command) requestOptions {
	var opts requestOptions
	opts.headers, _ = cmd.Flags().GetStringArray("header")
	opts.verbose, _ = cmd.Flags().GetBool("verbose")
	opts.timeout, _ = cmd.Flags().GetDuration("timeout")
	opts.noColor, _ = cmd.Flags().GetBool("no-color")
	opts.noRetry, _ = cmd.Flags().GetBool("no-retry")
	opts.retries, _ = cmd.Flags().GetInt("retries")
	opts.retryDelay, _ = cmd.Flags().GetDuration("retry-delay")
	opts.configPath, _ = cmd.Flags().GetString("config")
	opts.extract, _ = cmd.Flags().GetString("extract")
	opts.schemaPath, _ = cmd.Flags().GetString("schema")
	opts.showStats, _ = cmd.Flags().GetBool("stats")
	if cmd.Flags().Lookup("data") != nil {
		opts.body, _ = cmd.Flags().GetString("data")
	}
	if cmd.Flags().Lookup("token") != nil {
		opts.token, _ = cmd.Flags().GetString("token")
	}
	return opts
}

// buildManager assembles a manager from the config file (if any) and
// the flag overrides.
func buildManager(opts requestOptions) (*http.Manager, *stats.Recorder, map[string]string, error) {
	cfg := http.DefaultConfig()
	var fileHeaders map[string]string

	if opts.configPath != "" {
		file, err := config.Load(opts.configPath)
		if err != nil {
			return nil, nil, nil, err
		}
		cfg = file.ToConfig()
		fileHeaders = file.Headers
	}

	if opts.noRetry {
		cfg.EnableRetry = false
	}
	if opts.retries > 0 {
		cfg.MaxRetries = opts.retries
	}
	if opts.retryDelay > 0 {
		cfg.RetryDelay = opts.retryDelay
	}

	mgrOpts := []http.Option{}
	if opts.verbose {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
		mgrOpts = append(mgrOpts, http.WithLogger(log))
	}

	var recorder *stats.Recorder
	if opts.showStats {
		recorder = stats.NewRecorder()
		mgrOpts = append(mgrOpts, http.WithRecorder(recorder))
	}

	mgr := http.NewManager(cfg, mgrOpts...)
	for key, value := range fileHeaders {
		mgr.AddDefaultHeader(key, value)
	}
	return mgr, recorder, fileHeaders, nil
}

// runRequest executes one verb end to end: build the manager, issue
// the request, render the response, then apply --extract and --schema.
func runRequest(cmd *cobra.Command, method http.Method, url string) error {
	opts := readRequestOptions(cmd)

	mgr, recorder, _, err := buildManager(opts)
	if err != nil {
		return err
	}
	defer mgr.Close()

	req := http.NewRequest(method, url).WithTimeout(opts.timeout)
	for _, header := range opts.headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			req.WithHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
	if opts.body != "" {
		req.WithBody(opts.body)
	}
	if opts.token != "" {
		req.WithHeader("Authorization", "Bearer "+opts.token)
	}

	formatter := output.NewFormatter(opts.verbose, opts.noColor)
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRequest(req))

	resp, err := mgr.Execute(context.Background(), req)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResponse(resp))

	if opts.extract != "" {
		value, err := jsonpath.Extract(resp.Body, opts.extract)
		if err != nil {
			return fmt.Errorf("extract failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}

	if opts.schemaPath != "" {
		schema, err := os.ReadFile(opts.schemaPath)
		if err != nil {
			return fmt.Errorf("failed to read schema file: %w", err)
		}
		valid, verrs := jsonschema.ValidateWithErrors(resp.Body, string(schema))
		if !valid {
			return fmt.Errorf("response body failed schema validation: %s", verrs.Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema validation: OK")
	}

	if recorder != nil {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshot(recorder.Snapshot()))
	}
	return nil
}
