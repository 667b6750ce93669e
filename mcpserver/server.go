package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jongio/scan-patch/dispatch"
	"github.com/jongio/scan-patch/logutil"
	"github.com/jongio/scan-patch/metrics"
	"github.com/jongio/scan-patch/report"
	"github.com/jongio/scan-patch/updates"
)

var log = logutil.NewLogger("mcp")

// ToolScanUpdates is the name of the scan tool.
const ToolScanUpdates = "scan_updates"

const argContinueOnEmpty = "continue_on_empty"

// ScanFunc runs one scan.
type ScanFunc func(ctx context.Context, continueOnEmpty bool) (dispatch.Result, error)

// Options configures a Server.
type Options struct {
	Name    string
	Version string

	// ContinueOnEmpty is the default for the tool's continue_on_empty argument.
	ContinueOnEmpty bool

	// RateLimit is the sustained number of scans per second. Zero disables
	// rate limiting.
	RateLimit rate.Limit
	Burst     int

	// BreakerFailures is how many consecutive failed scans open the breaker.
	// Zero disables the breaker.
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// Metrics, if set, receives probe outcomes, scan results and breaker
	// state changes.
	Metrics *metrics.Collector
}

// DefaultOptions returns the options used by the mcp command.
func DefaultOptions() Options {
	return Options{
		Name:            "scan-patch",
		RateLimit:       rate.Every(10 * time.Second),
		Burst:           3,
		BreakerFailures: 3,
		BreakerTimeout:  5 * time.Minute,
	}
}

// Server is an MCP server with the scan tool registered.
type Server struct {
	mcp     *server.MCPServer
	scan    ScanFunc
	opts    Options
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// ScanResult is the JSON payload returned by the scan tool.
type ScanResult struct {
	State    string           `json:"state"`
	Platform updates.Platform `json:"platform,omitempty"`
	Message  string           `json:"message"`
	Records  []updates.Record `json:"records"`
}

// errScanUnsupported counts an unsupported scan as a breaker failure.
var errScanUnsupported = errors.New("scan found no working update tool")

// New creates a Server that answers tool calls with scan.
func New(scan ScanFunc, opts Options) *Server {
	s := &Server{
		mcp:  server.NewMCPServer(opts.Name, opts.Version, server.WithToolCapabilities(false)),
		scan: scan,
		opts: opts,
	}

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(opts.RateLimit, burst)
	}

	if opts.BreakerFailures > 0 {
		s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        ToolScanUpdates,
			MaxRequests: 1,
			Timeout:     opts.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= opts.BreakerFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Info("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
				if opts.Metrics != nil {
					opts.Metrics.RecordBreakerState(name, to)
				}
			},
		})
	}

	s.mcp.AddTool(mcp.NewTool(ToolScanUpdates,
		mcp.WithDescription("Scan this host for pending OS updates using apt/yum, PowerShell Get-WindowsUpdate or softwareupdate. Returns the platform that answered and the list of pending updates."),
		mcp.WithBoolean(argContinueOnEmpty,
			mcp.Description("Keep trying other platforms when a probe finds nothing"),
		),
	), s.handleScan)

	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP over stdin and stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleScan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.limiter != nil && !s.limiter.Allow() {
		return mcp.NewToolResultError(fmt.Sprintf("rate limit exceeded for tool %q, please wait before retrying", ToolScanUpdates)), nil
	}

	continueOnEmpty := s.opts.ContinueOnEmpty
	if v, ok := getBoolParam(getArgsMap(request), argContinueOnEmpty); ok {
		continueOnEmpty = v
	}

	res, err := s.run(ctx, continueOnEmpty)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return mcp.NewToolResultError("scan temporarily disabled after repeated unsupported results: " + err.Error()), nil
	}
	if err != nil && !errors.Is(err, errScanUnsupported) {
		return mcp.NewToolResultError("scan failed: " + err.Error()), nil
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveResult(res)
	}
	return marshalToolResult(newScanResult(res))
}

// run executes the scan through the breaker, if any.
func (s *Server) run(ctx context.Context, continueOnEmpty bool) (dispatch.Result, error) {
	scan := func() (dispatch.Result, error) {
		res, err := s.scan(ctx, continueOnEmpty)
		if err != nil {
			return res, err
		}
		if res.Unsupported() {
			return res, errScanUnsupported
		}
		return res, nil
	}

	if s.breaker == nil {
		return scan()
	}

	var res dispatch.Result
	_, err := s.breaker.Execute(func() (interface{}, error) {
		var err error
		res, err = scan()
		return nil, err
	})
	return res, err
}

func newScanResult(res dispatch.Result) ScanResult {
	records := res.Records
	if records == nil {
		records = []updates.Record{}
	}
	return ScanResult{
		State:    res.State.String(),
		Platform: res.Platform,
		Message:  report.Summary(res),
		Records:  records,
	}
}

// getArgsMap extracts the arguments map from an MCP tool call request.
// Returns an empty map if arguments are nil or not a map.
func getArgsMap(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments != nil {
		if m, ok := request.Params.Arguments.(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

// getBoolParam extracts a boolean parameter from the arguments map.
func getBoolParam(args map[string]interface{}, key string) (bool, bool) {
	val, ok := args[key]
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// marshalToolResult marshals any value to JSON and returns it as an MCP tool result.
func marshalToolResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
