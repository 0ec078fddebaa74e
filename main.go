package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sairajiv19/gmail-agent/config"
	"github.com/sairajiv19/gmail-agent/gmail"
	"github.com/sairajiv19/gmail-agent/mailbox"
	"github.com/sairajiv19/gmail-agent/tools"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	// Initialize structured logging
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelInfo)
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		switch strings.ToUpper(lvl) {
		case "DEBUG":
			logLevel.Set(slog.LevelDebug)
		case "WARN":
			logLevel.Set(slog.LevelWarn)
		case "ERROR":
			logLevel.Set(slog.LevelError)
		}
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	// Build the authenticated Gmail session handle
	svc, err := gmail.NewService(ctx, cfg)
	if err != nil {
		slog.Error("failed to create Gmail service (check credentials and token files)", "error", err)
		os.Exit(1)
	}
	store := gmail.NewClient(svc, cfg.User)

	reader := mailbox.NewReader(store)
	writer := mailbox.NewWriter(store)

	// Create MCP server with middleware (applied in reverse: logging wraps timeout wraps handler)
	s := server.NewMCPServer(
		"Gmail Agent Server",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(timeoutMiddleware(60*time.Second)),
		server.WithToolHandlerMiddleware(loggingMiddleware()),
	)

	// Register fetch_latest_email tool
	fetchLatestTool := mcp.NewTool("fetch_latest_email",
		mcp.WithDescription("Fetch the most recent email in the inbox, including its decoded plain-text body. Returns id, thread_id, subject, from, date, and body."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
	s.AddTool(fetchLatestTool, tools.FetchLatestEmailHandler(reader))

	// Register search_email tool
	searchEmailTool := mcp.NewTool("search_email",
		mcp.WithDescription("Fetch the newest email matching a Gmail search query, including its body. Compose the query yourself using Gmail's grammar (e.g. 'from:amazon.com', 'subject:Invoice', 'label:UNREAD newer_than:7d')."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Gmail search query string."),
		),
	)
	s.AddTool(searchEmailTool, tools.SearchEmailHandler(reader))

	// Register list_emails tool
	listEmailsTool := mcp.NewTool("list_emails",
		mcp.WithDescription("List email metadata (no bodies), newest first: id, thread_id, subject, from, date, labels, snippet. Returns an empty list when nothing matches. Only the first page is fetched; narrow the query for large mailboxes."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("query",
			mcp.Description("Optional Gmail search query string. Empty lists the mailbox unfiltered."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of emails to return."),
			mcp.DefaultNumber(5),
			mcp.Min(1),
			mcp.Max(100),
		),
	)
	s.AddTool(listEmailsTool, tools.ListEmailsHandler(reader))

	// Register resolve_email_id tool
	resolveIDTool := mcp.NewTool("resolve_email_id",
		mcp.WithDescription("Resolve a Gmail search query to the newest matching email's id, thread_id, from, and date. Always use this to obtain an id when the user describes an email instead of providing one."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Gmail search query string (e.g. 'from:Haaris Sharma')."),
		),
	)
	s.AddTool(resolveIDTool, tools.ResolveEmailIDHandler(reader))

	// Register send_email tool
	sendEmailTool := mcp.NewTool("send_email",
		mcp.WithDescription("Compose and send a new plain-text email. Returns the store-assigned message id. Calling twice sends duplicate emails."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithString("to",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Recipient email address, or a comma-joined list of addresses."),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Email subject line."),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Plain-text email body."),
		),
		mcp.WithString("cc",
			mcp.Description("CC email address (string) or JSON array of addresses."),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email address (string) or JSON array of addresses."),
		),
	)
	s.AddTool(sendEmailTool, tools.SendEmailHandler(writer))

	// Register reply_email tool
	replyEmailTool := mcp.NewTool("reply_email",
		mcp.WithDescription("Reply to an existing email by id. Addresses the original sender, prefixes the subject with 'Re:', sets In-Reply-To/References, and keeps the reply in the original thread. Use resolve_email_id first if you only have a description. Calling twice sends duplicate replies."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Id of the email being replied to (from resolve_email_id, list_emails, or a fetch)."),
		),
		mcp.WithString("reply_text",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Plain-text content of the reply."),
		),
	)
	s.AddTool(replyEmailTool, tools.ReplyEmailHandler(writer))

	// Log startup
	slog.Info("server starting",
		"version", version,
		"user", cfg.User,
		"credentials_file", cfg.CredentialsFile,
		"token_file", cfg.TokenFile,
	)

	// Start the stdio server with cancellable context
	stdioServer := server.NewStdioServer(s)
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// timeoutMiddleware wraps each tool handler with a context deadline.
func timeoutMiddleware(timeout time.Duration) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, req)
		}
	}
}

// loggingMiddleware logs each tool call with a unique request ID, tool name, duration, and outcome.
func loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			requestID := uuid.New().String()
			tool := req.Params.Name
			logger := slog.With("request_id", requestID, "tool", tool)

			logger.Debug("tool call started")
			start := time.Now()

			result, err := next(ctx, req)
			duration := time.Since(start)

			if err != nil {
				logger.Error("tool call failed", "duration_ms", duration.Milliseconds(), "error", err)
			} else if result != nil && result.IsError {
				logger.Warn("tool call returned error", "duration_ms", duration.Milliseconds())
			} else {
				logger.Info("tool call completed", "duration_ms", duration.Milliseconds())
			}

			return result, err
		}
	}
}
