package makevm

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jbweber/zdir/internal/config"
	"github.com/jbweber/zdir/internal/ctxlog"
	"github.com/jbweber/zdir/internal/directory"
	"github.com/jbweber/zdir/internal/grammar"
	zdirlibvirt "github.com/jbweber/zdir/internal/libvirt"
	"github.com/jbweber/zdir/internal/params"
	"github.com/jbweber/zdir/internal/smapi"
)

// Version is reported by the VERSION sub-operation.
const Version = "1.0.0"

// Options control a single MakeVM run.
type Options struct {
	// DryRun builds the directory entry and returns it without submitting.
	DryRun bool

	// Out receives HELP and VERSION text.
	Out io.Writer
}

// Run executes a MakeVM request against the backend selected in cfg.
//
// tokens is the full request, starting with the function name:
//
//	MakeVM LINUX01 directory PASSW0RD 2G G --cpus 2
//
// Run never returns an error; every failure is reported in the Results.
func Run(ctx context.Context, tokens []string, cfg *config.Config, opts Options) Results {
	maxReservedMB, err := cfg.MaxReservedMemoryMB()
	if err != nil {
		return ResultsFromError(fmt.Errorf("invalid configuration: %w", err))
	}

	var sub submitter
	switch cfg.Backend {
	case config.BackendLibvirt:
		sub = zdirlibvirt.NewSubmitter(cfg.Libvirt.Socket, cfg.Libvirt.Timeout)
	default:
		cli := smapi.NewCLI(cfg.SMCLI.Path, cfg.SMCLI.Sudo)
		sub = smapi.NewSubmitter(cli, cfg.SMCLI.StagingDir)
	}

	return runWithDeps(ctx, tokens, directory.Builder{MaxReservedMB: maxReservedMB}, sub, opts)
}

// runWithDeps executes a request with an injected submitter.
func runWithDeps(ctx context.Context, tokens []string, builder directory.Builder, sub submitter, opts Options) Results {
	logger := ctxlog.FromContext(ctx).With("request_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	req, err := ParseRequest(tokens)
	if err != nil {
		logger.Error("invalid MakeVM request", "error", err)
		return ResultsFromError(err)
	}
	logger = logger.With("userid", req.UserID, "subfunction", req.Subfunction)

	if req.Params.Has(grammar.KeyShowParms) {
		logShowParms(logger, req)
	}

	var results Results
	switch req.Subfunction {
	case grammar.SubHelp:
		writeHelp(out)
	case grammar.SubVersion:
		_, _ = fmt.Fprintf(out, "Version: %s\n", Version)
	case grammar.SubDirectory:
		results = createEntry(ctx, req, builder, sub, opts.DryRun)
	}

	if results.OK() {
		logger.Info("MakeVM complete", "dry_run", opts.DryRun)
	} else {
		logger.Error("MakeVM failed",
			"overall_rc", results.OverallRC, "rc", results.RC, "rs", results.RS)
	}
	return results
}

func createEntry(ctx context.Context, req *Request, builder directory.Builder, sub submitter, dryRun bool) Results {
	logger := ctxlog.FromContext(ctx)

	entry, err := builder.Build(req.UserID, req.Params)
	if err != nil {
		return ResultsFromError(err)
	}
	logger.Debug("built directory entry", "statements", len(entry.Lines))

	if dryRun {
		return Results{Directory: entry.Lines}
	}

	if err := sub.Submit(ctx, entry); err != nil {
		return ResultsFromError(err)
	}
	return Results{Response: []string{fmt.Sprintf("Directory entry for %s created", req.UserID)}}
}

// logShowParms logs every parsed parameter, with the password masked.
func logShowParms(logger *slog.Logger, req *Request) {
	p := Redacted(req.Params)
	attrs := []any{"function", req.Function}
	for _, k := range p.Keys() {
		attrs = append(attrs, string(k), p[k].String())
	}
	logger.Info("MakeVM parameters", attrs...)
}

// Redacted returns a copy of p with the password masked.
func Redacted(p params.Params) params.Params {
	out := make(params.Params, len(p))
	for k, v := range p {
		if k == grammar.KeyPassword {
			v = params.String("********")
		}
		out[k] = v
	}
	return out
}
