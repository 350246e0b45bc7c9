package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/youyo/secretlaunch/cmd"
	"github.com/youyo/secretlaunch/internal/backend"
	"github.com/youyo/secretlaunch/internal/config"
	"github.com/youyo/secretlaunch/internal/launch"
	"github.com/youyo/secretlaunch/internal/pool"
)

// fallbackRegion is used when neither configuration nor the AWS
// provider chain yields a region.
const fallbackRegion = "us-east-1"

func main() {
	cli := cmd.CLI{}
	parser := kong.Must(&cli,
		kong.Name("secretlaunch"),
		kong.Description("Resolve secret references from the environment and execute a program with the resolved values."),
		kong.UsageOnError(),
	)
	kongplete.Complete(parser,
		kongplete.WithPredictor("bin", complete.PredictFiles("*")),
	)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := config.Load()
	if err != nil {
		kctx.FatalIfErrorf(err)
	}
	config.ApplyCLIOverrides(cfg, cli.Region, cli.Profile, cli.Timeout)

	logger := newLogger(cli.Debug)

	err = kctx.Run(&cmd.Context{
		Config: cfg,
		Logger: logger,
		Pool:   pool.New(newPairFactory(cfg)),
	})

	// A child exit code travels out as ExitCodeError so the wrapper can
	// mirror it exactly instead of printing an error message.
	var exitErr *launch.ExitCodeError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	kctx.FatalIfErrorf(err)
}

// newLogger builds the process logger. Warnings and errors only by
// default so the child's stderr stays clean; --debug opens it up.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newPairFactory returns a pool.Factory that creates real AWS client
// pairs. An empty region means the ambient default: the configured
// region if any, otherwise provider-chain discovery with a fixed
// fallback.
func newPairFactory(cfg *config.Config) pool.Factory {
	return func(ctx context.Context, region string) (*backend.Pair, error) {
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithDefaultRegion(fallbackRegion),
		}
		if cfg.AWS.Profile != "" {
			opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.AWS.Profile))
		}
		switch {
		case region != "":
			opts = append(opts, awsconfig.WithRegion(region))
		case cfg.AWS.Region != "":
			opts = append(opts, awsconfig.WithRegion(cfg.AWS.Region))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}

		return &backend.Pair{
			Secrets:    backend.NewSecretsManagerFetcher(secretsmanager.NewFromConfig(awsCfg)),
			Parameters: backend.NewParameterStoreFetcher(ssm.NewFromConfig(awsCfg)),
		}, nil
	}
}
