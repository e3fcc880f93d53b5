package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fpdb/sqlt"
)

const (
	dialectStandard = "standard"
	dialectMySQL    = "mysql"
	dialectPostgres = "postgres"

	defaultSkipToken = "__SKIP__"
)

type buildOptions struct {
	GlobalOptions `mapstructure:",squash"`

	Template       string `mapstructure:"template" validate:"excluded_with=File"`
	File           string `mapstructure:"file"`
	Args           string `mapstructure:"args"`
	Dialect        string `mapstructure:"dialect" validate:"oneof=standard mysql postgres"`
	DatabaseURL    string `mapstructure:"database-url" validate:"required_if=Dialect postgres"`
	SkipToken      string `mapstructure:"skip-token"`
	DisallowUnused bool   `mapstructure:"disallow-unused"`
}

func newBuildCmd(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a query from a template and JSON arguments",
		Long: `Build a query from a template and JSON arguments.

The template is taken from --template, from --file, or from stdin, in that
order. Arguments are a JSON array bound to placeholders from left to right.
A top-level string equal to --skip-token removes the conditional block its
placeholder is in.`,
		Example: `  sqlt build --template 'SELECT * FROM users WHERE id IN ?a?{ AND block = ?d}' --args '[[1, 2], "__SKIP__"]'
  echo 'SELECT ?# FROM t' | sqlt build --args '["name"]' --dialect mysql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var options buildOptions
			if err := ParseOptions(cmd, &options); err != nil {
				return err
			}
			return runBuild(cmd.Context(), cli, options)
		},
	}

	cmd.Flags().StringP("template", "t", "", "Query template")
	cmd.Flags().StringP("file", "f", "", "Read the template from a file")
	cmd.Flags().StringP("args", "a", "", "Arguments as a JSON array")
	cmd.Flags().String("dialect", dialectStandard, "Escaping rules: standard, mysql or postgres")
	cmd.Flags().String("database-url", "", "Postgres connection string, required for the postgres dialect")
	cmd.Flags().String("skip-token", defaultSkipToken, "JSON string standing for the skip sentinel")
	cmd.Flags().Bool("disallow-unused", false, "Fail when arguments are left over after all placeholders are bound")

	return cmd
}

func runBuild(ctx context.Context, cli *CLI, options buildOptions) error {
	logger := newLogger(options.Verbose, cli.Stderr)
	defer func() { _ = logger.Sync() }()

	src, err := readTemplate(cli, options)
	if err != nil {
		return err
	}

	args, err := decodeArgs(options.Args, options.SkipToken)
	if err != nil {
		return err
	}

	esc, closeFn, err := newEscaper(ctx, options, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	bui := sqlt.New(esc, sqlt.WithLogger(logger), sqlt.DisallowUnused(options.DisallowUnused))

	query, err := bui.Build(src, args...)
	if err != nil {
		return err
	}

	cli.Output("%s", query)
	return nil
}

// readTemplate returns the template from the first configured source. Trailing
// line breaks of files and stdin are dropped.
func readTemplate(cli *CLI, options buildOptions) (string, error) {
	if options.Template != "" {
		return options.Template, nil
	}

	if options.File != "" {
		content, err := os.ReadFile(options.File)
		if err != nil {
			return "", fmt.Errorf("read template: %w", err)
		}
		return strings.TrimRight(string(content), "\r\n"), nil
	}

	content, err := io.ReadAll(cli.Stdin)
	if err != nil {
		return "", fmt.Errorf("read template from stdin: %w", err)
	}
	return strings.TrimRight(string(content), "\r\n"), nil
}

func newEscaper(ctx context.Context, options buildOptions, logger *zap.Logger) (sqlt.Escaper, func(), error) {
	switch options.Dialect {
	case dialectMySQL:
		return sqlt.MySQLEscaper{}, func() {}, nil

	case dialectPostgres:
		conn, err := pgx.Connect(ctx, options.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		closeFn := func() {
			if err := conn.Close(ctx); err != nil {
				logger.Debug("closing postgres connection", zap.Error(err))
			}
		}
		return sqlt.NewPgEscaper(conn), closeFn, nil

	default:
		return sqlt.StandardEscaper{}, func() {}, nil
	}
}
