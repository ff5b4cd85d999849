package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Azhovan/hydrate"
	"github.com/Azhovan/hydrate/internal/settings"
	"github.com/Azhovan/hydrate/manifest"
	"github.com/Azhovan/hydrate/render"
	"github.com/Azhovan/hydrate/sourceenv"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Options configures the root command.
type Options struct {
	// Env is the process environment. Defaults to sourceenv.Snapshot().
	Env hydrate.Environment

	// Version is reported by --version.
	Version string
}

// flagKeys maps flags to the settings keys they override.
var flagKeys = map[string]string{
	"manifest":  "hydrate.manifest",
	"format":    "hydrate.format",
	"output":    "hydrate.output",
	"template":  "hydrate.template",
	"env-file":  "hydrate.env.file",
	"log-level": "hydrate.log.level",
}

// Execute runs the hydrate command against the process environment.
func Execute(version string) error {
	return NewRootCommand(Options{Version: version}).ExecuteContext(context.Background())
}

// NewRootCommand builds the hydrate command.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Env == nil {
		opts.Env = sourceenv.Snapshot()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	var withSources bool
	var indent string

	cmd := &cobra.Command{
		Use:   "hydrate [NAME...]",
		Short: "Turn environment variables into dotted configuration keys",
		Long: `Read the named environment variables and write them as dotted keys.

Each name is lower-cased and every underscore becomes a period, so JIRA_DB_HOST
is written as jira.db.host. Unset variables are written with an empty value.

Names come from --manifest (yaml, json, toml or one per line) followed by the
arguments. Every flag can also be set with HYDRATE_<FLAG>, e.g. HYDRATE_FORMAT=json.`,
		Example: `  hydrate JIRA_URL JIRA_DB_HOST
  hydrate -m jira.vars.yaml -f json -o /etc/jira/params.json
  hydrate -m jira.vars.txt -t dbconfig.xml.tmpl -o dbconfig.xml`,
		Version:       opts.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := make(map[string]string)
			for flag, key := range flagKeys {
				if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
					overrides[key] = f.Value.String()
				}
			}

			s, err := settings.Load(opts.Env, overrides)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), s.LogLevel)
			if err != nil {
				return err
			}

			var renderOpts []render.Option
			if withSources {
				renderOpts = append(renderOpts, render.WithSources())
			}
			if cmd.Flags().Changed("indent") {
				renderOpts = append(renderOpts, render.WithIndent(indent))
			}

			return run(cmd.Context(), runConfig{
				settings:   s,
				env:        opts.Env,
				names:      args,
				renderOpts: renderOpts,
				out:        cmd.OutOrStdout(),
				logger:     logger,
			})
		},
	}

	cmd.Flags().StringP("manifest", "m", "", "file listing variable names (yaml, json, toml or text)")
	cmd.Flags().StringP("format", "f", string(render.Properties), "output format: "+formatList())
	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringP("template", "t", "", "render this text/template instead of a format")
	cmd.Flags().StringP("env-file", "e", "", "comma-separated dotenv files; the process environment wins")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&withSources, "with-sources", false, "annotate keys with their variable (properties, yaml)")
	cmd.Flags().StringVar(&indent, "indent", "  ", "JSON indentation; empty for compact output")

	return cmd
}

type runConfig struct {
	settings   *settings.Settings
	env        hydrate.Environment
	names      []string
	renderOpts []render.Option
	out        io.Writer
	logger     *log.Logger
}

func run(ctx context.Context, rc runConfig) error {
	s := rc.settings

	env := rc.env
	if files := splitList(s.EnvFile); len(files) > 0 {
		fileEnv, err := sourceenv.Load(files...)
		if err != nil {
			return err
		}
		rc.logger.Debug("loaded env files", "files", files, "vars", len(fileEnv))
		env = sourceenv.Layered(fileEnv, rc.env)
	}

	var manifestNames []string
	if s.Manifest != "" {
		src := manifest.New(s.Manifest, manifest.Options{Required: true})
		names, err := src.Load(ctx)
		if err != nil {
			return err
		}
		rc.logger.Debug("loaded manifest", "source", src.Name(), "names", len(names))
		manifestNames = names
	}

	names := manifest.Merge(manifestNames, rc.names)
	if len(names) == 0 {
		rc.logger.Warn("no variable names given")
	}

	params := hydrate.Hydrate(env, names)
	for _, e := range params.Entries() {
		rc.logger.Debug("hydrated", "key", e.Key, "from", e.Name, "set", e.Set)
	}
	for _, e := range params.Unset() {
		rc.logger.Warn("variable not set, using empty value", "name", e.Name, "key", e.Key)
	}

	var buf bytes.Buffer
	if s.Template != "" {
		text, err := os.ReadFile(s.Template)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		if err := render.Template(&buf, string(text), params); err != nil {
			return fmt.Errorf("template %s: %w", s.Template, err)
		}
	} else {
		format, err := render.ParseFormat(s.Format)
		if err != nil {
			return err
		}
		if err := render.Write(&buf, params, format, rc.renderOpts...); err != nil {
			return err
		}
	}

	if s.Output == "" || s.Output == "-" {
		_, err := rc.out.Write(buf.Bytes())
		return err
	}

	if err := render.WriteFile(s.Output, buf.Bytes()); err != nil {
		return err
	}
	rc.logger.Info("wrote configuration", "path", s.Output, "keys", params.Len())
	return nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "hydrate",
		Level:  lvl,
	}), nil
}

func formatList() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
