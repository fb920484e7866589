package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type BuildInfo struct {
	Version string
}

type args struct {
	ConfigPath  string `mapstructure:"config"`
	LogLevel    string `mapstructure:"log_level"`
	Output      string `mapstructure:"output"`
	Listen      string `mapstructure:"listen"`
	Method      string
	ContentType string
	Query       string
	BodyPath    string
	RespBody    string
	RespJSON    string
	Version     string
	Headers     []string
	Status      int
	KeepBlank   bool `mapstructure:"keep_blank_values"`
	TextFormat  bool `mapstructure:"log_text"`
}

// InitCommand initializes the root command of the CLI application with its
// subcommands and flags. It sets up the "cgiform" command with the "parse"
// and "serve" subcommands.
func InitCommand(build BuildInfo) cobra.Command {
	arg := args{Version: build.Version}

	cmd := cobra.Command{
		Use:   "cgiform",
		Short: "CGI form decoder",
		Long:  "cgiform decodes query-string, multipart and JSON form submissions the way the classic CGI field storage did, from the environment or from live HTTP requests.",
	}

	cmd.PersistentFlags().StringVar(&arg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&arg.TextFormat, "log-text", true, "log in text format, otherwise JSON")

	cmd.AddCommand(initParseCommand(&arg))
	cmd.AddCommand(initServeCommand(&arg))

	for _, name := range []string{"log_level", "log_text", "output", "keep_blank_values", "listen"} {
		if err := viper.BindEnv(name); err != nil {
			slog.Error("failed to bind env var", "name", name, "error", err)
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&arg); err != nil {
		slog.Error("failed to unmarshal env vars", "error", err)
	}

	return cmd
}

// initParseCommand initializes the "parse" command, which decodes one request
// from the process environment and standard input, with flags to override the
// relevant meta-variables.
func initParseCommand(arg *args) *cobra.Command {
	cmd := cobra.Command{
		Use:   "parse",
		Short: "Decode a form submission",
		Long:  "Decode a form submission from the CGI environment and standard input, then print the decoded fields.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunParseCommand(cmd.Context(), arg)
		},
	}

	cmd.Flags().StringVar(&arg.Method, "method", "", "override the REQUEST_METHOD meta-variable")
	cmd.Flags().StringVar(&arg.ContentType, "content-type", "", "override the CONTENT_TYPE meta-variable")
	cmd.Flags().StringVar(&arg.Query, "query", "", "override the QUERY_STRING meta-variable")
	cmd.Flags().StringVar(&arg.BodyPath, "body-file", "", "read the request body from a file instead of standard input")
	cmd.Flags().StringVar(&arg.Output, "output", "pretty", "output format (pretty, json, yaml)")
	cmd.Flags().BoolVar(&arg.KeepBlank, "keep-blank-values", false, "keep fields decoded to the empty string")

	return &cmd
}

// initServeCommand initializes the "serve" command, which runs the inspector
// HTTP server.
func initServeCommand(arg *args) *cobra.Command {
	cmd := cobra.Command{
		Use:   "serve",
		Short: "Run the form inspector server",
		Long:  "Run a local HTTP server that decodes every incoming request and prints the decoded fields.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunServeCommand(cmd.Context(), arg)
		},
	}

	cmd.Flags().StringVar(&arg.ConfigPath, "config", "", "config path")
	cmd.Flags().StringVar(&arg.Listen, "listen", "", "listen address (defaults to a random local port)")
	cmd.Flags().IntVar(&arg.Status, "status", 0, "response status code")
	cmd.Flags().StringVar(&arg.RespBody, "body", "", "plain text response body")
	cmd.Flags().StringVar(&arg.RespJSON, "json", "", "JSON response body")
	cmd.Flags().StringArrayVar(&arg.Headers, "header", nil, "response header in 'Name:Value' form, repeatable")
	cmd.Flags().BoolVar(&arg.KeepBlank, "keep-blank-values", false, "keep fields decoded to the empty string")

	if err := viper.BindEnv("config"); err != nil {
		slog.Error("failed to bind env var", "name", "config", "error", err)
	}

	return &cmd
}
