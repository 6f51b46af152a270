package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"

	"github.com/tminor/makels/implementation"
	"github.com/tminor/makels/internal/makedb"
)

var configPath string

func init() {
	rootCommand.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (.yaml, .json or .jsonnet)")
	addFlags(rootCommand.Flags())
}

// addFlags defines the settings flags; viper binds them by name.
func addFlags(flags *pflag.FlagSet) {
	flags.StringP("log-file", "l", "", "log to this file instead of stderr")
	flags.CountP("verbose", "v", "add a log verbosity level (can be used twice)")
	flags.Bool("debug", false, "log JSON-RPC traffic")
	flags.String("make", "make", "make binary to dry-run")
	flags.StringSlice("make-arg", nil, "extra argument passed to make (repeatable)")
	flags.Duration("debounce", makedb.DefaultDebounce, "quiet period after an edit before make runs")
	flags.Duration("hover-wait", makedb.DefaultDebounce, "how long a hover waits for a pending refresh")
	flags.Duration("invoke-timeout", 0, "kill make after this long (0 means never)")
	flags.Int("cache-size", makedb.DefaultCacheSize, "maximum number of documents with cached symbols")
}

var rootCommand = &cobra.Command{
	Use:           implementation.ServerName,
	Short:         "Language server for Makefiles",
	Long:          "Serves hover and completion for Makefiles over stdio, using make's own data base dump as the source of variable definitions.",
	Version:       implementation.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if err := bindFlags(v, cmd); err != nil {
			return err
		}
		settings, err := loadSettings(v, configPath)
		if err != nil {
			return err
		}
		configureLogging(settings.Verbosity, settings.LogFile)
		return run(settings)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(settings *Settings) error {
	makels := implementation.NewServer(settings.Config)
	atexit.Register(makels.Close)

	log.Infof("%s %s starting, make=%s", implementation.ServerName, implementation.Version, settings.Config.MakePath)
	return makels.RunStdio(settings.Debug)
}
