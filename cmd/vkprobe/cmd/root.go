package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/vkload"
)

var (
	cfgFile      string
	outputFormat string
	libraries    []string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vkprobe",
	Short: "Inspect the Vulkan loader",
	Long: `vkprobe opens the Vulkan loader the same way vkload does and reports the
module it picked, the entry points it exposes and the physical devices it sees.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if verbose {
			vkload.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vkprobe/config.yaml)")
	rootCmd.PersistentFlags().StringSliceVar(&libraries, "library", nil, "Vulkan module to try before the platform defaults (repeatable; VKPROBE_LIBRARIES takes a comma separated list)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log loader diagnostics to stderr")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".vkprobe"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("vkprobe")
	viper.AutomaticEnv()
	_ = viper.BindEnv("libraries", "VKPROBE_LIBRARIES")
	_ = viper.BindEnv("output", "VKPROBE_OUTPUT")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "vkprobe: config: %v\n", err)
		}
	}
	applyConfig(rootCmd)
}

// applyConfig fills flags the user did not set from the config file or
// environment. Flags always win.
func applyConfig(c *cobra.Command) {
	flags := c.PersistentFlags()
	if !flags.Changed("library") {
		if libs := configLibraries(); len(libs) > 0 {
			libraries = libs
		}
	}
	if !flags.Changed("output") {
		if out := viper.GetString("output"); out != "" {
			outputFormat = out
		}
	}
}

// configLibraries reads the libraries setting. A plain string, as
// VKPROBE_LIBRARIES provides, is split on commas so paths may hold spaces.
func configLibraries() []string {
	s, ok := viper.Get("libraries").(string)
	if !ok {
		return viper.GetStringSlice("libraries")
	}
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// candidates returns the module names to try: --library entries first,
// then the platform defaults.
func candidates() []string {
	out := slices.Clone(libraries)
	for _, name := range vkload.DefaultCandidates() {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// openLibrary loads the Vulkan loader or explains why it could not.
func openLibrary() (*vkload.Library, error) {
	lib := vkload.New(vkload.WithCandidates(candidates()...))
	if !lib.Valid() {
		return nil, lib.Err()
	}
	return lib, nil
}
