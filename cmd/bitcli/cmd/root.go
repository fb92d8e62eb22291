package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitview/config"
	"github.com/spacemeshos/bitview/internal/host"
)

type app struct {
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
}

type Option func(*app)

// WithLogger makes the commands log to logger instead of a console logger
// built from the configured level.
func WithLogger(logger *zap.Logger) Option {
	return func(a *app) {
		a.logger = logger
	}
}

// NewRootCmd returns the bitcli command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:   "bitcli",
		Short: "Inspect and edit the bits of a value",
		Long: `bitcli lays out values of a fixed-size numeric type in memory and
exposes them bit by bit. Bit i is bit i%8 of byte i/8 of the host's memory.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	def := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "",
		fmt.Sprintf("Path to configuration file (default %v)", config.DefaultConfigFile()))
	flags.String("type", def.Type, fmt.Sprintf("Host element kind, one of %v", host.Kinds()))
	flags.Int("count", def.Count, "Number of host elements")
	flags.Bool("fancy", def.Fancy, "Render with the 0b prefix and nibble separators")
	flags.String("log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	flags.Bool("table-border", def.TableBorder, "Draw a border around tables")

	rootCmd.AddCommand(
		newShowCmd(a),
		newGetCmd(a),
		newEditCmd(a),
		newTableCmd(a),
		newInfoCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		MessageKey:     "M",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(cmd.ErrOrStderr()), level)
	a.logger = zap.New(core).Named("bitcli")
	return nil
}

func (a *app) parseHost(values []string) (host.Host, error) {
	h, err := host.Parse(a.cfg.Type, a.cfg.Count, values)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("host ready",
		zap.String("kind", string(h.Kind())),
		zap.Int("count", a.cfg.Count),
		zap.Int("bits", h.View().Len()),
	)
	return h, nil
}

func (a *app) render(v host.View) string {
	return v.BinaryString(a.cfg.Fancy)
}
