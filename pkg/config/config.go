package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/downfa11-org/jetstream-exerciser/util"
	"gopkg.in/yaml.v3"
)

// Config holds the exerciser run parameters. Flags override config
// file values, which override defaults.
type Config struct {
	// System under test
	ServerPath string `yaml:"server_path"`
	Servers    int    `yaml:"servers"`
	BasePort   int    `yaml:"base_port"`
	StoragePfx string `yaml:"storage_dir_prefix"`
	ConfDir    string `yaml:"conf_dir"`

	// Run shape
	Seed    *uint64 `yaml:"seed"`
	Clients int     `yaml:"clients"`
	Steps   uint64  `yaml:"steps"`
	Stream  string  `yaml:"stream"`

	// Policy
	ReceiveTimeoutMS        int  `yaml:"receive_timeout_ms"`
	TolerateTransportErrors bool `yaml:"tolerate_transport_errors"`

	// Observability
	EnableExporter bool          `yaml:"enable_exporter"`
	ExporterPort   int           `yaml:"exporter_port"`
	LogLevel       util.LogLevel `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		ServerPath:       "nats-server",
		Servers:          3,
		BasePort:         44000,
		StoragePfx:       "jetstream_test_",
		ConfDir:          "confs",
		Clients:          2,
		Steps:            10000,
		Stream:           "exercise_stream",
		ReceiveTimeoutMS: 500,
		ExporterPort:     9100,
		LogLevel:         util.LogLevelInfo,
	}
}

// Load parses args into a Config. Unknown or malformed flags make the
// flag set print usage and return an error.
func Load(args []string) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("exercise", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to YAML config file")
	pathStr := fs.String("path", cfg.ServerPath, "Path to nats-server binary")
	seedStr := fs.String("seed", "", "Seed for driving faults (default: freshly generated)")
	clientsStr := fs.String("clients", "", "Number of concurrent clients")
	serversStr := fs.String("servers", "", "Number of cluster servers")
	stepsStr := fs.String("steps", "", "Number of steps to take")
	streamStr := fs.String("stream", "", "Name of the work-queue stream under test")
	basePortStr := fs.String("base-port", "", "First client port, node i listens on base-port+i")
	receiveTimeoutStr := fs.String("receive-timeout-ms", "", "Bounded wait for a single consume in milliseconds")
	tolerateStr := fs.String("tolerate-transport-errors", "", "Downgrade publish/consume transport errors to warnings")
	exporterStr := fs.String("exporter", "", "Enable Prometheus exporter")
	exporterPortStr := fs.String("exporter-port", "", "Exporter port")
	logLevelStr := fs.String("log-level", "", "Log Level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" && *configPath == "" {
		*configPath = envPath
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Explicit flags win over the config file.
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.ServerPath = *pathStr
		case "seed":
			v, err := strconv.ParseUint(*seedStr, 10, 64)
			if err != nil {
				parseErr = fmt.Errorf("invalid seed %q: %w", *seedStr, err)
				return
			}
			cfg.Seed = &v
		case "clients":
			cfg.Clients = util.ParseInt(*clientsStr, cfg.Clients)
		case "servers":
			cfg.Servers = util.ParseInt(*serversStr, cfg.Servers)
		case "steps":
			cfg.Steps = util.ParseUint64(*stepsStr, cfg.Steps)
		case "stream":
			cfg.Stream = *streamStr
		case "base-port":
			cfg.BasePort = util.ParseInt(*basePortStr, cfg.BasePort)
		case "receive-timeout-ms":
			cfg.ReceiveTimeoutMS = util.ParseInt(*receiveTimeoutStr, cfg.ReceiveTimeoutMS)
		case "tolerate-transport-errors":
			cfg.TolerateTransportErrors = util.ParseBool(*tolerateStr, cfg.TolerateTransportErrors)
		case "exporter":
			cfg.EnableExporter = util.ParseBool(*exporterStr, cfg.EnableExporter)
		case "exporter-port":
			cfg.ExporterPort = util.ParseInt(*exporterPortStr, cfg.ExporterPort)
		case "log-level":
			cfg.LogLevel = util.ParseLogLevel(*logLevelStr)
		}
	})
	if parseErr != nil {
		fs.Usage()
		return nil, parseErr
	}

	cfg.Normalize()
	util.SetLevel(cfg.LogLevel)

	return cfg, nil
}

// ReceiveTimeout is the bounded consume wait as a Duration.
func (cfg *Config) ReceiveTimeout() time.Duration {
	return time.Duration(cfg.ReceiveTimeoutMS) * time.Millisecond
}

func (cfg *Config) Normalize() {
	if strings.TrimSpace(cfg.ServerPath) == "" {
		cfg.ServerPath = "nats-server"
	}
	if cfg.Servers <= 0 {
		cfg.Servers = 3
	}
	if cfg.Clients <= 0 {
		cfg.Clients = 2
	}
	if cfg.BasePort <= 0 {
		cfg.BasePort = 44000
	}
	if strings.TrimSpace(cfg.StoragePfx) == "" {
		cfg.StoragePfx = "jetstream_test_"
	}
	if strings.TrimSpace(cfg.ConfDir) == "" {
		cfg.ConfDir = "confs"
	}
	if strings.TrimSpace(cfg.Stream) == "" {
		cfg.Stream = "exercise_stream"
	}
	if cfg.ReceiveTimeoutMS <= 0 {
		cfg.ReceiveTimeoutMS = 500
	}
	if cfg.ExporterPort <= 0 {
		cfg.ExporterPort = 9100
	}
}
