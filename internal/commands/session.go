package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/diogo/ghagent/internal/api"
	"github.com/diogo/ghagent/internal/chat"
	"github.com/diogo/ghagent/internal/config"
	"github.com/diogo/ghagent/internal/conversation"
	"github.com/diogo/ghagent/internal/logging"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	endpoint   string
	verbose    bool
	logFile    string
	configPath string
}

// loadConfig reads the config file and applies flag overrides
func (f *globalFlags) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadConfigFrom(f.configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return cfg, err
	}

	if f.endpoint != "" {
		cfg.Endpoint = f.endpoint
	}
	if f.verbose {
		cfg.Verbose = true
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is one conversation wired from configuration
type session struct {
	cfg        config.Config
	logger     *zap.Logger
	store      *conversation.Store
	controller *chat.Controller
}

// newSession builds the logger, client, store and controller
func (d *Dependencies) newSession(flags *globalFlags) (*session, error) {
	cfg, err := flags.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := d.Logger
	if logger == nil {
		logPath, err := config.GetLogPath(cfg)
		if err != nil {
			logPath = ""
		}
		logger = logging.NewOrNop(logging.Options{Path: logPath, Verbose: cfg.Verbose})
	}

	client := d.Client
	if client == nil {
		c, err := api.NewClient(
			api.WithEndpoint(cfg.Endpoint),
			api.WithResponseFields(cfg.ResponseFields...),
			api.WithTimeout(cfg.Timeout()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		client = c
	}

	logger.Debug("session configured",
		zap.String("endpoint", client.Endpoint()),
		zap.Strings("response_fields", cfg.ResponseFields),
		zap.Duration("timeout", cfg.Timeout()))

	store := conversation.NewStore()
	return &session{
		cfg:    cfg,
		logger: logger,
		store:  store,
		controller: chat.NewController(store, client,
			chat.WithLogger(logger),
			chat.WithFallbackMessage(cfg.FallbackMessage),
		),
	}, nil
}

// Close flushes the logger
func (s *session) Close() {
	_ = s.logger.Sync()
}
