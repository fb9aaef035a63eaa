package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"zero-pass/internal/config"
	"zero-pass/internal/history"
	"zero-pass/internal/locale"
	"zero-pass/internal/output"
	"zero-pass/internal/prompt"
	"zero-pass/internal/zeropass"
)

// ZeroPassApp is the application layer between the CLI and the password
// backend. It owns the prompter, the message table, the logger and the run
// history for one invocation.
type ZeroPassApp struct {
	cfg      *config.Config // nil when running without a config file
	mess     *locale.Messages
	prompter prompt.Prompter
	recorder history.Recorder
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
	logFile  *os.File
}

// Options are the inputs of one derivation. Empty fields are asked for.
type Options struct {
	Unique    string
	Variable  string
	Repeat    string
	RepeatSet bool
	Method    string
	Output    output.Options
}

// IO bundles the streams the app talks to.
type IO struct {
	Prompter prompt.Prompter
	Stdout   io.Writer
	Stderr   io.Writer
}

// Open loads (or offers to create) the config file, resolves the message
// table and wires logging and history. The caller must call Close when done.
func Open(defaults map[string]string, streams IO, verbose bool) (*ZeroPassApp, error) {
	envMess, err := locale.NewMessages(locale.FromLocaleEnv(defaults["lang"]))
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(defaults["config_path"], NewConfig(defaults), func() (bool, error) {
		return streams.Prompter.Confirm(envMess.AskCreateFile)
	})
	switch {
	case err == nil:
		if err := cfg.Validate(); err != nil {
			return nil, localize(envMess.ErrorFileProp, err)
		}
	case errors.Is(err, config.ErrNotFound):
		cfg = nil
	case errors.Is(err, config.ErrFileParse):
		return nil, localize(envMess.ErrorFileParse, err)
	case errors.Is(err, config.ErrFileRead):
		return nil, localize(envMess.ErrorFileOpen, err)
	case errors.Is(err, prompt.ErrNoInput):
		return nil, localize(envMess.ErrorInput, err)
	default:
		return nil, err
	}

	configLang := ""
	logDir := defaults["log_dir"]
	if cfg != nil {
		configLang = cfg.Props.Lang
		if cfg.Log.Dir != "" {
			logDir = cfg.Log.Dir
		}
	}
	recorder, err := newRecorder(cfg, defaults)
	if err != nil {
		return nil, err
	}

	mess, err := locale.NewMessages(locale.Resolve(configLang, defaults["lang"]))
	if err != nil {
		recorder.Close()
		return nil, err
	}

	logger, logFile, err := newLogger(logDir, uuid.New().String(), verbose, streams.Stderr)
	if err != nil {
		recorder.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if cfg == nil {
		logger.Warn("running without configuration file", "path", defaults["config_path"])
	}

	a := New(cfg, mess, streams, recorder, logger)
	a.logFile = logFile
	return a, nil
}

// NewConfig returns the config written when the user agrees to create one.
// Its language follows LANG so the first run keeps the language it was
// asked in.
func NewConfig(defaults map[string]string) *config.Config {
	cfg := config.NewConfig()
	cfg.Props.Lang = locale.FromLocaleEnv(defaults["lang"]).String()
	return cfg
}

// OpenHistory opens the run history named by the config file without
// prompting. A missing config file means there is no history.
func OpenHistory(defaults map[string]string) (history.Recorder, error) {
	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return history.NopRecorder{}, nil
		}
		return nil, err
	}
	return newRecorder(cfg, defaults)
}

func newRecorder(cfg *config.Config, defaults map[string]string) (history.Recorder, error) {
	if cfg == nil {
		return history.NopRecorder{}, nil
	}
	hcfg := cfg.History
	if hcfg.Type == "sqlite" && hcfg.DataDir == "" {
		hcfg.DataDir = defaults["base_dir"]
	}
	recorder, err := history.NewRecorderFromConfig(hcfg)
	if err != nil {
		return nil, fmt.Errorf("creating history recorder: %w", err)
	}
	return recorder, nil
}

// New wires a ZeroPassApp from already constructed parts. cfg may be nil.
func New(cfg *config.Config, mess *locale.Messages, streams IO, recorder history.Recorder, logger *slog.Logger) *ZeroPassApp {
	if recorder == nil {
		recorder = history.NopRecorder{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ZeroPassApp{
		cfg:      cfg,
		mess:     mess,
		prompter: streams.Prompter,
		recorder: recorder,
		logger:   logger,
		stdout:   streams.Stdout,
		stderr:   streams.Stderr,
	}
}

// Messages returns the message table of this run.
func (a *ZeroPassApp) Messages() *locale.Messages { return a.mess }

// Config returns the loaded config, or nil when running without one.
func (a *ZeroPassApp) Config() *config.Config { return a.cfg }

// Generate gathers the inputs, derives the password and delivers it.
// Inputs are collected in order: unique, variable, repeat count, method.
func (a *ZeroPassApp) Generate(ctx context.Context, opts Options) error {
	unique, err := a.secret(opts.Unique, a.mess.AskUniquePass)
	if err != nil {
		return err
	}
	variable, err := a.secret(opts.Variable, a.mess.AskVariablePass)
	if err != nil {
		return err
	}

	repeat, err := a.repeat(opts)
	if err != nil {
		return err
	}

	method, err := a.resolveMethod(opts.Method)
	if err != nil {
		return err
	}
	a.logger.Debug("method resolved", "method", method.Name(), "repeat", repeat)

	sink, err := output.NewSinkFromOptions(opts.Output, a.stdout, a.stderr, a.mess)
	if err != nil {
		return err
	}

	password, err := zeropass.NewPasswordBuilder().
		Unique(unique).
		Variable(variable).
		Method(method).
		Repeat(repeat).
		Build()
	if err != nil {
		switch {
		case errors.Is(err, zeropass.ErrInvalidCharacter):
			return localize(a.mess.ErrorInvalidCharacter, err)
		case errors.Is(err, zeropass.ErrMissingSecret):
			return localize(a.mess.ErrorInput, err)
		}
		return err
	}

	if err := sink.Deliver(password); err != nil {
		return err
	}
	a.logger.Info("password derived", "method", method.Name(), "repeat", repeat, "sink", sink.Name())

	if _, err := a.recorder.Record(ctx, method.Name(), repeat, sink.Name()); err != nil {
		a.logger.Warn("recording history failed", "error", err)
	}
	return nil
}

func (a *ZeroPassApp) secret(given, question string) (string, error) {
	if given != "" {
		return given, nil
	}
	s, err := a.prompter.Password(question)
	if err != nil {
		return "", localize(a.mess.ErrorInput, err)
	}
	return s, nil
}

func (a *ZeroPassApp) repeat(opts Options) (uint8, error) {
	raw := opts.Repeat
	if !opts.RepeatSet {
		var err error
		raw, err = a.prompter.Input(a.mess.AskRepeatMethodTimes)
		switch {
		case errors.Is(err, prompt.ErrNoInput):
			// Closed stdin counts as an empty answer.
			raw = ""
		case err != nil:
			return 0, localize(a.mess.ErrorInput, err)
		}
	}

	n, err := prompt.ParseRepeat(raw)
	switch {
	case errors.Is(err, prompt.ErrNotNumber):
		return 0, localize(a.mess.ErrorParse, err)
	case errors.Is(err, prompt.ErrOutOfRange):
		return 0, localize(a.mess.ErrorNumberParse, err)
	case err != nil:
		return 0, err
	}
	return n, nil
}

// resolveMethod picks the method from the flag, then from the config default
// when the user accepts it, then from the interactive menu.
func (a *ZeroPassApp) resolveMethod(name string) (zeropass.Method, error) {
	if name != "" {
		return a.lookupMethod(name)
	}

	if a.cfg != nil {
		useDefault, err := a.prompter.Confirm(a.mess.AskGetSysDefaultMethod)
		if err != nil {
			return nil, localize(a.mess.ErrorInput, err)
		}
		if useDefault {
			if err := a.cfg.Validate(); err != nil {
				return nil, localize(a.mess.ErrorFileProp, err)
			}
			return a.lookupMethod(a.cfg.Props.DefaultMethod)
		}
	}

	choice, err := a.prompter.Select(a.mess.AskMenuMethod, zeropass.Methods())
	if err != nil {
		if errors.Is(err, prompt.ErrInvalidChoice) {
			return nil, localize(a.mess.ErrorUnknownMethod, err)
		}
		return nil, localize(a.mess.ErrorInput, err)
	}
	return a.lookupMethod(choice)
}

func (a *ZeroPassApp) lookupMethod(name string) (zeropass.Method, error) {
	m, err := zeropass.GetMethod(name)
	if err != nil {
		return nil, localize(fmt.Sprintf("%q %s", name, a.mess.ErrorUnknownMethod), err)
	}
	return m, nil
}

// Close releases the history recorder and the log file.
func (a *ZeroPassApp) Close() error {
	var firstErr error
	if err := a.recorder.Close(); err != nil {
		firstErr = fmt.Errorf("closing history: %w", err)
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
