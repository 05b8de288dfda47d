// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package log provides the global loggers used across the ledger. Callers grab
// the shared instance via L() or S() instead of threading loggers through
// constructors; InitLoggers reconfigures the globals from the YAML config.
package log

import (
	stdlog "log"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GlobalConfig defines the global logger configurations.
type GlobalConfig struct {
	Zap            *zap.Config `json:"zap" yaml:"zap"`
	StdLogRedirect bool        `json:"stdLogRedirect" yaml:"stdLogRedirect"`
}

var (
	_logMu      sync.RWMutex
	_subLoggers map[string]*zap.Logger
)

func init() {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.Level.SetLevel(zap.InfoLevel)
	l, err := zapCfg.Build()
	if err != nil {
		stdlog.Println("Failed to init zap global logger, no zap log will be shown till zap is properly initialized: ", err)
		return
	}
	zap.ReplaceGlobals(l)
	_subLoggers = make(map[string]*zap.Logger)
}

// L wraps the zap global logger.
func L() *zap.Logger { return zap.L() }

// S wraps the zap sugared global logger.
func S() *zap.SugaredLogger { return zap.S() }

// Logger returns the logger of the given name, falling back to the global one.
func Logger(name string) *zap.Logger {
	_logMu.RLock()
	defer _logMu.RUnlock()
	logger, ok := _subLoggers[name]
	if !ok {
		return L()
	}
	return logger
}

// InitLoggers initializes the global logger and the named sub loggers.
func InitLoggers(globalCfg GlobalConfig, subCfgs map[string]GlobalConfig, opts ...zap.Option) error {
	if _, exists := subCfgs["global"]; exists {
		return errors.New("'global' is a reserved name for the global logger")
	}
	subCfgs["global"] = globalCfg
	for name, cfg := range subCfgs {
		if name != "global" {
			if _, exists := _subLoggers[name]; exists {
				return errors.Errorf("duplicate sub logger name: %s", name)
			}
		}
		if cfg.Zap == nil {
			zapCfg := zap.NewProductionConfig()
			cfg.Zap = &zapCfg
		} else {
			cfg.Zap.EncoderConfig = zap.NewProductionEncoderConfig()
		}
		logger, err := cfg.Zap.Build(opts...)
		if err != nil {
			return errors.Wrapf(err, "failed to build logger %s", name)
		}

		_logMu.Lock()
		if name == "global" {
			zap.ReplaceGlobals(logger)
			if cfg.StdLogRedirect {
				zap.RedirectStdLog(logger)
			}
		} else {
			_subLoggers[name] = logger
		}
		_logMu.Unlock()
	}
	return nil
}
