//go:build wireinject

package server

import (
	"github.com/google/wire"
	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/logging/logger"
	"github.com/ncobase/envelope/net/resp"
)

// InitializeApp wires configuration, logger, dispatcher and the widget
// server. The cleanup function drains the worker pool, then flushes and
// closes the logger.
func InitializeApp(path string) (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		resp.ProviderSet,
		ProviderSet,
	))
}
