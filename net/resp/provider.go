package resp

import (
	"github.com/google/wire"
	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/logging/logger"
)

// ProviderSet is the wire provider set for the resp package
var ProviderSet = wire.NewSet(ProvideDispatcher)

// ProvideDispatcher creates a dispatcher with the default formatter
func ProvideDispatcher(cfg *config.Response, l *logger.Logger) *Dispatcher {
	return New(WithConfig(cfg), WithLogger(l))
}
