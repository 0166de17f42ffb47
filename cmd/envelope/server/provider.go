package server

import (
	"github.com/google/wire"
	"github.com/ncobase/envelope/concurrency/worker"
)

// ProviderSet is the wire provider set of the widget server
var ProviderSet = wire.NewSet(worker.ProviderSet, NewStore, NewJobs, NewHandler, NewApp)
