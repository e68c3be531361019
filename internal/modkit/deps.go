package modkit

import (
	"commitmetrics/internal/platform/config"
	"commitmetrics/internal/platform/logger"
	"commitmetrics/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	KV  store.KV
}
