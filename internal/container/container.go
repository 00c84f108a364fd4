package container

import (
	"github.com/sirupsen/logrus"

	"github.com/poolmvp/usersvc/config"
	"github.com/poolmvp/usersvc/internal/infrastructure/postgres"
)

// app-level container to share constructed components across packages.
// Router can auto-wire modules from these singletons. The pool manager is
// owned by the application lifecycle; the container only holds a reference.

var (
	cfg    *config.Config
	logger *logrus.Logger
	pool   *postgres.Manager
)

func SetConfig(c *config.Config)  { cfg = c }
func GetConfig() *config.Config   { return cfg }
func SetLogger(l *logrus.Logger)  { logger = l }
func GetLogger() *logrus.Logger   { return logger }
func SetPool(p *postgres.Manager) { pool = p }
func GetPool() *postgres.Manager  { return pool }
