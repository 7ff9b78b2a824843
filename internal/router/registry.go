package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	logger      *logrus.Logger
	global      []gin.HandlerFunc
	middlewares []gin.HandlerFunc
	root        []Module
	modules     []Module
}

func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{Engine: engine, API: engine.Group("/api"), logger: logger}
}

// UseGlobal adds middleware in front of every module, root and /api alike.
func (r *Registry) UseGlobal(mw ...gin.HandlerFunc) {
	r.global = append(r.global, mw...)
}

// Use adds middleware shared by the /api modules.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// AddRoot mounts a module at the engine root instead of /api.
func (r *Registry) AddRoot(mod Module) {
	r.root = append(r.root, mod)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// Modules returns module names in mount order, root modules first.
func (r *Registry) Modules() []string {
	names := make([]string, 0, len(r.root)+len(r.modules))
	for _, m := range r.root {
		names = append(names, m.Name())
	}
	for _, m := range r.modules {
		names = append(names, m.Name())
	}
	return names
}

// RegisterAll applies middleware, then mounts every module.
func (r *Registry) RegisterAll() {
	root := r.Engine.Group("")
	if len(r.global) > 0 {
		root.Use(r.global...)
		r.API.Use(r.global...)
	}
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.root {
		m.Register(root)
		r.logger.WithField("module", m.Name()).Debug("module registered")
	}
	for _, m := range r.modules {
		m.Register(r.API)
		r.logger.WithField("module", m.Name()).Debug("module registered")
	}
	r.logger.WithField("routes", len(r.Engine.Routes())).Info("router ready")
}
