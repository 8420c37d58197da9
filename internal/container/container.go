// Package container provides dependency injection for the camt-ynab application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/camt-ynab/internal/camtparser"
	"fjacquet/camt-ynab/internal/categorizer"
	"fjacquet/camt-ynab/internal/config"
	"fjacquet/camt-ynab/internal/fileutils"
	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/pipeline"
	"fjacquet/camt-ynab/internal/ynabcsv"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; dependencies are only reachable
// through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	reader      fileutils.Reader
	parser      *camtparser.Parser
	categorizer *categorizer.Categorizer
	serializer  *ynabcsv.Serializer
	pipeline    *pipeline.Pipeline
}

// NewContainer creates and wires all application dependencies with a logrus
// logger built from cfg and the local filesystem as input.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return NewContainerWith(cfg, logger, fileutils.NewOSReader(logger))
}

// NewContainerWith wires the dependencies around the given logger and reader.
// Payee patterns are compiled here, so a bad pattern surfaces as a
// PatternError before any file is read.
func NewContainerWith(cfg *config.Config, logger logging.Logger, reader fileutils.Reader) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	if reader == nil {
		reader = fileutils.NewOSReader(logger)
	}

	rules, err := categorizer.CompileRules(cfg.PayeeRules)
	if err != nil {
		logger.WithError(err).Error("Failed to compile payee rules")
		return nil, err
	}

	cat := categorizer.New(cfg.AccountAlias, rules, logger)
	camt := camtparser.NewParser(logger)
	serializer := ynabcsv.NewSerializer(cfg.DelimiterRune(), logger)
	p := pipeline.New(reader, camt, cat, serializer, logger)

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldConfig, Value: cfg.Path},
		logging.Field{Key: "aliases", Value: len(cfg.AccountAlias)},
		logging.Field{Key: "rules", Value: len(rules)})

	return &Container{
		logger:      logger,
		config:      cfg,
		reader:      reader,
		parser:      camt,
		categorizer: cat,
		serializer:  serializer,
		pipeline:    p,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetParser returns the CAMT.053 parser.
func (c *Container) GetParser() *camtparser.Parser {
	return c.parser
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetSerializer returns the YNAB CSV serializer.
func (c *Container) GetSerializer() *ynabcsv.Serializer {
	return c.serializer
}

// GetPipeline returns the conversion pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}
