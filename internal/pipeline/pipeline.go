// Package pipeline turns one raw PBX XML export into a CanonicalReport.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"pbx-insights-go/internal/classifier"
	"pbx-insights-go/internal/extractor"
	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/types"
)

// ErrEmptyDocument is wrapped by ParseError for blank input.
var ErrEmptyDocument = errors.New("empty XML document")

// ParseError means the document could not be read as XML. It is the only
// error Analyze returns.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid XML format: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Engine struct {
	log       *logger.Logger
	extractor *extractor.Extractor
}

func New(log *logger.Logger) *Engine {
	return &Engine{
		log:       log.Component("pipeline"),
		extractor: extractor.New(log),
	}
}

// Analyze parses, classifies and assembles one document. Field-level
// problems degrade to zero values; only unreadable XML is an error.
func (e *Engine) Analyze(raw []byte) (*types.CanonicalReport, error) {
	doc, err := parse(raw)
	if err != nil {
		e.log.WithError(err).Error("xml parse failed")
		return nil, err
	}

	cls := classifier.Classify(doc)
	entry := e.log.WithField("report_type", cls.Type).WithField("indicator", cls.Indicator)
	if cls.Defaulted {
		entry.Warn("no indicator tag matched, defaulting to acd")
	} else {
		entry.Info("report type detected")
	}

	schema, ok := extractor.SchemaFor(cls.Type)
	if !ok {
		return unsupportedReport(cls), nil
	}
	return Assemble(cls, e.extractor.Extract(doc, schema)), nil
}

func parse(raw []byte) (*etree.Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{Err: ErrEmptyDocument}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Root() == nil {
		return nil, &ParseError{Err: errors.New("no root element")}
	}
	return doc, nil
}
