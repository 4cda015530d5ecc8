package tools

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/fezrs/internal/render"
)

// Runner drives a Tool through validate, calculate and export.
type Runner struct {
	log logrus.FieldLogger
}

// NewRunner returns a Runner that logs to log, or to the standard logrus
// logger when log is nil.
func NewRunner(log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{log: log}
}

// Execute validates t, recomputes its output and exports it to dir.
//
// The steps always run in that order and each must succeed before the next
// starts. Unset fields of opts take the tool's defaults. The returned path
// names the new PNG file.
func (r *Runner) Execute(t Tool, dir string, opts render.Options) (string, error) {
	log := r.log.WithField("tool", t.Name())
	opts = opts.WithDefaults(t.DefaultOptions())

	log.WithField("step", "validate").Debug("validating inputs")
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	log.WithField("step", "calculate").Debug("computing output")
	if err := t.Calculate(); err != nil {
		return "", err
	}

	log.WithField("step", "export").Debug("rendering output")
	path, err := t.Export(dir, opts)
	if err != nil {
		return "", err
	}

	log.WithField("path", path).Info("exported")
	return path, nil
}
