// Package tools wires bands, transforms and rendering into the five FEZrs
// calculators and runs them.
//
// A Tool owns its loaded bands, its configuration and one output slot. The
// life cycle is always Validate, Calculate, Export:
//
//	t, err := tools.NewSaturation(bands.Paths{bands.NIR: nir, bands.Green: g, bands.Blue: b})
//	if err != nil {
//	    return err
//	}
//	path, err := tools.NewRunner(nil).Execute(t, "out", render.Options{Title: "Scene"})
//
// Export before a successful Calculate fails with errdefs.ErrNotComputed.
// A failed Calculate clears any previous output.
//
// Tools are not safe for concurrent use. Share a bands.Cache between tools
// instead of sharing tools.
package tools
