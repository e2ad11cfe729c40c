// Package handlers demonstrates wiring the template parser and data source
// manager behind rex HTTP handlers, the way an editor backend would expose
// them to its UI panels.
package handlers

import (
	"github.com/abiiranathan/rex"

	"github.com/abiiranathan/tmplvars/datasource"
	"github.com/abiiranathan/tmplvars/parser"
)

// API holds service dependencies.
type API struct {
	Sources *datasource.Manager
}

// NewAPI creates the handler set around one source manager.
func NewAPI(sources *datasource.Manager) *API {
	return &API{Sources: sources}
}

// templateRequest is the body of the extract and validate endpoints.
type templateRequest struct {
	Template string `json:"template"`
	// Optional delimiter override.
	OpenDelim  string `json:"openDelim"`
	CloseDelim string `json:"closeDelim"`
}

func (r templateRequest) options() []parser.Option {
	if r.OpenDelim == "" && r.CloseDelim == "" {
		return nil
	}
	return []parser.Option{parser.WithDelimiters(r.OpenDelim, r.CloseDelim)}
}

// ExtractVariables handles POST /api/extract: template in, extraction
// result out.
func (a *API) ExtractVariables() rex.HandlerFunc {
	return func(c *rex.Context) error {
		var req templateRequest
		if err := c.BodyParser(&req); err != nil {
			return err
		}
		return c.JSON(parser.ExtractVariables(req.Template, req.options()...))
	}
}

// ValidateTemplate handles POST /api/validate.
func (a *API) ValidateTemplate() rex.HandlerFunc {
	return func(c *rex.Context) error {
		var req templateRequest
		if err := c.BodyParser(&req); err != nil {
			return err
		}
		return c.JSON(parser.Validate(req.Template, req.options()...))
	}
}

// ListSources handles GET /api/sources.
func (a *API) ListSources() rex.HandlerFunc {
	return func(c *rex.Context) error {
		return c.JSON(a.Sources.ExportConfig())
	}
}

// TestSource handles GET /api/sources/{id}/test. Fetch failures come back
// as a structured probe result, never a 500.
func (a *API) TestSource() rex.HandlerFunc {
	return func(c *rex.Context) error {
		id := c.Param("id")
		return c.JSON(a.Sources.TestConnection(c.Request.Context(), id))
	}
}

// FetchSource handles POST /api/sources/{id}/fetch.
func (a *API) FetchSource() rex.HandlerFunc {
	return func(c *rex.Context) error {
		id := c.Param("id")
		data, err := a.Sources.Fetch(c.Request.Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(data)
	}
}
