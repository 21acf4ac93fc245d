package server

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/san-kum/wellview/internal/pick"
	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
	"github.com/san-kum/wellview/internal/storage"
	"github.com/san-kum/wellview/internal/survey"
)

type wellInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Structure  string  `json:"structure,omitempty"`
	Components int     `json:"components"`
	Stations   int     `json:"stations"`
	MaxMD      float64 `json:"max_md"`
}

type summaryResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Summary survey.Summary `json:"summary"`
}

type pickRequest struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Pitch       float64 `json:"pitch"`
	Yaw         float64 `json:"yaw"`
	Zoom        float64 `json:"zoom,omitempty"`
	WellID      string  `json:"well_id"`
	ComponentID string  `json:"component_id"`
}

type pickResponse struct {
	Hit        bool       `json:"hit"`
	DrawableID string     `json:"drawable_id,omitempty"`
	Part       string     `json:"part,omitempty"`
	Selection  pick.Event `json:"selection"`
}

// ListWells returns every well in field order.
func (s *Server) ListWells(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wells := make([]wellInfo, 0, len(s.field.Wells))
	for _, w := range s.field.Wells {
		wells = append(wells, wellInfo{
			ID:         w.ID,
			Name:       w.Name,
			Kind:       string(w.Kind),
			Structure:  string(w.Structure),
			Components: len(w.Components),
			Stations:   len(w.Survey),
			MaxMD:      w.MaxMD(),
		})
	}
	return c.JSON(fiber.Map{"name": s.field.Name, "wells": wells})
}

// WellSummary reports total MD, final TVD and horizontal displacement.
func (s *Server) WellSummary(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.field.Well(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "well not found"})
	}
	sum, ok := survey.Summarize(s.cache.Path(w))
	if !ok {
		return c.Status(422).JSON(fiber.Map{"error": "well has no survey"})
	}
	return c.JSON(summaryResponse{ID: w.ID, Name: w.Name, Summary: sum})
}

// WellPath writes the computed path as JSON, or CSV with ?format=csv.
func (s *Server) WellPath(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.field.Well(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "well not found"})
	}
	path := s.cache.Path(w)

	if c.Query("format") == "csv" {
		c.Set("Content-Type", "text/csv")
		return storage.WritePathCSV(c.Response().BodyWriter(), path)
	}
	sum, _ := survey.Summarize(path)
	return c.JSON(storage.PathExport{WellID: w.ID, Name: w.Name, Summary: sum, Points: path})
}

// RenderSVG draws the field at the rotation in the query.
func (s *Server) RenderSVG(c fiber.Ctx) error {
	state := scene.NewViewportState()
	var err error
	if state.Rotation.Pitch, err = queryFloat(c, "pitch", state.Rotation.Pitch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid pitch"})
	}
	if state.Rotation.Yaw, err = queryFloat(c, "yaw", state.Rotation.Yaw); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid yaw"})
	}
	zoom, err := queryFloat(c, "zoom", 1)
	if err != nil || zoom < scene.MinZoom || zoom > scene.MaxZoom {
		return c.Status(400).JSON(fiber.Map{"error": "invalid zoom"})
	}
	state.SelectedWellID = c.Query("well")
	state.SelectedComponentID = c.Query("component")

	s.mu.Lock()
	_, fr := s.frame(state)
	bg := s.builder.Palette.Background
	s.mu.Unlock()

	for _, w := range fr.Warnings {
		s.log.Warn("component outside survey", "well", w.WellID, "component", w.ComponentID,
			"top", w.Top, "bottom", w.Bottom)
	}

	z := s.zoomAt(zoom)
	svg := render.SVG(fr.Drawables, render.SVGOptions{
		Width:      int(s.opt.Width),
		Height:     int(s.opt.Height),
		Zoom:       z,
		Background: bg,
	})
	c.Set("Content-Type", "image/svg+xml")
	c.Set("X-Wellview-Warnings", strconv.Itoa(len(fr.Warnings)))
	return c.SendString(svg)
}

// Pick resolves a click against the frame the client is showing and
// returns the selection that results from it.
func (s *Server) Pick(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "body required"})
	}
	var req pickRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if req.Zoom == 0 {
		req.Zoom = 1
	}
	if req.Zoom < scene.MinZoom || req.Zoom > scene.MaxZoom {
		return c.Status(400).JSON(fiber.Map{"error": "invalid zoom"})
	}

	state := scene.ViewportState{
		Rotation:            scene.Rotation{Pitch: req.Pitch, Yaw: req.Yaw},
		SelectedWellID:      req.WellID,
		SelectedComponentID: req.ComponentID,
	}

	s.mu.Lock()
	_, fr := s.frame(state)
	s.mu.Unlock()

	hit, ok := pick.NewPicker().HitTest(fr.Drawables, s.zoomAt(req.Zoom), scene.Point2{X: req.X, Y: req.Y})

	sel := pick.NewSelection(&state, nil, nil)
	resp := pickResponse{Hit: ok}
	if ok {
		resp.DrawableID = hit.DrawableID
		resp.Part = string(hit.Tag.Part)
		resp.Selection = sel.Click(&hit)
	} else {
		resp.Selection = sel.Click(nil)
	}
	return c.JSON(resp)
}

// zoomAt is the screen transform for zoom factor k about the view center,
// shared by rendering and picking.
func (s *Server) zoomAt(k float64) scene.ZoomTransform {
	center := scene.Point2{X: s.opt.Width / 2, Y: s.opt.Height / 2}
	return scene.CenteredZoom(s.opt.Width, s.opt.Height).ScaleBy(k, center)
}

func queryFloat(c fiber.Ctx, key string, def float64) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}
