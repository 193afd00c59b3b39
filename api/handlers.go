package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/rightsdesk/catalog"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/scenario"
	"github.com/poiesic/rightsdesk/search"
)

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
}

// UnlockRequest is the body of POST /templates/:id/unlock. Reference is the
// payment or wallet transaction that paid for the template.
type UnlockRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// PhaseRequest is the body of PUT /scenarios/:name/phase.
type PhaseRequest struct {
	Phase *int `json:"phase" binding:"required"`
}

// ResultView is a search result with its display percentage.
type ResultView struct {
	*core.SearchResult
	MatchPercentage int `json:"match_percentage"`
}

// TemplateView is a template with its lock state. The body of a locked
// template is withheld.
type TemplateView struct {
	core.TemplateEntry
	Unlocked bool `json:"unlocked"`
}

// ScenarioView is a guide with the user's progress through it.
type ScenarioView struct {
	*scenario.Guide
	CurrentPhase   int                 `json:"current_phase"`
	CompletedSteps []string            `json:"completed_steps"`
	PhaseProgress  []scenario.Progress `json:"phase_progress"`
	Overall        scenario.Progress   `json:"overall"`
}

func parseID(c *gin.Context) (core.ID, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return core.ID(id), nil
}

// ListRights handles GET /rights. The optional category and q parameters
// filter the guides the way the rights explorer does.
func (s *Server) ListRights(c *gin.Context) {
	entries, err := s.content.RightsEntries(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	rights := catalog.Browse(entries, c.Query("category"), c.Query("q"))
	if rights == nil {
		rights = []*core.RightsEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"rights": rights, "categories": catalog.Categories})
}

// GetRights handles GET /rights/:id.
func (s *Server) GetRights(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	entry, err := s.content.GetRights(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListTemplates handles GET /templates. Bodies of locked templates are withheld.
func (s *Server) ListTemplates(c *gin.Context) {
	ctx := c.Request.Context()
	entries, err := s.content.TemplateEntries(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}

	views := make([]TemplateView, 0, len(entries))
	for _, entry := range entries {
		unlocked, err := s.library.IsTemplateUnlocked(ctx, entry)
		if err != nil {
			s.fail(c, err)
			return
		}
		view := TemplateView{TemplateEntry: *entry, Unlocked: unlocked}
		if !unlocked {
			view.Body = ""
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"templates": views})
}

// UnlockTemplate handles POST /templates/:id/unlock.
func (s *Server) UnlockTemplate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	unlock, err := s.library.Unlock(c.Request.Context(), id, req.Reference)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, unlock)
}

// DownloadTemplate handles GET /templates/:id/download as a plain-text attachment.
func (s *Server) DownloadTemplate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	download, err := s.library.Export(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(download.Content))
}

// Search handles POST /search, returning ranked results and the advisory.
func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	outcome, err := s.searcher.SearchCatalog(c.Request.Context(), req.Query)
	if err != nil {
		s.fail(c, err)
		return
	}

	results := make([]ResultView, 0, len(outcome.Results))
	for _, result := range outcome.Results {
		results = append(results, ResultView{SearchResult: result, MatchPercentage: search.MatchPercentage(result)})
	}
	c.JSON(http.StatusOK, gin.H{
		"query":    outcome.Query,
		"results":  results,
		"advisory": outcome.Advisory,
	})
}

// Suggestions handles GET /suggestions.
func (s *Server) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": search.Suggestions})
}

// ListSaved handles GET /saved.
func (s *Server) ListSaved(c *gin.Context) {
	saved, err := s.library.Saved(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// SaveRights handles POST /saved/rights/:id.
func (s *Server) SaveRights(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	added, err := s.library.SaveRights(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// SaveTemplate handles POST /saved/templates/:id.
func (s *Server) SaveTemplate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	added, err := s.library.SaveTemplate(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// RemoveSaved handles DELETE /saved/:kind/:id.
func (s *Server) RemoveSaved(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	kind, err := core.ParseKind(c.Param("kind"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.library.Remove(c.Request.Context(), kind, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListScenarios handles GET /scenarios.
func (s *Server) ListScenarios(c *gin.Context) {
	guides := make([]gin.H, 0, len(scenario.Names()))
	for _, name := range scenario.Names() {
		g := scenario.Lookup(name)
		guides = append(guides, gin.H{"name": g.Name, "title": g.Title, "description": g.Description})
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": guides})
}

// GetScenario handles GET /scenarios/:name. Unknown names fall back to the
// default guide.
func (s *Server) GetScenario(c *gin.Context) {
	checklist, err := s.tracker.Load(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, scenarioView(checklist))
}

// ToggleStep handles POST /scenarios/:name/steps/:step/toggle.
func (s *Server) ToggleStep(c *gin.Context) {
	checklist, err := s.tracker.Toggle(c.Request.Context(), c.Param("name"), c.Param("step"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, scenarioView(checklist))
}

// SetPhase handles PUT /scenarios/:name/phase.
func (s *Server) SetPhase(c *gin.Context) {
	var req PhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	checklist, err := s.tracker.SetPhase(c.Request.Context(), c.Param("name"), *req.Phase)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, scenarioView(checklist))
}

func scenarioView(checklist *scenario.Checklist) ScenarioView {
	snap := checklist.Snapshot()
	view := ScenarioView{
		Guide:          checklist.Guide,
		CurrentPhase:   checklist.CurrentPhase(),
		CompletedSteps: snap.CompletedSteps,
		Overall:        checklist.OverallProgress(),
	}
	if view.CompletedSteps == nil {
		view.CompletedSteps = []string{}
	}
	for i := range checklist.Guide.Phases {
		p, _ := checklist.PhaseProgress(i)
		view.PhaseProgress = append(view.PhaseProgress, p)
	}
	return view
}
