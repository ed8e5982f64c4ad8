package webapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coffeebar-server-go/internal/domain/auth"
	"coffeebar-server-go/internal/domain/drink"
	httptransport "coffeebar-server-go/internal/transport/http"
)

// Permission strings the issuer grants per staff role.
const (
	PermGetDrinksDetail = "get:drinks-detail"
	PermPostDrinks      = "post:drinks"
	PermPatchDrinks     = "patch:drinks"
	PermDeleteDrinks    = "delete:drinks"
)

// DrinksService owns the drink catalog routes.
type DrinksService struct {
	logger   *slog.Logger
	repo     drink.Repository
	verifier *auth.Verifier
}

func NewDrinksService(repo drink.Repository, verifier *auth.Verifier, logger *slog.Logger) *DrinksService {
	return &DrinksService{
		logger:   logger,
		repo:     repo,
		verifier: verifier,
	}
}

// Register wires the catalog routes onto the engine, binding the required
// permission per route.
func (s *DrinksService) Register(engine *gin.Engine) {
	guard := func(permission string) gin.HandlerFunc {
		return httptransport.RequirePermission(s.verifier, permission)
	}

	engine.GET("/drinks", s.handleList)
	engine.GET("/drinks-detail", guard(PermGetDrinksDetail), s.handleListDetail)
	engine.POST("/drinks", guard(PermPostDrinks), s.handleCreate)
	engine.PATCH("/drinks/:id", guard(PermPatchDrinks), s.handleUpdate)
	engine.DELETE("/drinks/:id", guard(PermDeleteDrinks), s.handleDelete)

	engine.GET("/healthz", s.handleHealth)
}

// drinkRequest is the POST/PATCH body. Both fields are optional on PATCH;
// a missing field decodes to its zero value.
type drinkRequest struct {
	Title  string             `json:"title"`
	Recipe []drink.Ingredient `json:"recipe"`
}

func (s *DrinksService) handleList(c *gin.Context) {
	drinks, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if len(drinks) == 0 {
		respondNotFound(c)
		return
	}

	views := make([]drink.ShortView, len(drinks))
	for i, d := range drinks {
		views[i] = d.Short()
	}
	respondDrinks(c, views)
}

func (s *DrinksService) handleListDetail(c *gin.Context) {
	drinks, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if len(drinks) == 0 {
		respondNotFound(c)
		return
	}

	respondDrinks(c, longViews(drinks))
}

func (s *DrinksService) handleCreate(c *gin.Context) {
	var req drinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, err)
		return
	}

	// A null recipe is accepted here and rejected by the storage layer,
	// which surfaces as 422.
	d := &drink.Drink{Title: req.Title, Recipe: req.Recipe}
	if err := s.repo.Create(c.Request.Context(), d); err != nil {
		s.respondError(c, err)
		return
	}

	if claims := httptransport.ClaimsFrom(c); claims != nil {
		s.logger.Info("drink created", "id", d.ID, "title", d.Title, "subject", claims.Subject)
	}
	respondDrinks(c, d.Long())
}

func (s *DrinksService) handleUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	var req drinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, err)
		return
	}

	// Fields are applied only when truthy: an empty title or an empty or
	// null recipe counts as "not supplied". Existing clients depend on
	// this, so it stays even though it makes an empty value unreachable
	// through PATCH.
	upd := drink.Update{}
	if req.Title != "" {
		upd.Title = &req.Title
	}
	if len(req.Recipe) > 0 {
		upd.Recipe = req.Recipe
	}

	if _, err := s.repo.Update(c.Request.Context(), id, upd); err != nil {
		s.respondError(c, err)
		return
	}

	drinks, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondDrinks(c, longViews(drinks))
}

func (s *DrinksService) handleDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	if err := s.repo.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	if claims := httptransport.ClaimsFrom(c); claims != nil {
		s.logger.Info("drink deleted", "id", id, "subject", claims.Subject)
	}
	respondDeleted(c, id)
}

func (s *DrinksService) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func longViews(drinks []*drink.Drink) []drink.LongView {
	views := make([]drink.LongView, len(drinks))
	for i, d := range drinks {
		views[i] = d.Long()
	}
	return views
}
