// Package router binds the public API endpoints to their backing services.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexusai/newsnexus/internal/apperr"
	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/storage"
)

type FeedRouter struct {
	e      *echo.Echo
	reader storage.Reader
}

func NewFeedRouter(e *echo.Echo, reader storage.Reader) *FeedRouter {
	return &FeedRouter{
		e:      e,
		reader: reader,
	}
}

func (r *FeedRouter) Bind() {
	r.e.GET("/api/feed", r.feedHandler)
	r.e.GET("/api/search", r.searchHandler)
}

func (r *FeedRouter) feedHandler(c echo.Context) error {
	sectorParam := c.QueryParam("sector")

	sector, err := domain.ParseSector(sectorParam)
	if err != nil {
		return apperr.NewValidationWrap("invalid sector", err)
	}

	articles, err := r.reader.ListBySector(c.Request().Context(), &sector, storage.DefaultFeedLimit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, articles)
}

func (r *FeedRouter) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperr.NewValidation(`query parameter "q" is required`)
	}

	results, err := r.reader.Search(c.Request().Context(), query, storage.SearchLimit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, results)
}
