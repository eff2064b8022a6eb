package controllers

import (
	"net/http"

	"github.com/mercatoapp/mercato-backend/api/responses"
	"github.com/mercatoapp/mercato-backend/internal/catalog"
	pkgerrors "github.com/mercatoapp/mercato-backend/pkg/errors"
	"github.com/mercatoapp/mercato-backend/pkg/logger"
)

// CatalogMenu serves the fast-food categories with their products.
func CatalogMenu(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return catalogHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Menu(r.Context())
	})
}

// Home serves the landing feed highlights.
func Home(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return catalogHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Home(r.Context())
	})
}

// Restaurants serves the restaurant vertical with dishes.
func Restaurants(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return catalogHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Restaurants(r.Context())
	})
}

// Market serves the grocery vertical grouped by aisle.
func Market(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return catalogHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Market(r.Context())
	})
}

// Pharmacy serves the pharmacy vertical grouped by lab.
func Pharmacy(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return catalogHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Pharmacy(r.Context())
	})
}

// Liquor serves the liquor vertical grouped by type.
func Liquor(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return catalogHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Liquor(r.Context())
	})
}

// Pets serves the pet shop vertical grouped by animal.
func Pets(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return catalogHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Pets(r.Context())
	})
}

func catalogHandler(svc *catalog.Service, logg *logger.Logger, load func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		result, err := load(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
