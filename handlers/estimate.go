package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/services"
	"estimatebuilder/templates"
)

// HandleEstimatePage renders the estimate builder for the browser's session,
// starting a new estimate on the first visit.
// Route: GET /
func HandleEstimatePage(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			log.Printf("estimate: HandleEstimatePage: %v", err)
			return e.String(http.StatusServiceUnavailable, "Could not start an estimate session")
		}

		var view templates.EstimateView
		_ = sess.With(func(est *services.Estimate) error {
			view = buildView(env, est, nil)
			return nil
		})
		return templates.EstimatePage(view).Render(e.Request.Context(), e.Response)
	}
}

// HandleEstimateReset replaces the session's estimate with a new one: a new
// number and date, no client details and no materials.
// Route: POST /estimate/reset
func HandleEstimateReset(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "estimate: HandleEstimateReset", err)
		}

		est, err := env.newEstimate()
		if err != nil {
			return ServiceErrorToast(e, "estimate: HandleEstimateReset", err)
		}
		sess.Replace(est)

		SetToast(e, "success", "Started estimate "+est.Number)
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/")
			return e.NoContent(http.StatusOK)
		}
		return e.Redirect(http.StatusFound, "/")
	}
}
