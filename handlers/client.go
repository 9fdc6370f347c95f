package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/services"
)

// clientUpdates maps the submitted client form fields onto estimate updates.
// Fields absent from the form are left alone.
func clientUpdates(e *core.RequestEvent) []services.Update {
	var updates []services.Update
	if _, ok := e.Request.PostForm["client_name"]; ok {
		updates = append(updates, services.SetClientName(e.Request.PostFormValue("client_name")))
	}
	if _, ok := e.Request.PostForm["client_email"]; ok {
		updates = append(updates, services.SetClientEmail(e.Request.PostFormValue("client_email")))
	}
	if _, ok := e.Request.PostForm["currency"]; ok {
		updates = append(updates, services.SetCurrency(e.Request.PostFormValue("currency")))
	}
	return updates
}

// HandleUpdateClient applies client name, email and currency changes.
// Route: POST /client
func HandleUpdateClient(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "client: HandleUpdateClient", err)
		}
		return sess.With(func(est *services.Estimate) error {
			if err := est.Apply(clientUpdates(e)...); err != nil {
				return ServiceErrorToast(e, "client: HandleUpdateClient", err)
			}
			return renderMaterials(env, e, est, nil)
		})
	}
}
