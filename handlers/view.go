package handlers

import (
	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/services"
	"estimatebuilder/templates"
)

// buildView maps the estimate onto the page view model.
func buildView(env *Env, est *services.Estimate, report *templates.ImportReport) templates.EstimateView {
	branding := env.Settings.Branding()

	v := templates.EstimateView{
		Title:       branding.Title,
		Subtitle:    branding.Subtitle,
		Number:      est.Number,
		Date:        est.Date,
		ClientName:  est.ClientName,
		ClientEmail: est.ClientEmail,
		Currency:    string(est.Currency),
		TotalText:   services.FormatMoney(est.Currency, est.Total()),
		Import:      report,
	}

	for _, c := range services.CurrencyOptions {
		v.Currencies = append(v.Currencies, templates.Option{
			Value:    string(c),
			Label:    c.Label(),
			Selected: c == est.Currency,
		})
	}
	for _, u := range services.UnitOptions {
		v.Units = append(v.Units, templates.Option{Value: string(u), Label: string(u)})
	}
	for _, s := range services.CableStandardOptions {
		v.CableStandards = append(v.CableStandards, templates.Option{Value: s, Label: s})
	}

	for _, item := range est.Items {
		v.Items = append(v.Items, templates.ItemRow{
			ID:        item.ID,
			Name:      item.Name,
			Brand:     services.OrNotAvailable(item.Brand),
			QtyUnit:   services.FormatQtyUnit(item),
			PriceText: services.FormatPrice(est.Currency, item.Price),
			TotalText: services.FormatMoney(est.Currency, services.LineTotal(item)),
			IsCable:   item.IsCable,
		})
	}
	return v
}

// renderMaterials writes the materials section for the current estimate.
func renderMaterials(env *Env, e *core.RequestEvent, est *services.Estimate, report *templates.ImportReport) error {
	return templates.MaterialsSection(buildView(env, est, report)).Render(e.Request.Context(), e.Response)
}
