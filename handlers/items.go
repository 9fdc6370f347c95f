package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"estimatebuilder/services"
	"estimatebuilder/templates"
)

// parseMaterialForm reads the material form. Numeric fields that do not
// parse are reported with the same wording the import uses.
func parseMaterialForm(e *core.RequestEvent) (services.MaterialInput, error) {
	form := func(key string) string {
		return strings.TrimSpace(e.Request.FormValue(key))
	}

	in := services.MaterialInput{
		Name:          form("name"),
		Unit:          form("unit"),
		IsCable:       checkbox(form("is_cable")),
		CableStandard: form("cable_standard"),
		OtherStandard: form("other_standard"),
		Brand:         form("brand"),
	}

	var err error
	if v := form("quantity"); v != "" {
		if in.Quantity, err = cast.ToFloat64E(v); err != nil {
			return in, &services.ValidationError{Fields: map[string]string{"quantity": "Quantity must be a number"}}
		}
	}
	if v := form("price"); v != "" {
		if in.Price, err = cast.ToFloat64E(v); err != nil {
			return in, &services.ValidationError{Fields: map[string]string{"price": "Price must be a number"}}
		}
	}
	return in, nil
}

// checkbox reports whether a checkbox value means checked. Browsers send
// "on" when the input has no explicit value.
func checkbox(v string) bool {
	return v == "on" || cast.ToBool(v)
}

// HandleAddItem validates the material form and appends the material.
// Route: POST /items
func HandleAddItem(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		in, err := parseMaterialForm(e)
		if err != nil {
			return ServiceErrorToast(e, "items: HandleAddItem", err)
		}
		item, err := services.NewMaterialItem(in)
		if err != nil {
			return ServiceErrorToast(e, "items: HandleAddItem", err)
		}

		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "items: HandleAddItem", err)
		}
		return sess.With(func(est *services.Estimate) error {
			est.AddItem(item)
			SetToast(e, "success", "Material added successfully")
			return renderMaterials(env, e, est, nil)
		})
	}
}

// HandleRemoveItem removes a material by id. Unknown ids leave the list as is.
// Route: DELETE /items/{id}
func HandleRemoveItem(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("id")
		if itemID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing material ID")
		}

		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "items: HandleRemoveItem", err)
		}
		return sess.With(func(est *services.Estimate) error {
			if est.Items.Has(itemID) {
				est.RemoveItem(itemID)
				SetToast(e, "success", "Material removed")
			}
			return renderMaterials(env, e, est, nil)
		})
	}
}

// HandleImportItems adds every valid row of an uploaded CSV or XLSX file and
// reports the rows that were skipped.
// Route: POST /items/import
func HandleImportItems(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(services.MaxImportSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseItemsFile(file, header.Filename)
		if err != nil {
			return ServiceErrorToast(e, "items: HandleImportItems", err)
		}

		items := make([]services.MaterialItem, 0, len(result.Items))
		for _, in := range result.Items {
			item, err := services.NewMaterialItem(in)
			if err != nil {
				// Rows were validated during parsing.
				log.Printf("items: HandleImportItems: %v", err)
				continue
			}
			items = append(items, item)
		}

		report := &templates.ImportReport{
			FileName:  header.Filename,
			TotalRows: result.TotalRows,
			Added:     len(items),
		}
		for _, ie := range result.Errors {
			report.Errors = append(report.Errors, templates.ImportRowError{Row: ie.Row, Field: ie.Field, Message: ie.Message})
		}

		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "items: HandleImportItems", err)
		}
		sess.SetImportErrors(result.Errors)
		return sess.With(func(est *services.Estimate) error {
			for _, item := range items {
				est.AddItem(item)
			}

			switch {
			case len(items) == 0:
				SetToast(e, "error", "No materials could be imported")
			case len(result.Errors) > 0:
				SetToast(e, "warning", fmt.Sprintf("Imported %d materials, %d rows skipped", len(items), result.ErrorRows()))
			default:
				SetToast(e, "success", fmt.Sprintf("Imported %d materials", len(items)))
			}
			return renderMaterials(env, e, est, report)
		})
	}
}

// HandleImportErrorReport downloads the rows skipped by the last import as
// an xlsx file.
// Route: GET /items/import/errors
func HandleImportErrorReport(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "items: HandleImportErrorReport", err)
		}

		errs := sess.ImportErrors()
		if len(errs) == 0 {
			return ErrorToast(e, http.StatusNotFound, "No import errors to download")
		}

		data, err := services.GenerateImportErrorReport(errs)
		if err != nil {
			log.Printf("items: HandleImportErrorReport: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate error report")
		}
		return sendAttachment(e, xlsxContentType, "material_import_errors.xlsx", data)
	}
}

// HandleItemsTemplate downloads the item file template.
// Route: GET /items/template
func HandleItemsTemplate(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.GenerateItemsTemplate()
		if err != nil {
			log.Printf("items: HandleItemsTemplate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		return sendAttachment(e, xlsxContentType, "materials_template.xlsx", data)
	}
}
