package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/services"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	emlContentType  = "message/rfc822"
)

// sendAttachment writes data as a file download.
func sendAttachment(e *core.RequestEvent, contentType, filename string, data []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.Response.Write(data)
	return err
}

// renderPDF generates the PDF of est and its download name.
func renderPDF(env *Env, est *services.Estimate) ([]byte, string, error) {
	if err := services.RequireItems(est); err != nil {
		return nil, "", err
	}
	pdf, err := services.GenerateEstimatePDF(est, env.Settings.Branding())
	if err != nil {
		return nil, "", err
	}
	return pdf, services.ExportFilename(est.Number, env.Now(), "pdf"), nil
}

// HandleExportPDF downloads the estimate as a PDF.
// Route: GET /export/pdf
func HandleExportPDF(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "export: HandleExportPDF", err)
		}
		return sess.With(func(est *services.Estimate) error {
			pdf, filename, err := renderPDF(env, est)
			if err != nil {
				return ServiceErrorToast(e, "export: HandleExportPDF", err)
			}
			return sendAttachment(e, pdfContentType, filename, pdf)
		})
	}
}

// HandleExportExcel downloads the estimate as an xlsx workbook.
// Route: GET /export/excel
func HandleExportExcel(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := currentSession(env, e)
		if err != nil {
			return ServiceErrorToast(e, "export: HandleExportExcel", err)
		}
		return sess.With(func(est *services.Estimate) error {
			if err := services.RequireItems(est); err != nil {
				return ServiceErrorToast(e, "export: HandleExportExcel", err)
			}
			xlsx, err := services.GenerateEstimateExcel(est, env.Settings.Branding())
			if err != nil {
				return ServiceErrorToast(e, "export: HandleExportExcel", err)
			}
			return sendAttachment(e, xlsxContentType, services.ExportFilename(est.Number, env.Now(), "xlsx"), xlsx)
		})
	}
}
