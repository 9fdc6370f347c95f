package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/commands"
	"estimatebuilder/config"
	"estimatebuilder/handlers"
)

func main() {
	settings, err := config.Load(os.Getenv("ESTIMATE_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()
	env := handlers.NewEnv(settings)

	// Offline export: `app estimate --items items.csv ...`
	app.RootCmd.AddCommand(commands.NewEstimateCommand(settings))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Every estimate route works on the browser's session estimate
		estimate := se.Router.Group("")
		estimate.BindFunc(handlers.SessionMiddleware(env))

		// ── Page ─────────────────────────────────────────────────
		estimate.GET("/{$}", handlers.HandleEstimatePage(env))
		estimate.POST("/estimate/reset", handlers.HandleEstimateReset(env))

		// ── Client details ───────────────────────────────────────
		estimate.POST("/client", handlers.HandleUpdateClient(env))

		// ── Materials ────────────────────────────────────────────
		estimate.POST("/items", handlers.HandleAddItem(env))
		estimate.POST("/items/import", handlers.HandleImportItems(env))
		estimate.GET("/items/import/errors", handlers.HandleImportErrorReport(env))
		estimate.DELETE("/items/{id}", handlers.HandleRemoveItem(env))

		// ── Export ───────────────────────────────────────────────
		estimate.GET("/export/pdf", handlers.HandleExportPDF(env))
		estimate.GET("/export/excel", handlers.HandleExportExcel(env))

		// ── Share ────────────────────────────────────────────────
		estimate.GET("/share/whatsapp", handlers.HandleShareWhatsApp(env))
		estimate.GET("/share/email", handlers.HandleShareEmail(env))
		estimate.GET("/share/email/draft", handlers.HandleEmailDraft(env))

		// Template download needs no session
		se.Router.GET("/items/template", handlers.HandleItemsTemplate(env))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
