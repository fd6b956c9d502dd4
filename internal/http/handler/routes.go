package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"paperhub/internal/config"
	"paperhub/internal/http/middleware"
	"paperhub/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, paperSvc service.PaperService, userSvc service.UserService, authCfg config.AuthConfig) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Readiness (DB connectivity) and liveness probes
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Account endpoints, no token required
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", Signup(userSvc))
	authGroup.Post("/login", Login(userSvc, authCfg))
	authGroup.Post("/logout", Logout())

	rejectUnauthenticated := func(c *fiber.Ctx) error {
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "user not authenticated")
	}
	requireAuth := middleware.Authenticate([]byte(authCfg.JWTSecret), rejectUnauthenticated)

	app.Get("/mentors", requireAuth, ListMentors(userSvc))
	app.Get("/users/me", requireAuth, Me(userSvc))

	papers := app.Group("/papers", requireAuth)
	papers.Post("", UploadPaper(paperSvc))
	papers.Get("", ListPapers(paperSvc))
	papers.Get("/:id", GetPaper(paperSvc))
	papers.Get("/:id/download", DownloadPaper(paperSvc))
	papers.Get("/:id/presign", PresignPaper(paperSvc))
}
