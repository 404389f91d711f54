// Package router wires the HTTP routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "taskboard/internal/feature/auth/transport/handler"
	taskhandler "taskboard/internal/feature/tasks/transport/handler"
	"taskboard/internal/platform/csrf"
	"taskboard/internal/platform/http/handler"
	"taskboard/internal/platform/session"
	"taskboard/web"
)

// NewRouter builds the full HTTP handler: HTML templates, CSRF protection,
// public auth routes, and the session-guarded task routes. The returned
// handler includes the form method override, so serve it directly.
func NewRouter(authH *authhandler.AuthHandler, taskH *taskhandler.TaskHandler,
	resolver session.SessionResolver, protection *csrf.Protection) http.Handler {
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())
	r.Use(protection.Middleware())

	// No authentication required
	r.GET("/healthz", handler.Health)
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/tasks") })
	r.GET("/login", authH.ShowLogin)
	r.POST("/login", authH.Login)
	r.GET("/register", authH.ShowRegister)
	r.POST("/register", authH.Register)

	// Session cookie required
	auth := r.Group("/")
	auth.Use(session.AuthRequired(resolver))
	{
		auth.POST("/logout", authH.Logout)
		auth.GET("/tasks", taskH.Index)
		auth.GET("/tasks/create", taskH.ShowCreate)
		auth.POST("/tasks", taskH.Create)
		auth.GET("/tasks/:id/edit", taskH.ShowEdit)
		auth.PUT("/tasks/:id", taskH.Update)
		auth.DELETE("/tasks/:id", taskH.Delete)
	}

	return MethodOverride(r)
}

// MethodOverride lets HTML forms reach the PUT and DELETE routes: a POST
// carrying a _method field is rerouted before gin matches the request.
// It must wrap the engine because routing happens before any gin middleware.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.PostFormValue("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
