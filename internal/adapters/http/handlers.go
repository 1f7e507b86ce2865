package web

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"campusevents/internal/adapters/http/middleware"
	"campusevents/internal/application/orchestrators"
	"campusevents/internal/application/projections"
	"campusevents/internal/domain/event"
	"campusevents/internal/domain/identity"
	"campusevents/internal/domain/student"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

const templatesDir = "internal/adapters/http/templates"

// TemplatesDir allows the template root to be overridden, for the server
// binary running from a different working directory.
var TemplatesDir = templatesDir

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	if ok {
		role = sess.Role
		name = sess.Name
	}

	funcMap := template.FuncMap{
		"currentRole": func() string { return role },
		"currentName": func() string { return name },
		"isLoggedIn":  func() bool { return role != "" },
		"isAdmin":     func() bool { return role == identity.RoleAdmin },
		"csrfToken":   func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Mon, 2 Jan 2006 15:04")
		},
		"sections":   func() []string { return student.ValidSections },
		"categories": func() []string { return event.ValidCategories },
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"paginationQuery": func(page int, sort, dir, search, section string, perPage int) template.URL {
			q := fmt.Sprintf("page=%d", page)
			if sort != "" {
				q += "&sort=" + sort
			}
			if dir != "" {
				q += "&dir=" + dir
			}
			if search != "" {
				q += "&q=" + url.QueryEscape(search)
			}
			if section != "" {
				q += "&section=" + url.QueryEscape(section)
			}
			if perPage > 0 {
				q += fmt.Sprintf("&per_page=%d", perPage)
			}
			return template.URL(q)
		},
	}

	layoutPath := filepath.Join(TemplatesDir, "layout.html")
	pagePath := filepath.Join(TemplatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// redirectWithMsg redirects carrying a human-readable outcome in the
// msg query parameter. Internal error strings never travel this way.
func redirectWithMsg(w http.ResponseWriter, r *http.Request, path, msg string) {
	if msg != "" {
		path += "?msg=" + url.QueryEscape(msg)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// requireAdmin checks the session for the admin role.
// Returns false if the request should not proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return middleware.Session{}, false
	}
	if sess.Role != identity.RoleAdmin {
		slog.Warn("auth_denied", "path", r.URL.Path, "role", sess.Role, "required", "admin")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// requireStudent checks the session for the student role.
func requireStudent(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return middleware.Session{}, false
	}
	if sess.Role != identity.RoleStudent {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// pathID extracts the id segment from paths like /events/{id}/register.
// prefix and suffix include their slashes, e.g. pathID(p, "/events/", "/register").
func pathID(path, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(path, prefix), suffix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/register", handleRegisterPage)
	mux.HandleFunc("/signup", handleSignup)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/home", handleHome)
	mux.HandleFunc("/events", handleCreateEvent)
	mux.HandleFunc("/events/", handleEventActions)
	mux.HandleFunc("/students/", handleStudentActions)
	mux.HandleFunc("/registrations/", handleRegistrationDecision)
	mux.HandleFunc("/dashboard", handleDashboard)
}

// handleIndex renders the public landing page with upcoming events.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	events, err := stores.EventStore.ListByDate(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	now := timeNow()
	upcoming := make([]event.Event, 0, len(events))
	for _, e := range events {
		if !e.IsCompleted(now) {
			upcoming = append(upcoming, e)
		}
	}

	renderTemplate(w, r, "index.html", map[string]any{
		"Events": upcoming,
		"Msg":    r.URL.Query().Get("msg"),
	})
}

// handleRegisterPage renders the signup form.
func handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "register.html", map[string]any{
		"Msg": r.URL.Query().Get("msg"),
	})
}

// handleSignup handles POST /signup
func handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.SignupStudentInput{
		Name:     r.FormValue("Name"),
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
		Section:  r.FormValue("Section"),
	}
	deps := orchestrators.SignupStudentDeps{
		StudentStore: stores.StudentStore,
		GenerateID:   generateID,
	}

	if _, err := orchestrators.ExecuteSignupStudent(r.Context(), input, deps); err != nil {
		renderTemplate(w, r, "register.html", map[string]any{
			"Error": err.Error(),
			"Name":  input.Name,
			"Email": input.Email,
		})
		return
	}

	redirectWithMsg(w, r, "/login", "Account created, you can log in now")
}

// handleLogin handles GET (form) and POST (submit) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, afterLoginPath(sess.Role), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Msg": r.URL.Query().Get("msg"),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.LoginDeps{
			StudentStore: stores.StudentStore,
			Admin:        adminCredential,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": "Invalid email or password",
			})
			return
		}

		token, err := sessions.Create(result.StudentID, result.Email, result.Name, result.Role)
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, afterLoginPath(result.Role), http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func afterLoginPath(role string) string {
	if role == identity.RoleAdmin {
		return "/dashboard"
	}
	return "/home"
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleHome renders the student's event overview.
func handleHome(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireStudent(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetStudentHome(r.Context(),
		projections.GetStudentHomeQuery{StudentID: sess.StudentID},
		projections.GetStudentHomeDeps{
			EventStore:        stores.EventStore,
			RegistrationStore: stores.RegistrationStore,
		}, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "home.html", map[string]any{
		"Events": result.Events,
		"Msg":    r.URL.Query().Get("msg"),
	})
}

// handleEventRegister handles POST /events/{id}/register from a student.
func handleEventRegister(w http.ResponseWriter, r *http.Request, eventID string) {
	sess, ok := requireStudent(w, r)
	if !ok {
		return
	}

	_, err := orchestrators.ExecuteRegisterForEvent(r.Context(),
		orchestrators.RegisterForEventInput{StudentID: sess.StudentID, EventID: eventID},
		orchestrators.RegisterForEventDeps{
			EventStore:        stores.EventStore,
			RegistrationStore: stores.RegistrationStore,
			GenerateID:        generateID,
			Now:               timeNow,
		})

	switch {
	case err == nil:
		redirectWithMsg(w, r, "/home", "Registration submitted, awaiting approval")
	case err == orchestrators.ErrEventNotFound:
		redirectWithMsg(w, r, "/home", "That event no longer exists")
	case err == orchestrators.ErrRegistrationClosed:
		redirectWithMsg(w, r, "/home", "Registration is closed for this event")
	case err == orchestrators.ErrAlreadyRegistered:
		redirectWithMsg(w, r, "/home", "You are already registered for this event")
	default:
		internalError(w, err)
	}
}
