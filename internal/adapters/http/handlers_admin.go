package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campusevents/internal/adapters/uploads"
	"campusevents/internal/application/listutil"
	"campusevents/internal/application/orchestrators"
	"campusevents/internal/application/projections"
	"campusevents/internal/domain/event"
)

// handleDashboard renders the admin dashboard. The page query parameter
// selects the admin view: home, students, manage or registrations.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	switch page := r.URL.Query().Get("page"); page {
	case "", "home":
		renderDashboardHome(w, r)
	case "students":
		renderDashboardStudents(w, r)
	case "manage":
		renderDashboardManage(w, r)
	case "registrations":
		renderDashboardRegistrations(w, r)
	default:
		http.NotFound(w, r)
	}
}

func dashboardDeps() projections.GetDashboardDeps {
	return projections.GetDashboardDeps{
		StudentStore:      stores.StudentStore,
		EventStore:        stores.EventStore,
		RegistrationStore: stores.RegistrationStore,
	}
}

func renderDashboardHome(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), dashboardDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	data := map[string]any{
		"Stats": result,
		"Msg":   r.URL.Query().Get("msg"),
	}
	if perfCollector != nil {
		data["Perf"] = perfCollector.Report(timeNow().Add(-time.Hour), 5)
	}
	renderTemplate(w, r, "dashboard_home.html", data)
}

func renderDashboardStudents(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(),
		projections.StudentSortColumns,
		[]string{"section"},
	)

	result, err := projections.QueryGetStudentList(r.Context(),
		projections.GetStudentListQuery{Params: lp},
		projections.GetStudentListDeps{StudentStore: stores.StudentStore})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard_students.html", map[string]any{
		"Students":       result.Students,
		"PageInfo":       result.PageInfo,
		"Sort":           lp.Sort,
		"Dir":            lp.Dir,
		"Search":         lp.Search,
		"Section":        lp.Filters["section"],
		"PerPageOptions": listutil.PerPageOptions,
		"Msg":            r.URL.Query().Get("msg"),
	})
}

func renderDashboardManage(w http.ResponseWriter, r *http.Request) {
	summaries, err := projections.QueryGetManageEvents(r.Context(),
		projections.GetManageEventsDeps{
			EventStore:        stores.EventStore,
			RegistrationStore: stores.RegistrationStore,
			StudentStore:      stores.StudentStore,
		}, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "dashboard_manage.html", map[string]any{
		"Summaries": summaries,
		"Msg":       r.URL.Query().Get("msg"),
	})
}

func renderDashboardRegistrations(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryGetRegistrationRows(r.Context(), dashboardDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "dashboard_registrations.html", map[string]any{
		"Rows": rows,
		"Msg":  r.URL.Query().Get("msg"),
	})
}

// parseEventForm reads the multipart event form shared by create and edit.
// The poster file is stored immediately; the returned string is the stored
// filename, empty when no file was uploaded.
func parseEventForm(w http.ResponseWriter, r *http.Request) (orchestrators.CreateEventInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxPosterSize+64<<10)
	if err := r.ParseMultipartForm(uploads.MaxPosterSize); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return orchestrators.CreateEventInput{}, false
	}

	capacity, _ := strconv.Atoi(r.FormValue("Capacity"))
	date, err := time.ParseInLocation("2006-01-02T15:04", r.FormValue("Date"), time.Local)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return orchestrators.CreateEventInput{}, false
	}

	input := orchestrators.CreateEventInput{
		Title:       r.FormValue("Title"),
		Description: r.FormValue("Description"),
		Date:        date,
		Location:    r.FormValue("Location"),
		Capacity:    capacity,
		Category:    r.FormValue("Category"),
	}

	file, header, err := r.FormFile("Poster")
	switch {
	case err == nil:
		defer file.Close()
		name, err := posterStore.SavePoster(file, header.Filename)
		if err != nil {
			if errors.Is(err, uploads.ErrUnsupportedType) {
				http.Error(w, "Poster must be an image file", http.StatusBadRequest)
			} else {
				internalError(w, err)
			}
			return orchestrators.CreateEventInput{}, false
		}
		input.Poster = name
	case errors.Is(err, http.ErrMissingFile):
		// no poster uploaded
	default:
		http.Error(w, "Invalid poster upload", http.StatusBadRequest)
		return orchestrators.CreateEventInput{}, false
	}

	return input, true
}

// handleCreateEvent handles POST /events (multipart, optional poster).
func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input, ok := parseEventForm(w, r)
	if !ok {
		return
	}

	_, err := orchestrators.ExecuteCreateEvent(r.Context(), input,
		orchestrators.CreateEventDeps{
			EventStore: stores.EventStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
	switch {
	case err == nil:
		redirectWithMsg(w, r, "/dashboard?page=manage", "Event created")
	case errors.Is(err, event.ErrDateInPast):
		redirectWithMsg(w, r, "/dashboard?page=manage", "Event date cannot be in the past")
	default:
		redirectWithMsg(w, r, "/dashboard?page=manage", "Event could not be created: check the form values")
	}
}

// handleEventActions routes /events/{id}/register, /events/{id}/edit
// and /events/{id}/delete.
func handleEventActions(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(r.URL.Path, "/events/", "/register"); ok {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleEventRegister(w, r, id)
		return
	}
	if id, ok := pathID(r.URL.Path, "/events/", "/edit"); ok {
		handleEditEvent(w, r, id)
		return
	}
	if id, ok := pathID(r.URL.Path, "/events/", "/delete"); ok {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleDeleteEvent(w, r, id)
		return
	}
	http.NotFound(w, r)
}

// handleEditEvent handles GET (form) and POST (submit) for /events/{id}/edit.
func handleEditEvent(w http.ResponseWriter, r *http.Request, eventID string) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	if r.Method == "GET" {
		e, err := stores.EventStore.GetByID(r.Context(), eventID)
		if err != nil {
			redirectWithMsg(w, r, "/dashboard?page=manage", "Event not found")
			return
		}
		renderTemplate(w, r, "edit_event.html", map[string]any{
			"Event": e,
			"Msg":   r.URL.Query().Get("msg"),
		})
		return
	}

	if r.Method == "POST" {
		parsed, ok := parseEventForm(w, r)
		if !ok {
			return
		}
		err := orchestrators.ExecuteUpdateEvent(r.Context(),
			orchestrators.UpdateEventInput{
				EventID:     eventID,
				Title:       parsed.Title,
				Description: parsed.Description,
				Date:        parsed.Date,
				Location:    parsed.Location,
				Capacity:    parsed.Capacity,
				Poster:      parsed.Poster, // empty keeps the existing poster
				Category:    parsed.Category,
			},
			orchestrators.UpdateEventDeps{
				EventStore: stores.EventStore,
				Now:        timeNow,
			})
		switch {
		case err == nil:
			redirectWithMsg(w, r, "/dashboard?page=manage", "Event updated")
		case errors.Is(err, orchestrators.ErrEventNotFound):
			redirectWithMsg(w, r, "/dashboard?page=manage", "Event not found")
		case errors.Is(err, event.ErrDateInPast):
			redirectWithMsg(w, r, "/events/"+eventID+"/edit", "Event date cannot be in the past")
		default:
			redirectWithMsg(w, r, "/events/"+eventID+"/edit", "Event could not be updated: check the form values")
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDeleteEvent handles POST /events/{id}/delete.
func handleDeleteEvent(w http.ResponseWriter, r *http.Request, eventID string) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	// Capture the poster name before the record goes away.
	poster := ""
	if e, err := stores.EventStore.GetByID(r.Context(), eventID); err == nil {
		poster = e.Poster
	}

	err := orchestrators.ExecuteDeleteEvent(r.Context(),
		orchestrators.DeleteEventDeps{
			EventStore:        stores.EventStore,
			RegistrationStore: stores.RegistrationStore,
		}, eventID)
	switch {
	case err == nil:
		if poster != "" && posterStore != nil {
			if rmErr := posterStore.Remove(poster); rmErr != nil {
				internalError(w, rmErr)
				return
			}
		}
		redirectWithMsg(w, r, "/dashboard?page=manage", "Event deleted")
	case errors.Is(err, orchestrators.ErrEventNotFound):
		redirectWithMsg(w, r, "/dashboard?page=manage", "Event not found")
	default:
		internalError(w, err)
	}
}

// handleStudentActions routes /students/{id}/edit and /students/{id}/delete.
func handleStudentActions(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(r.URL.Path, "/students/", "/edit"); ok {
		handleEditStudent(w, r, id)
		return
	}
	if id, ok := pathID(r.URL.Path, "/students/", "/delete"); ok {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleDeleteStudent(w, r, id)
		return
	}
	http.NotFound(w, r)
}

// handleEditStudent handles GET (form) and POST (submit) for /students/{id}/edit.
func handleEditStudent(w http.ResponseWriter, r *http.Request, studentID string) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	if r.Method == "GET" {
		s, err := stores.StudentStore.GetByID(r.Context(), studentID)
		if err != nil {
			redirectWithMsg(w, r, "/dashboard?page=students", "Student not found")
			return
		}
		renderTemplate(w, r, "edit_student.html", map[string]any{
			"Student": s,
			"Msg":     r.URL.Query().Get("msg"),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		err := orchestrators.ExecuteUpdateStudent(r.Context(),
			orchestrators.UpdateStudentInput{
				StudentID: studentID,
				Name:      r.FormValue("Name"),
				Email:     r.FormValue("Email"),
				Password:  r.FormValue("Password"), // empty keeps the current one
				Section:   r.FormValue("Section"),
			},
			orchestrators.UpdateStudentDeps{StudentStore: stores.StudentStore})
		switch {
		case err == nil:
			redirectWithMsg(w, r, "/dashboard?page=students", "Student updated")
		case errors.Is(err, orchestrators.ErrStudentNotFound):
			redirectWithMsg(w, r, "/dashboard?page=students", "Student not found")
		case errors.Is(err, orchestrators.ErrEmailTaken):
			redirectWithMsg(w, r, "/students/"+studentID+"/edit", "That email is already in use")
		default:
			redirectWithMsg(w, r, "/students/"+studentID+"/edit", "Student could not be updated: check the form values")
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDeleteStudent handles POST /students/{id}/delete.
func handleDeleteStudent(w http.ResponseWriter, r *http.Request, studentID string) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	err := orchestrators.ExecuteDeleteStudent(r.Context(),
		orchestrators.DeleteStudentDeps{
			StudentStore:      stores.StudentStore,
			RegistrationStore: stores.RegistrationStore,
		}, studentID)
	switch {
	case err == nil:
		sessions.DeleteForStudent(studentID)
		redirectWithMsg(w, r, "/dashboard?page=students", "Student removed")
	case errors.Is(err, orchestrators.ErrStudentNotFound):
		redirectWithMsg(w, r, "/dashboard?page=students", "Student not found")
	default:
		internalError(w, err)
	}
}

// handleRegistrationDecision handles POST /registrations/{id}/approve
// and /registrations/{id}/reject.
func handleRegistrationDecision(w http.ResponseWriter, r *http.Request) {
	decision := ""
	id := ""
	if v, ok := pathID(r.URL.Path, "/registrations/", "/approve"); ok {
		id, decision = v, orchestrators.DecisionApprove
	} else if v, ok := pathID(r.URL.Path, "/registrations/", "/reject"); ok {
		id, decision = v, orchestrators.DecisionReject
	} else {
		http.NotFound(w, r)
		return
	}

	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteDecideRegistration(r.Context(),
		orchestrators.DecideRegistrationInput{RegistrationID: id, Decision: decision},
		orchestrators.DecideRegistrationDeps{
			RegistrationStore: stores.RegistrationStore,
			StudentStore:      stores.StudentStore,
			EventStore:        stores.EventStore,
			EmailSender:       emailSender,
		})
	outcome := "Registration approved"
	if decision == orchestrators.DecisionReject {
		outcome = "Registration rejected"
	}
	switch {
	case err == nil:
		redirectWithMsg(w, r, "/dashboard?page=registrations", outcome)
	case errors.Is(err, orchestrators.ErrRegistrationNotFound):
		redirectWithMsg(w, r, "/dashboard?page=registrations", "Registration not found")
	default:
		internalError(w, err)
	}
}
