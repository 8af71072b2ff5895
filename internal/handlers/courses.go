package handlers

import (
	"net/http"
	"strconv"

	"COURSEHUB_BACK-END/internal/service"
	"COURSEHUB_BACK-END/internal/utils"
)

// CourseHandler serves the course catalogue
type CourseHandler struct {
	courses service.CourseService
}

func NewCourseHandler(courses service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// ListCourses returns the catalogue, optionally filtered by category
// @Summary List courses
// @Description "all", an empty value or an unknown category returns every course
// @Tags courses
// @Produce json
// @Param category query string false "technology, business, design, language, other or all"
// @Success 200 {array} models.Course
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch courses"
// @Router /api/courses [get]
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, courses)
}

// GetCourse returns one course
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/courses/{id} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		// a non-numeric id can never match a course
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Course not found")
		return
	}

	course, err := h.courses.Get(r.Context(), id)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, course)
}
