package rest

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/present/rest/presenter"
	"github.com/scirota/selection-api/internal/service"
	"github.com/scirota/selection-api/internal/usecase"
	"github.com/scirota/selection-api/policy"
)

type Handler struct {
	auth        *service.AuthService
	signal      *service.SignalService
	application *usecase.ApplicationUsecase
	list        *usecase.ListUsecase
	booking     *usecase.BookingUsecase
	education   *usecase.EducationUsecase
	competence  *usecase.CompetenceUsecase
	workGroup   *usecase.WorkGroupUsecase
	note        *usecase.NoteUsecase
	file        *usecase.FileUsecase
	direction   *usecase.DirectionUsecase
}

func NewHandler(
	auth *service.AuthService,
	signal *service.SignalService,
	application *usecase.ApplicationUsecase,
	list *usecase.ListUsecase,
	booking *usecase.BookingUsecase,
	education *usecase.EducationUsecase,
	competence *usecase.CompetenceUsecase,
	workGroup *usecase.WorkGroupUsecase,
	note *usecase.NoteUsecase,
	file *usecase.FileUsecase,
	direction *usecase.DirectionUsecase,
) *Handler {
	return &Handler{
		auth:        auth,
		signal:      signal,
		application: application,
		list:        list,
		booking:     booking,
		education:   education,
		competence:  competence,
		workGroup:   workGroup,
		note:        note,
		file:        file,
		direction:   direction,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/login", h.handleLogin)

	e.GET("/api/v1/directions", h.handleDirectionList)
	e.POST("/api/v1/directions", h.handleDirectionCreate)
	e.GET("/api/v1/directions/:id", h.handleDirectionGet)
	e.GET("/api/v1/directions/:id/competences", h.handleDirectionCompetences)
	e.PUT("/api/v1/directions/:id/competences", h.handleSetDirectionCompetences)

	e.GET("/api/v1/competences", h.handleCompetenceTree)
	e.POST("/api/v1/competences", h.handleCompetenceCreate)
	e.GET("/api/v1/competences/:id", h.handleCompetenceGet)

	e.GET("/api/v1/applications", h.handleApplicationList)
	e.POST("/api/v1/applications", h.handleApplicationCreate)
	e.GET("/api/v1/applications/:id", h.handleApplicationGet)
	e.PUT("/api/v1/applications/:id", h.handleApplicationUpdate)
	e.DELETE("/api/v1/applications/:id", h.handleApplicationDelete)

	e.GET("/api/v1/applications/:id/directions", h.handleApplicationDirections)
	e.PUT("/api/v1/applications/:id/directions", h.handleApplicationSetDirections)
	e.GET("/api/v1/applications/:id/competences", h.handleApplicationCompetencies)
	e.PUT("/api/v1/applications/:id/competences", h.handleApplicationSetCompetencies)
	e.GET("/api/v1/applications/:id/work_group", h.handleApplicationWorkGroup)
	e.PUT("/api/v1/applications/:id/work_group", h.handleApplicationSetWorkGroup)
	e.PUT("/api/v1/applications/:id/blocking", h.handleApplicationBlocking)
	e.POST("/api/v1/applications/:id/view", h.handleApplicationView)
	e.GET("/api/v1/applications/:id/files", h.handleApplicationFiles)

	e.GET("/api/v1/applications/:id/educations", h.handleEducationList)
	e.POST("/api/v1/applications/:id/educations", h.handleEducationCreate)
	e.PUT("/api/v1/applications/:id/educations/:education_id", h.handleEducationUpdate)
	e.DELETE("/api/v1/applications/:id/educations/:education_id", h.handleEducationDelete)

	e.GET("/api/v1/applications/:id/booking", h.handleBookingList)
	e.POST("/api/v1/applications/:id/booking", h.handleBookingCreate)
	e.DELETE("/api/v1/applications/:id/booking/:booking_id", h.handleBookingDelete)
	e.GET("/api/v1/applications/:id/wishlist", h.handleWishlistList)
	e.POST("/api/v1/applications/:id/wishlist", h.handleWishlistCreate)
	e.DELETE("/api/v1/applications/:id/wishlist/:booking_id", h.handleWishlistDelete)

	e.GET("/api/v1/applications/:id/notes", h.handleNoteList)
	e.POST("/api/v1/applications/:id/notes", h.handleNoteCreate)
	e.PUT("/api/v1/applications/:id/notes/:note_id", h.handleNoteUpdate)
	e.DELETE("/api/v1/applications/:id/notes/:note_id", h.handleNoteDelete)

	e.GET("/api/v1/work_groups", h.handleWorkGroupList)
	e.POST("/api/v1/work_groups", h.handleWorkGroupCreate)
	e.GET("/api/v1/work_groups/:id", h.handleWorkGroupGet)
	e.PUT("/api/v1/work_groups/:id", h.handleWorkGroupUpdate)
	e.DELETE("/api/v1/work_groups/:id", h.handleWorkGroupDelete)

	e.GET("/api/v1/files", h.handleFileList)
	e.POST("/api/v1/files", h.handleFileCreate)
	e.GET("/api/v1/files/:id", h.handleFileGet)
	e.DELETE("/api/v1/files/:id", h.handleFileDelete)

	e.GET("/realtime", h.handleRealtime)
}

func requester(c echo.Context) (domain.RoleContext, bool) {
	actor, ok := c.Request().Context().Value(domain.RequesterContextCtxKey).(domain.RoleContext)
	return actor, ok
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func queryUints(c echo.Context, name string) []uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, uint(v))
	}
	return out
}

func queryInts(c echo.Context, name string) []int {
	var out []int
	for _, v := range queryUints(c, name) {
		out = append(out, int(v))
	}
	return out
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	result, err := h.auth.Login(ctx, req.Login, req.Password)
	if err != nil {
		return presenter.Unauthorized(c, "invalid login or password")
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleDirectionList(c echo.Context) error {
	ctx := c.Request().Context()
	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	directions, err := h.direction.All(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, directions)
}

type directionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleDirectionCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	var req directionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.direction.Create(ctx, actor, domain.Direction{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleDirectionGet(c echo.Context) error {
	ctx := c.Request().Context()
	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid direction id")
	}
	direction, err := h.direction.Get(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, direction)
}

func (h *Handler) handleCompetenceGet(c echo.Context) error {
	ctx := c.Request().Context()
	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid competence id")
	}
	node, err := h.competence.Get(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, node)
}

func (h *Handler) handleDirectionCompetences(c echo.Context) error {
	ctx := c.Request().Context()
	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid direction id")
	}
	picked := c.QueryParam("picked") != "false"
	forest, err := h.competence.DirectionTree(ctx, id, picked)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, forest)
}

type idListRequest struct {
	IDs []uint `json:"ids"`
}

func (h *Handler) handleSetDirectionCompetences(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid direction id")
	}
	var req idListRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := h.competence.SetDirectionCompetences(ctx, actor, id, req.IDs); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleCompetenceTree(c echo.Context) error {
	ctx := c.Request().Context()
	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	forest, err := h.competence.Tree(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, forest)
}

type competenceRequest struct {
	Name        string `json:"name"`
	ParentID    *uint  `json:"parentId"`
	IsEstimated bool   `json:"isEstimated"`
}

func (h *Handler) handleCompetenceCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	var req competenceRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.competence.Create(ctx, actor, domain.Competence{
		Name:        req.Name,
		ParentID:    req.ParentID,
		IsEstimated: req.IsEstimated,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleApplicationList(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}

	filter := domain.ApplicationFilter{
		DirectionIDs:           queryUints(c, "directions"),
		DraftYears:             queryInts(c, "draft_year"),
		DraftSeasons:           queryInts(c, "draft_season"),
		BookingAffiliationIDs:  queryUints(c, "booked"),
		WishlistAffiliationIDs: queryUints(c, "wishlist"),
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		filter.PageSize = size
	}

	items, err := h.list.List(ctx, actor, filter)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, items)
}

type applicationRequest struct {
	BirthDay     time.Time `json:"birthDay"`
	BirthPlace   string    `json:"birthPlace"`
	Nationality  string    `json:"nationality"`
	Commissariat string    `json:"commissariat"`
	HealthGroup  string    `json:"healthGroup"`
	DraftYear    int       `json:"draftYear"`
	DraftSeason  int       `json:"draftSeason"`

	ScientificAchievements string `json:"scientificAchievements"`
	Scholarships           string `json:"scholarships"`
	CandidateExams         string `json:"candidateExams"`
	SportingAchievements   string `json:"sportingAchievements"`
	Hobby                  string `json:"hobby"`
	OtherInformation       string `json:"otherInformation"`
	ReadyToSecret          bool   `json:"readyToSecret"`

	Merits domain.Merits `json:"merits"`
}

func (r applicationRequest) toInput() usecase.ApplicationInput {
	return usecase.ApplicationInput{
		BirthDay:               r.BirthDay,
		BirthPlace:             r.BirthPlace,
		Nationality:            r.Nationality,
		Commissariat:           r.Commissariat,
		HealthGroup:            r.HealthGroup,
		DraftYear:              r.DraftYear,
		DraftSeason:            r.DraftSeason,
		ScientificAchievements: r.ScientificAchievements,
		Scholarships:           r.Scholarships,
		CandidateExams:         r.CandidateExams,
		SportingAchievements:   r.SportingAchievements,
		Hobby:                  r.Hobby,
		OtherInformation:       r.OtherInformation,
		ReadyToSecret:          r.ReadyToSecret,
		Merits:                 r.Merits,
	}
}

func (h *Handler) handleApplicationCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	var req applicationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.application.Create(ctx, actor, req.toInput())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, presenter.Application(actor, created))
}

func (h *Handler) handleApplicationGet(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	app, err := h.application.Get(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, presenter.Application(actor, app))
}

func (h *Handler) handleApplicationUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req applicationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	updated, err := h.application.Update(ctx, actor, id, req.toInput())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, presenter.Application(actor, updated))
}

func (h *Handler) handleApplicationDelete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	if err := h.application.Delete(ctx, actor, id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleApplicationDirections(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	directions, err := h.application.Directions(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, directions)
}

func (h *Handler) handleApplicationSetDirections(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req idListRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := h.application.SetDirections(ctx, actor, id, req.IDs); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleApplicationCompetencies(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	if _, err := h.application.Competencies(ctx, actor, id); err != nil {
		return presenter.Error(c, err)
	}
	forest, err := h.competence.TreeWithLevels(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, forest)
}

type assessmentRequest struct {
	Competencies []struct {
		CompetenceID uint `json:"competenceId"`
		Level        int  `json:"level"`
	} `json:"competencies"`
}

func (h *Handler) handleApplicationSetCompetencies(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req assessmentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	assessments := make([]domain.CompetencyAssessment, 0, len(req.Competencies))
	for _, a := range req.Competencies {
		assessments = append(assessments, domain.CompetencyAssessment{
			CompetenceID: a.CompetenceID,
			Level:        a.Level,
		})
	}
	if err := h.application.SetCompetencies(ctx, actor, id, assessments); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleApplicationWorkGroup(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	wg, err := h.application.WorkGroup(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, wg)
}

type workGroupRefRequest struct {
	WorkGroupID *uint `json:"workGroupId"`
}

func (h *Handler) handleApplicationSetWorkGroup(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req workGroupRefRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := h.application.SetWorkGroup(ctx, actor, id, req.WorkGroupID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

type blockingRequest struct {
	IsFinal bool `json:"isFinal"`
}

func (h *Handler) handleApplicationBlocking(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req blockingRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := h.application.SetFinal(ctx, actor, id, req.IsFinal); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleApplicationView(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	if err := h.application.MarkViewed(ctx, actor, id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleApplicationFiles(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	files, err := h.file.ListByApplication(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, files)
}

type educationRequest struct {
	EducationType  string  `json:"educationType"`
	University     string  `json:"university"`
	Specialization string  `json:"specialization"`
	AvgScore       float64 `json:"avgScore"`
	EndYear        int     `json:"endYear"`
	IsEnded        bool    `json:"isEnded"`
	ThemeOfDiploma string  `json:"themeOfDiploma"`
}

func (r educationRequest) toInput() usecase.EducationInput {
	return usecase.EducationInput{
		EducationType:  r.EducationType,
		University:     r.University,
		Specialization: r.Specialization,
		AvgScore:       r.AvgScore,
		EndYear:        r.EndYear,
		IsEnded:        r.IsEnded,
		ThemeOfDiploma: r.ThemeOfDiploma,
	}
}

func (h *Handler) handleEducationList(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	educations, err := h.education.List(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, educations)
}

func (h *Handler) handleEducationCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req educationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.education.Create(ctx, actor, id, req.toInput())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleEducationUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	educationID, err := paramID(c, "education_id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid education id")
	}
	var req educationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	updated, err := h.education.Update(ctx, actor, id, educationID, req.toInput())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleEducationDelete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	educationID, err := paramID(c, "education_id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid education id")
	}
	if err := h.education.Delete(ctx, actor, id, educationID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

type bookingRequest struct {
	AffiliationID uint `json:"affiliationId"`
}

func (h *Handler) handleBookingList(c echo.Context) error {
	return h.bookingEntries(c, domain.BookingBooked)
}

func (h *Handler) handleWishlistList(c echo.Context) error {
	return h.bookingEntries(c, domain.BookingInWishlist)
}

func (h *Handler) bookingEntries(c echo.Context, bookingType string) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	entries, err := h.booking.List(ctx, actor, id, bookingType)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, entries)
}

func (h *Handler) handleBookingCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	booking, err := h.booking.Book(ctx, actor, id, req.AffiliationID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, booking)
}

func (h *Handler) handleBookingDelete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	bookingID, err := paramID(c, "booking_id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid booking id")
	}
	if err := h.booking.Unbook(ctx, actor, id, bookingID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleWishlistCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	entry, err := h.booking.Wishlist(ctx, actor, id, req.AffiliationID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, entry)
}

func (h *Handler) handleWishlistDelete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	bookingID, err := paramID(c, "booking_id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid booking id")
	}
	if err := h.booking.Unwishlist(ctx, actor, id, bookingID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

type noteRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleNoteList(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	notes, err := h.note.List(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, notes)
}

func (h *Handler) handleNoteCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	note, err := h.note.Create(ctx, actor, id, req.Text)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, note)
}

func (h *Handler) handleNoteUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	noteID, err := paramID(c, "note_id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid note id")
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	note, err := h.note.Update(ctx, actor, id, noteID, req.Text)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, note)
}

func (h *Handler) handleNoteDelete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid application id")
	}
	noteID, err := paramID(c, "note_id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid note id")
	}
	if err := h.note.Delete(ctx, actor, id, noteID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

type workGroupRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AffiliationID uint   `json:"affiliationId"`
}

func (h *Handler) handleWorkGroupList(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	groups, err := h.workGroup.List(ctx, actor)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, groups)
}

func (h *Handler) handleWorkGroupCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	var req workGroupRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.workGroup.Create(ctx, actor, domain.WorkGroup{
		Name:          req.Name,
		Description:   req.Description,
		AffiliationID: req.AffiliationID,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleWorkGroupGet(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid work group id")
	}
	wg, err := h.workGroup.Get(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, wg)
}

func (h *Handler) handleWorkGroupUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid work group id")
	}
	var req workGroupRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	wg, err := h.workGroup.Update(ctx, actor, id, req.Name, req.Description)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, wg)
}

func (h *Handler) handleWorkGroupDelete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid work group id")
	}
	if err := h.workGroup.Delete(ctx, actor, id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

type fileRequest struct {
	FileName   string `json:"fileName"`
	FilePath   string `json:"filePath"`
	IsTemplate bool   `json:"isTemplate"`
}

func (h *Handler) handleFileList(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	files, err := h.file.List(ctx, actor)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, files)
}

func (h *Handler) handleFileCreate(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	var req fileRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.file.Create(ctx, actor, domain.File{
		FileName:   req.FileName,
		FilePath:   req.FilePath,
		IsTemplate: req.IsTemplate,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleFileGet(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid file id")
	}
	f, err := h.file.Get(ctx, actor, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, f)
}

func (h *Handler) handleFileDelete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid file id")
	}
	if err := h.file.Delete(ctx, actor, id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleRealtime streams booking transitions to reviewers over a websocket.
func (h *Handler) handleRealtime(c echo.Context) error {
	actor, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	if !policy.Allows(policy.ActionRealtime, actor, nil) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()
	events := h.signal.SubscribeBookingEvents(ctx)

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
