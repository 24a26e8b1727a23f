package usecase

import (
	"context"
	"sort"

	"github.com/scirota/selection-api/internal/domain"
)

// In-memory repositories shared by the usecase tests.

type mockMemberRepo struct {
	members      map[uint]domain.Member
	affiliations map[uint][]domain.Affiliation
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{
		members:      map[uint]domain.Member{},
		affiliations: map[uint][]domain.Affiliation{},
	}
}

func (m *mockMemberRepo) Get(ctx context.Context, id uint) (domain.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return domain.Member{}, domain.NotFoundError{Resource: "member"}
	}
	return member, nil
}

func (m *mockMemberRepo) GetByIDs(ctx context.Context, ids []uint) ([]domain.Member, error) {
	out := []domain.Member{}
	for _, id := range ids {
		if member, ok := m.members[id]; ok {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) GetByLogin(ctx context.Context, login string) (domain.Member, string, error) {
	for _, member := range m.members {
		if member.Login == login {
			return member, "", nil
		}
	}
	return domain.Member{}, "", domain.NotFoundError{Resource: "member"}
}

func (m *mockMemberRepo) Affiliations(ctx context.Context, memberID uint) ([]domain.Affiliation, error) {
	return m.affiliations[memberID], nil
}

type mockAffiliationRepo struct {
	affiliations map[uint]domain.Affiliation
}

func newMockAffiliationRepo() *mockAffiliationRepo {
	return &mockAffiliationRepo{affiliations: map[uint]domain.Affiliation{}}
}

func (m *mockAffiliationRepo) Get(ctx context.Context, id uint) (domain.Affiliation, error) {
	a, ok := m.affiliations[id]
	if !ok {
		return domain.Affiliation{}, domain.NotFoundError{Resource: "affiliation"}
	}
	return a, nil
}

func (m *mockAffiliationRepo) ListByDirectionIDs(ctx context.Context, directionIDs []uint) ([]domain.Affiliation, error) {
	out := []domain.Affiliation{}
	for _, a := range m.affiliations {
		for _, id := range directionIDs {
			if a.Direction.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockDirectionRepo struct {
	directions map[uint]domain.Direction
}

func newMockDirectionRepo() *mockDirectionRepo {
	return &mockDirectionRepo{directions: map[uint]domain.Direction{}}
}

func (m *mockDirectionRepo) All(ctx context.Context) ([]domain.Direction, error) {
	out := []domain.Direction{}
	for _, d := range m.directions {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockDirectionRepo) Get(ctx context.Context, id uint) (domain.Direction, error) {
	d, ok := m.directions[id]
	if !ok {
		return domain.Direction{}, domain.NotFoundError{Resource: "direction"}
	}
	return d, nil
}

func (m *mockDirectionRepo) Create(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	for _, existing := range m.directions {
		if existing.Name == d.Name {
			return domain.Direction{}, domain.ConflictError{Resource: "direction"}
		}
	}
	d.ID = uint(len(m.directions) + 1)
	for {
		if _, taken := m.directions[d.ID]; !taken {
			break
		}
		d.ID++
	}
	m.directions[d.ID] = d
	return d, nil
}

func (m *mockDirectionRepo) GetByIDs(ctx context.Context, ids []uint) ([]domain.Direction, error) {
	out := []domain.Direction{}
	for _, id := range ids {
		if d, ok := m.directions[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

type mockApplicationRepo struct {
	apps        map[uint]domain.Application
	directions  map[uint][]uint
	assessments map[uint][]domain.CompetencyAssessment
	viewed      map[uint]map[uint]bool
	catalog     *mockDirectionRepo
	nextID      uint
}

func newMockApplicationRepo(catalog *mockDirectionRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:        map[uint]domain.Application{},
		directions:  map[uint][]uint{},
		assessments: map[uint][]domain.CompetencyAssessment{},
		viewed:      map[uint]map[uint]bool{},
		catalog:     catalog,
		nextID:      1,
	}
}

func (m *mockApplicationRepo) Create(ctx context.Context, app domain.Application) (domain.Application, error) {
	for _, existing := range m.apps {
		if existing.MemberID == app.MemberID {
			return domain.Application{}, domain.ConflictError{Resource: "application"}
		}
	}
	app.ID = m.nextID
	m.nextID++
	m.apps[app.ID] = app
	return app, nil
}

func (m *mockApplicationRepo) Get(ctx context.Context, id uint) (domain.Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return domain.Application{}, domain.NotFoundError{Resource: "application"}
	}
	return app, nil
}

func (m *mockApplicationRepo) GetByMember(ctx context.Context, memberID uint) (domain.Application, error) {
	for _, app := range m.apps {
		if app.MemberID == memberID {
			return app, nil
		}
	}
	return domain.Application{}, domain.NotFoundError{Resource: "application"}
}

func (m *mockApplicationRepo) Update(ctx context.Context, app domain.Application) error {
	if _, ok := m.apps[app.ID]; !ok {
		return domain.NotFoundError{Resource: "application"}
	}
	m.apps[app.ID] = app
	return nil
}

func (m *mockApplicationRepo) Delete(ctx context.Context, id uint) error {
	delete(m.apps, id)
	return nil
}

func (m *mockApplicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	out := []domain.Application{}
	for _, app := range m.apps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockApplicationRepo) SaveScores(ctx context.Context, id uint, fullness int, finalScore float64) error {
	app, ok := m.apps[id]
	if !ok {
		return domain.NotFoundError{Resource: "application"}
	}
	app.Fullness = fullness
	app.FinalScore = finalScore
	m.apps[id] = app
	return nil
}

func (m *mockApplicationRepo) SetFinal(ctx context.Context, id uint, isFinal bool) error {
	app, ok := m.apps[id]
	if !ok {
		return domain.NotFoundError{Resource: "application"}
	}
	app.IsFinal = isFinal
	m.apps[id] = app
	return nil
}

func (m *mockApplicationRepo) SetWorkGroup(ctx context.Context, id uint, workGroupID *uint) error {
	app, ok := m.apps[id]
	if !ok {
		return domain.NotFoundError{Resource: "application"}
	}
	app.WorkGroupID = workGroupID
	m.apps[id] = app
	return nil
}

func (m *mockApplicationRepo) DirectionIDs(ctx context.Context, id uint) ([]uint, error) {
	return m.directions[id], nil
}

func (m *mockApplicationRepo) SetDirections(ctx context.Context, id uint, directionIDs []uint) error {
	m.directions[id] = directionIDs
	return nil
}

func (m *mockApplicationRepo) DirectionsByApplications(ctx context.Context, ids []uint) (map[uint][]domain.Direction, error) {
	out := map[uint][]domain.Direction{}
	for _, id := range ids {
		for _, did := range m.directions[id] {
			if d, ok := m.catalog.directions[did]; ok {
				out[id] = append(out[id], d)
			}
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) Assessments(ctx context.Context, id uint) ([]domain.CompetencyAssessment, error) {
	return m.assessments[id], nil
}

func (m *mockApplicationRepo) UpsertAssessments(ctx context.Context, id uint, assessments []domain.CompetencyAssessment) error {
	for _, a := range assessments {
		a.ApplicationID = id
		replaced := false
		for i, existing := range m.assessments[id] {
			if existing.CompetenceID == a.CompetenceID {
				m.assessments[id][i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			m.assessments[id] = append(m.assessments[id], a)
		}
	}
	return nil
}

func (m *mockApplicationRepo) MarkViewed(ctx context.Context, memberID, applicationID uint) error {
	if m.viewed[memberID] == nil {
		m.viewed[memberID] = map[uint]bool{}
	}
	m.viewed[memberID][applicationID] = true
	return nil
}

func (m *mockApplicationRepo) ViewedSet(ctx context.Context, memberID uint, applicationIDs []uint) (map[uint]bool, error) {
	out := map[uint]bool{}
	for _, id := range applicationIDs {
		if m.viewed[memberID][id] {
			out[id] = true
		}
	}
	return out, nil
}

type mockEducationRepo struct {
	educations map[uint]domain.Education
	nextID     uint
}

func newMockEducationRepo() *mockEducationRepo {
	return &mockEducationRepo{educations: map[uint]domain.Education{}, nextID: 1}
}

func (m *mockEducationRepo) Get(ctx context.Context, id uint) (domain.Education, error) {
	edu, ok := m.educations[id]
	if !ok {
		return domain.Education{}, domain.NotFoundError{Resource: "education"}
	}
	return edu, nil
}

func (m *mockEducationRepo) ListByApplication(ctx context.Context, applicationID uint) ([]domain.Education, error) {
	out := []domain.Education{}
	for _, edu := range m.educations {
		if edu.ApplicationID == applicationID {
			out = append(out, edu)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockEducationRepo) ListByApplications(ctx context.Context, applicationIDs []uint) (map[uint][]domain.Education, error) {
	out := map[uint][]domain.Education{}
	for _, id := range applicationIDs {
		rows, _ := m.ListByApplication(ctx, id)
		if len(rows) > 0 {
			out[id] = rows
		}
	}
	return out, nil
}

func (m *mockEducationRepo) Create(ctx context.Context, edu domain.Education) (domain.Education, error) {
	edu.ID = m.nextID
	m.nextID++
	m.educations[edu.ID] = edu
	return edu, nil
}

func (m *mockEducationRepo) Update(ctx context.Context, edu domain.Education) error {
	m.educations[edu.ID] = edu
	return nil
}

func (m *mockEducationRepo) Delete(ctx context.Context, id uint) error {
	delete(m.educations, id)
	return nil
}

// mockBookingRepo mirrors the transactional guarantees of the real one: a
// second booked-type row per slave fails, and the unbook cascade clears the
// application's work group and lock flag.
type mockBookingRepo struct {
	bookings map[uint]domain.Booking
	apps     *mockApplicationRepo
	nextID   uint
}

func newMockBookingRepo(apps *mockApplicationRepo) *mockBookingRepo {
	return &mockBookingRepo{bookings: map[uint]domain.Booking{}, apps: apps, nextID: 1}
}

func (m *mockBookingRepo) Get(ctx context.Context, id uint) (domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (m *mockBookingRepo) ListBySlave(ctx context.Context, slaveID uint, bookingType string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range m.bookings {
		if b.SlaveID == slaveID && b.BookingType == bookingType {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBookingRepo) ListBySlaves(ctx context.Context, slaveIDs []uint) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range m.bookings {
		for _, id := range slaveIDs {
			if b.SlaveID == id {
				out = append(out, b)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBookingRepo) GetBookedBySlave(ctx context.Context, slaveID uint) (*domain.Booking, error) {
	for _, b := range m.bookings {
		if b.SlaveID == slaveID && b.BookingType == domain.BookingBooked {
			booked := b
			return &booked, nil
		}
	}
	return nil, nil
}

func (m *mockBookingRepo) CreateBooked(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	existing, _ := m.GetBookedBySlave(ctx, b.SlaveID)
	if existing != nil {
		return domain.Booking{}, domain.ConflictError{Resource: "booking"}
	}
	b.ID = m.nextID
	m.nextID++
	m.bookings[b.ID] = b
	return b, nil
}

func (m *mockBookingRepo) CreateWishlist(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	for _, existing := range m.bookings {
		if existing.SlaveID == b.SlaveID && existing.MasterID == b.MasterID &&
			existing.AffiliationID == b.AffiliationID && existing.BookingType == domain.BookingInWishlist {
			return domain.Booking{}, domain.ConflictError{Resource: "wishlist entry"}
		}
	}
	b.ID = m.nextID
	m.nextID++
	m.bookings[b.ID] = b
	return b, nil
}

func (m *mockBookingRepo) DeleteBookedCascade(ctx context.Context, b domain.Booking) error {
	delete(m.bookings, b.ID)
	app, err := m.apps.GetByMember(ctx, b.SlaveID)
	if err != nil {
		return nil
	}
	app.WorkGroupID = nil
	app.IsFinal = false
	m.apps.apps[app.ID] = app
	return nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uint) error {
	delete(m.bookings, id)
	return nil
}

type mockCompetenceRepo struct {
	competences map[uint]domain.Competence
	byDirection map[uint][]uint
	nextID      uint
}

func newMockCompetenceRepo() *mockCompetenceRepo {
	return &mockCompetenceRepo{
		competences: map[uint]domain.Competence{},
		byDirection: map[uint][]uint{},
		nextID:      1,
	}
}

func (m *mockCompetenceRepo) All(ctx context.Context) ([]domain.Competence, error) {
	out := []domain.Competence{}
	for _, c := range m.competences {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCompetenceRepo) Get(ctx context.Context, id uint) (domain.Competence, error) {
	c, ok := m.competences[id]
	if !ok {
		return domain.Competence{}, domain.NotFoundError{Resource: "competence"}
	}
	return c, nil
}

func (m *mockCompetenceRepo) Create(ctx context.Context, c domain.Competence) (domain.Competence, error) {
	c.ID = m.nextID
	m.nextID++
	m.competences[c.ID] = c
	return c, nil
}

func (m *mockCompetenceRepo) ByDirection(ctx context.Context, directionID uint, picked bool) ([]domain.Competence, error) {
	assigned := map[uint]bool{}
	for _, id := range m.byDirection[directionID] {
		assigned[id] = true
	}
	out := []domain.Competence{}
	for _, c := range m.competences {
		if assigned[c.ID] == picked {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCompetenceRepo) DirectionCompetenceIDs(ctx context.Context, directionID uint) ([]uint, error) {
	return m.byDirection[directionID], nil
}

func (m *mockCompetenceRepo) ResolveIDs(ctx context.Context, ids []uint) ([]uint, error) {
	out := []uint{}
	for _, id := range ids {
		if _, ok := m.competences[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockCompetenceRepo) UpdateDirectionSet(ctx context.Context, directionID uint, add, remove []uint) error {
	current := map[uint]bool{}
	for _, id := range m.byDirection[directionID] {
		current[id] = true
	}
	for _, id := range remove {
		delete(current, id)
	}
	for _, id := range add {
		current[id] = true
	}
	out := []uint{}
	for id := range current {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	m.byDirection[directionID] = out
	return nil
}

type mockWorkGroupRepo struct {
	groups map[uint]domain.WorkGroup
	nextID uint
}

func newMockWorkGroupRepo() *mockWorkGroupRepo {
	return &mockWorkGroupRepo{groups: map[uint]domain.WorkGroup{}, nextID: 1}
}

func (m *mockWorkGroupRepo) Get(ctx context.Context, id uint) (domain.WorkGroup, error) {
	wg, ok := m.groups[id]
	if !ok {
		return domain.WorkGroup{}, domain.NotFoundError{Resource: "work group"}
	}
	return wg, nil
}

func (m *mockWorkGroupRepo) ListByAffiliations(ctx context.Context, affiliationIDs []uint) ([]domain.WorkGroup, error) {
	out := []domain.WorkGroup{}
	for _, wg := range m.groups {
		for _, id := range affiliationIDs {
			if wg.AffiliationID == id {
				out = append(out, wg)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockWorkGroupRepo) Create(ctx context.Context, wg domain.WorkGroup) (domain.WorkGroup, error) {
	wg.ID = m.nextID
	m.nextID++
	m.groups[wg.ID] = wg
	return wg, nil
}

func (m *mockWorkGroupRepo) Update(ctx context.Context, wg domain.WorkGroup) error {
	m.groups[wg.ID] = wg
	return nil
}

func (m *mockWorkGroupRepo) Delete(ctx context.Context, id uint) error {
	delete(m.groups, id)
	return nil
}

type mockNoteRepo struct {
	notes  map[uint]domain.ApplicationNote
	nextID uint
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: map[uint]domain.ApplicationNote{}, nextID: 1}
}

func (m *mockNoteRepo) Get(ctx context.Context, id uint) (domain.ApplicationNote, error) {
	note, ok := m.notes[id]
	if !ok {
		return domain.ApplicationNote{}, domain.NotFoundError{Resource: "note"}
	}
	return note, nil
}

func (m *mockNoteRepo) ListVisible(ctx context.Context, applicationID uint, affiliationIDs []uint) ([]domain.ApplicationNote, error) {
	out := []domain.ApplicationNote{}
	for _, note := range m.notes {
		if note.ApplicationID != applicationID {
			continue
		}
		for _, tagged := range note.AffiliationIDs {
			if containsID(affiliationIDs, tagged) {
				out = append(out, note)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockNoteRepo) Create(ctx context.Context, note domain.ApplicationNote) (domain.ApplicationNote, error) {
	note.ID = m.nextID
	m.nextID++
	m.notes[note.ID] = note
	return note, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, note domain.ApplicationNote) error {
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id uint) error {
	delete(m.notes, id)
	return nil
}

type mockFileRepo struct {
	files  map[uint]domain.File
	nextID uint
}

func newMockFileRepo() *mockFileRepo {
	return &mockFileRepo{files: map[uint]domain.File{}, nextID: 1}
}

func (m *mockFileRepo) Get(ctx context.Context, id uint) (domain.File, error) {
	f, ok := m.files[id]
	if !ok {
		return domain.File{}, domain.NotFoundError{Resource: "file"}
	}
	return f, nil
}

func (m *mockFileRepo) ListVisible(ctx context.Context, memberID uint) ([]domain.File, error) {
	out := []domain.File{}
	for _, f := range m.files {
		if f.MemberID == memberID || f.IsTemplate {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockFileRepo) ListByOwner(ctx context.Context, memberID uint) ([]domain.File, error) {
	out := []domain.File{}
	for _, f := range m.files {
		if f.MemberID == memberID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockFileRepo) Create(ctx context.Context, f domain.File) (domain.File, error) {
	f.ID = m.nextID
	m.nextID++
	m.files[f.ID] = f
	return f, nil
}

func (m *mockFileRepo) Delete(ctx context.Context, id uint) error {
	delete(m.files, id)
	return nil
}

type mockSignaler struct {
	events []domain.BookingEvent
}

func (m *mockSignaler) PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	m.events = append(m.events, event)
	return nil
}
