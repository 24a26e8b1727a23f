package usecase

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

var competenceTracer = otel.Tracer("competence")

// CompetenceUsecase projects the flat competence rows into trees and manages
// direction assignment by set difference.
type CompetenceUsecase struct {
	competences  CompetenceRepository
	directions   DirectionRepository
	applications ApplicationRepository
}

func NewCompetenceUsecase(
	competences CompetenceRepository,
	directions DirectionRepository,
	applications ApplicationRepository,
) *CompetenceUsecase {
	return &CompetenceUsecase{
		competences:  competences,
		directions:   directions,
		applications: applications,
	}
}

// Tree returns the whole competence forest.
func (uc *CompetenceUsecase) Tree(ctx context.Context) ([]domain.CompetenceNode, error) {
	ctx, span := competenceTracer.Start(ctx, "Competence.Usecase.Tree")
	defer span.End()

	all, err := uc.competences.All(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return buildForest(all, nil, nil), nil
}

// DirectionTree projects the forest against one direction's assigned set.
// picked keeps subtrees containing at least one assigned competence;
// otherwise the complement is returned. Either way a parent appears whenever
// any of its descendants does.
func (uc *CompetenceUsecase) DirectionTree(ctx context.Context, directionID uint, picked bool) ([]domain.CompetenceNode, error) {
	ctx, span := competenceTracer.Start(ctx, "Competence.Usecase.DirectionTree")
	defer span.End()

	if _, err := uc.directions.Get(ctx, directionID); err != nil {
		return nil, err
	}
	all, err := uc.competences.All(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	assigned, err := uc.competences.DirectionCompetenceIDs(ctx, directionID)
	if err != nil {
		return nil, err
	}

	member := make(map[uint]bool, len(assigned))
	for _, id := range assigned {
		member[id] = true
	}
	keep := func(c domain.Competence) bool { return member[c.ID] == picked }
	return buildForest(all, keep, nil), nil
}

// TreeWithLevels returns the forest annotated with one application's
// self-assessed levels. Nodes without an assessment keep a nil level.
func (uc *CompetenceUsecase) TreeWithLevels(ctx context.Context, applicationID uint) ([]domain.CompetenceNode, error) {
	all, err := uc.competences.All(ctx)
	if err != nil {
		return nil, err
	}
	assessments, err := uc.applications.Assessments(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	levels := make(map[uint]int, len(assessments))
	for _, a := range assessments {
		levels[a.CompetenceID] = a.Level
	}
	return buildForest(all, nil, levels), nil
}

// Get returns one competence with its full subtree attached.
func (uc *CompetenceUsecase) Get(ctx context.Context, id uint) (domain.CompetenceNode, error) {
	root, err := uc.competences.Get(ctx, id)
	if err != nil {
		return domain.CompetenceNode{}, err
	}
	all, err := uc.competences.All(ctx)
	if err != nil {
		return domain.CompetenceNode{}, err
	}

	children := map[uint][]domain.Competence{}
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}
	var build func(c domain.Competence) domain.CompetenceNode
	build = func(c domain.Competence) domain.CompetenceNode {
		node := domain.CompetenceNode{Competence: c}
		for _, child := range children[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}
	return build(root), nil
}

// Create registers a competence node. The parent, when given, must already
// exist; a fresh node has no children so no cycle can form through it.
func (uc *CompetenceUsecase) Create(ctx context.Context, actor domain.RoleContext, c domain.Competence) (domain.Competence, error) {
	if err := authorize(policy.ActionCompetenceCreate, actor, nil); err != nil {
		return domain.Competence{}, err
	}
	if c.Name == "" {
		return domain.Competence{}, domain.ValidationError{Reason: "competence name is required"}
	}
	if c.ParentID != nil {
		if _, err := uc.competences.Get(ctx, *c.ParentID); err != nil {
			return domain.Competence{}, err
		}
	}
	return uc.competences.Create(ctx, c)
}

// SetDirectionCompetences reconciles the direction's assigned set toward the
// requested one: entries missing from the request are detached, new ones
// attached, both inside one transaction. Unknown ids are dropped silently.
func (uc *CompetenceUsecase) SetDirectionCompetences(ctx context.Context, actor domain.RoleContext, directionID uint, requested []uint) error {
	ctx, span := competenceTracer.Start(ctx, "Competence.Usecase.SetDirectionCompetences")
	defer span.End()

	if err := authorize(policy.ActionDirectionAssign, actor, nil); err != nil {
		return err
	}
	if _, err := uc.directions.Get(ctx, directionID); err != nil {
		return err
	}
	if !actor.HasDirection(directionID) && !actor.IsAdmin {
		return domain.ErrForbidden
	}

	resolved, err := uc.competences.ResolveIDs(ctx, dedupeIDs(requested))
	if err != nil {
		return err
	}
	current, err := uc.competences.DirectionCompetenceIDs(ctx, directionID)
	if err != nil {
		return err
	}

	add, remove := diffIDs(resolved, current)
	if len(add) == 0 && len(remove) == 0 {
		return nil
	}
	if err := uc.competences.UpdateDirectionSet(ctx, directionID, add, remove); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// buildForest indexes children by parent and walks from the roots. keep, when
// non-nil, prunes subtrees containing no kept node; levels, when non-nil,
// annotates matching nodes.
func buildForest(all []domain.Competence, keep func(domain.Competence) bool, levels map[uint]int) []domain.CompetenceNode {
	children := map[uint][]domain.Competence{}
	var roots []domain.Competence
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var build func(c domain.Competence) (domain.CompetenceNode, bool)
	build = func(c domain.Competence) (domain.CompetenceNode, bool) {
		node := domain.CompetenceNode{Competence: c}
		if levels != nil {
			if level, ok := levels[c.ID]; ok {
				node.Level = &level
			}
		}
		kept := keep == nil || keep(c)
		for _, child := range children[c.ID] {
			sub, ok := build(child)
			if ok {
				node.Children = append(node.Children, sub)
				kept = true
			}
		}
		return node, kept
	}

	out := []domain.CompetenceNode{}
	for _, root := range roots {
		if node, ok := build(root); ok {
			out = append(out, node)
		}
	}
	return out
}

// diffIDs computes requested minus current (add) and current minus requested
// (remove).
func diffIDs(requested, current []uint) (add, remove []uint) {
	req := make(map[uint]bool, len(requested))
	for _, id := range requested {
		req[id] = true
	}
	cur := make(map[uint]bool, len(current))
	for _, id := range current {
		cur[id] = true
	}
	for _, id := range requested {
		if !cur[id] {
			add = append(add, id)
		}
	}
	for _, id := range current {
		if !req[id] {
			remove = append(remove, id)
		}
	}
	return add, remove
}
