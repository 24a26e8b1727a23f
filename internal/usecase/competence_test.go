package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/scirota/selection-api/internal/domain"
)

// seedForest builds: programming -> {golang, python}, soft-skills.
func seedForest(f *fixture) (root, golang, python, soft domain.Competence) {
	ctx := context.Background()
	root, _ = f.competences.Create(ctx, domain.Competence{Name: "programming"})
	golang, _ = f.competences.Create(ctx, domain.Competence{Name: "golang", ParentID: &root.ID, IsEstimated: true})
	python, _ = f.competences.Create(ctx, domain.Competence{Name: "python", ParentID: &root.ID, IsEstimated: true})
	soft, _ = f.competences.Create(ctx, domain.Competence{Name: "soft skills", IsEstimated: true})
	return root, golang, python, soft
}

func TestTreeProjection(t *testing.T) {
	f := newFixture()
	uc := f.competenceUsecase()
	root, _, _, _ := seedForest(f)

	forest, err := uc.Tree(context.Background())
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	if forest[0].ID != root.ID || len(forest[0].Children) != 2 {
		t.Fatalf("expected programming with 2 children, got %+v", forest[0])
	}
}

func TestDirectionTreePickedAndComplement(t *testing.T) {
	f := newFixture()
	uc := f.competenceUsecase()
	ctx := context.Background()
	_, golang, python, soft := seedForest(f)

	err := uc.SetDirectionCompetences(ctx, f.master, directionRobotics, []uint{golang.ID})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	picked, err := uc.DirectionTree(ctx, directionRobotics, true)
	if err != nil {
		t.Fatalf("picked tree failed: %v", err)
	}
	// The parent appears because its subtree contains the assigned leaf; the
	// unassigned sibling and the other root do not.
	if len(picked) != 1 || len(picked[0].Children) != 1 || picked[0].Children[0].ID != golang.ID {
		t.Fatalf("unexpected picked projection: %+v", picked)
	}

	complement, err := uc.DirectionTree(ctx, directionRobotics, false)
	if err != nil {
		t.Fatalf("complement tree failed: %v", err)
	}
	found := map[uint]bool{}
	for _, node := range complement {
		found[node.ID] = true
		for _, child := range node.Children {
			found[child.ID] = true
		}
	}
	if !found[python.ID] || !found[soft.ID] {
		t.Fatalf("expected python and soft skills in complement, got %+v", complement)
	}
}

func TestSetDirectionCompetencesDiff(t *testing.T) {
	f := newFixture()
	uc := f.competenceUsecase()
	ctx := context.Background()
	_, golang, python, soft := seedForest(f)

	if err := uc.SetDirectionCompetences(ctx, f.master, directionRobotics, []uint{golang.ID, python.ID}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	// Reconcile: python goes away, soft skills arrives, golang stays.
	if err := uc.SetDirectionCompetences(ctx, f.master, directionRobotics, []uint{golang.ID, soft.ID}); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	ids, _ := f.competences.DirectionCompetenceIDs(ctx, directionRobotics)
	if len(ids) != 2 || !containsID(ids, golang.ID) || !containsID(ids, soft.ID) {
		t.Fatalf("expected {golang, soft}, got %v", ids)
	}
}

func TestSetDirectionCompetencesIgnoresUnknownIDs(t *testing.T) {
	f := newFixture()
	uc := f.competenceUsecase()
	ctx := context.Background()
	_, golang, _, _ := seedForest(f)

	if err := uc.SetDirectionCompetences(ctx, f.master, directionRobotics, []uint{golang.ID, 999}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	ids, _ := f.competences.DirectionCompetenceIDs(ctx, directionRobotics)
	if len(ids) != 1 || ids[0] != golang.ID {
		t.Fatalf("expected only golang assigned, got %v", ids)
	}
}

func TestSetDirectionCompetencesForeignDirection(t *testing.T) {
	f := newFixture()
	uc := f.competenceUsecase()
	_, golang, _, _ := seedForest(f)

	err := uc.SetDirectionCompetences(context.Background(), f.master, directionCyber, []uint{golang.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign direction, got %v", err)
	}
}

func TestCompetenceCreateValidatesParent(t *testing.T) {
	f := newFixture()
	uc := f.competenceUsecase()

	missing := uint(999)
	_, err := uc.Create(context.Background(), f.master, domain.Competence{Name: "orphan", ParentID: &missing})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing parent, got %v", err)
	}

	_, err = uc.Create(context.Background(), f.slave, domain.Competence{Name: "rogue"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for slave, got %v", err)
	}
}

func TestTreeWithLevels(t *testing.T) {
	f := newFixture()
	uc := f.competenceUsecase()
	ctx := context.Background()
	_, golang, _, _ := seedForest(f)

	if err := f.applications.UpsertAssessments(ctx, f.app.ID, []domain.CompetencyAssessment{
		{CompetenceID: golang.ID, Level: 2},
	}); err != nil {
		t.Fatalf("seed assessment failed: %v", err)
	}

	forest, err := uc.TreeWithLevels(ctx, f.app.ID)
	if err != nil {
		t.Fatalf("tree with levels failed: %v", err)
	}
	var level *int
	for _, node := range forest {
		for _, child := range node.Children {
			if child.ID == golang.ID {
				level = child.Level
			}
		}
	}
	if level == nil || *level != 2 {
		t.Fatalf("expected golang level 2, got %v", level)
	}
}
