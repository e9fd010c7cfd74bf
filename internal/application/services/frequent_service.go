package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/ports"
)

// DefaultRankingLimit is used when a ranking query passes a
// non-positive limit.
const DefaultRankingLimit = 5

// FrequentTaskService handles the reusable task template registry:
// usage-ranked listing, search and category grouping.
type FrequentTaskService struct {
	templates ports.FrequentTaskRepository
	log       *logger.Logger
	validate  *validator.Validate
}

// NewFrequentTaskService creates a new frequent task service
func NewFrequentTaskService(templates ports.FrequentTaskRepository, log *logger.Logger) *FrequentTaskService {
	return &FrequentTaskService{
		templates: templates,
		log:       log.WithComponent("frequent_service"),
		validate:  validator.New(),
	}
}

// List returns every template. The repository seeds the default set on
// first access.
func (s *FrequentTaskService) List(ctx context.Context) ([]entities.FrequentTask, error) {
	return s.templates.List(ctx)
}

// Add creates a new template with a fresh usage counter. Category and
// priority are normalized rather than rejected; templates historically
// carried loose strings.
func (s *FrequentTaskService) Add(ctx context.Context, input ports.TemplateInput) (*entities.FrequentTask, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, entities.ErrEmptyTitle
	}

	now := time.Now()
	template := &entities.FrequentTask{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(input.Title),
		Description:       input.Description,
		Category:          entities.NormalizeCategory(string(input.Category)),
		Priority:          entities.NormalizePriority(string(input.Priority)),
		EstimatedDuration: input.EstimatedDuration,
		UsageCount:        0,
		LastUsed:          now,
		CreatedAt:         now,
		Tags:              input.Tags,
	}

	if err := s.templates.Insert(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to add template: %w", err)
	}
	s.log.Infow("Template added", "template_id", template.ID, "title", template.Title)

	return template, nil
}

// Use bumps a template's usage counter and last-used timestamp. An
// unknown id is a no-op, not an error.
func (s *FrequentTaskService) Use(ctx context.Context, id string) error {
	template, err := s.templates.GetByID(ctx, id)
	if errors.Is(err, entities.ErrTemplateNotFound) {
		s.log.Debugw("Use of unknown template ignored", "template_id", id)
		return nil
	}
	if err != nil {
		return err
	}

	template.UsageCount++
	template.LastUsed = time.Now()
	if err := s.templates.Update(ctx, template); err != nil {
		return fmt.Errorf("failed to record template use: %w", err)
	}
	return nil
}

// Remove deletes a template. The bool reports whether anything was
// actually removed.
func (s *FrequentTaskService) Remove(ctx context.Context, id string) (bool, error) {
	err := s.templates.Delete(ctx, id)
	if errors.Is(err, entities.ErrTemplateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove template: %w", err)
	}
	s.log.Infow("Template removed", "template_id", id)
	return true, nil
}

// MostUsed returns up to limit templates ordered by descending usage
// count.
func (s *FrequentTaskService) MostUsed(ctx context.Context, limit int) ([]entities.FrequentTask, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].UsageCount > templates[j].UsageCount
	})
	return clip(templates, limit), nil
}

// RecentlyUsed returns up to limit templates ordered by most recent
// use.
func (s *FrequentTaskService) RecentlyUsed(ctx context.Context, limit int) ([]entities.FrequentTask, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].LastUsed.After(templates[j].LastUsed)
	})
	return clip(templates, limit), nil
}

// Search matches query case-insensitively against title, description
// and tags, ranking results by usage count.
func (s *FrequentTaskService) Search(ctx context.Context, query string) ([]entities.FrequentTask, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := templates[:0]
	for _, t := range templates {
		if t.MatchesQuery(query) {
			matched = append(matched, t)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UsageCount > matched[j].UsageCount
	})
	return matched, nil
}

// FindByTitle returns the template whose title matches exactly, ignoring
// case, or nil when there is none. This is the lookup behind the
// favorite-task sync.
func (s *FrequentTaskService) FindByTitle(ctx context.Context, title string) (*entities.FrequentTask, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if strings.EqualFold(templates[i].Title, title) {
			template := templates[i]
			return &template, nil
		}
	}
	return nil, nil
}

// ByCategory returns the templates in a category, usage-ranked.
func (s *FrequentTaskService) ByCategory(ctx context.Context, category entities.Category) ([]entities.FrequentTask, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := templates[:0]
	for _, t := range templates {
		if t.Category == category {
			matched = append(matched, t)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UsageCount > matched[j].UsageCount
	})
	return matched, nil
}

// AllCategories returns the distinct categories present in the
// registry, sorted.
func (s *FrequentTaskService) AllCategories(ctx context.Context) ([]string, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, t := range templates {
		seen[string(t.Category)] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

// TopByCategory returns up to limit usage-ranked templates per
// category.
func (s *FrequentTaskService) TopByCategory(ctx context.Context, limit int) (map[string][]entities.FrequentTask, error) {
	categories, err := s.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 3
	}
	result := make(map[string][]entities.FrequentTask, len(categories))
	for _, c := range categories {
		ranked, err := s.ByCategory(ctx, entities.Category(c))
		if err != nil {
			return nil, err
		}
		if len(ranked) > limit {
			ranked = ranked[:limit]
		}
		result[c] = ranked
	}
	return result, nil
}

func clip(templates []entities.FrequentTask, limit int) []entities.FrequentTask {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	if len(templates) > limit {
		return templates[:limit]
	}
	return templates
}
