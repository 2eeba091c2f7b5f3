package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/terra-clan/extension-portal/internal/models"
)

// FilterProjects returns the projects matching every active criterion, in
// their original relative order unless a sort is requested.
func FilterProjects(projects []models.Project, c ProjectCriteria) Result[models.Project] {
	areaSlug, areaSet := slugOf(c.Area)
	courseSlug, courseSet := slugOf(c.Course)

	items := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if !containsFold(p.Name, c.Search) && !containsFold(p.Description, c.Search) {
			continue
		}
		if areaSet && Slugify(p.Area) != areaSlug {
			continue
		}
		if !c.Status.Matches(p.Status) {
			continue
		}
		if courseSet && !hasCourse(p, courseSlug) {
			continue
		}
		items = append(items, p)
	}

	if c.Sort != SortNone {
		items = SortProjects(items, c.Sort)
	}

	return Result[models.Project]{
		Items:    items,
		Total:    len(projects),
		Filtered: c.Active(),
	}
}

// FindProjectByID returns the project with the given ID.
// The boolean is false when no project matches.
func FindProjectByID(projects []models.Project, id string) (models.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// SortProjects returns a sorted copy of projects. The sort is stable, so ties
// keep their collection order.
func SortProjects(projects []models.Project, by ProjectSort) []models.Project {
	out := slices.Clone(projects)
	switch by {
	case SortByName:
		slices.SortStableFunc(out, func(a, b models.Project) int {
			return strings.Compare(Slugify(a.Name), Slugify(b.Name))
		})
	case SortByStart:
		slices.SortStableFunc(out, func(a, b models.Project) int {
			return a.StartDate.Time().Compare(b.StartDate.Time())
		})
	case SortByHours:
		slices.SortStableFunc(out, func(a, b models.Project) int {
			return cmp.Compare(b.TotalHours, a.TotalHours)
		})
	}
	return out
}

// Option is a selectable filter value: a display label and its slug
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Areas returns the distinct project areas in first-seen order
func Areas(projects []models.Project) []Option {
	seen := make(map[string]bool)
	out := make([]Option, 0)
	for _, p := range projects {
		out = appendOption(out, seen, p.Area)
	}
	return out
}

// Courses returns the distinct courses across all projects in first-seen order
func Courses(projects []models.Project) []Option {
	seen := make(map[string]bool)
	out := make([]Option, 0)
	for _, p := range projects {
		for _, course := range p.Courses {
			out = appendOption(out, seen, course)
		}
	}
	return out
}

func appendOption(out []Option, seen map[string]bool, label string) []Option {
	slug := Slugify(label)
	if slug == "" || seen[slug] {
		return out
	}
	seen[slug] = true
	return append(out, Option{Label: label, Value: slug})
}

func hasCourse(p models.Project, slug string) bool {
	for _, course := range p.Courses {
		if Slugify(course) == slug {
			return true
		}
	}
	return false
}

// slugOf returns the slug of a selector's value, if one is set
func slugOf(s models.Selector[string]) (string, bool) {
	v, ok := s.Value()
	if !ok {
		return "", false
	}
	return Slugify(v), true
}
