package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nshimizu0918/taskboard/internal/analytics"
	"github.com/nshimizu0918/taskboard/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrImportInvalidYAML   = errors.New("invalid YAML input")
	ErrImportNoTasks       = errors.New("no tasks found in YAML")
	ErrImportTitleRequired = errors.New("every imported task needs a title")
	ErrImportUnknownTag    = errors.New("unknown tag name in YAML input")
	ErrNoLabelsConfigured  = errors.New("no status or priority configured for this account")
)

// yamlTask is a single task in the YAML import payload.
type yamlTask struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	DueDate     string   `yaml:"due_date,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// yamlImport is the root structure of the YAML import payload.
type yamlImport struct {
	Tasks []yamlTask `yaml:"tasks"`
}

// ImportYAML bulk-creates tasks from a YAML document. The importer becomes
// owner and assignee; the account's first status and priority are applied.
// Tag names must match the user's tags. The whole batch is written in one
// transaction, so a bad row imports nothing.
func (s *TaskService) ImportYAML(userID uint64, input string) (int, error) {
	var doc yamlImport
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportInvalidYAML, err)
	}
	if len(doc.Tasks) == 0 {
		return 0, ErrImportNoTasks
	}

	statuses, err := s.labelRepo.ListStatuses(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list statuses: %w", err)
	}
	priorities, err := s.labelRepo.ListPriorities(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list priorities: %w", err)
	}
	if len(statuses) == 0 || len(priorities) == 0 {
		return 0, ErrNoLabelsConfigured
	}

	var tagNames []string
	seenNames := make(map[string]struct{})
	for _, yt := range doc.Tasks {
		for _, name := range yt.Tags {
			if _, seen := seenNames[name]; seen {
				continue
			}
			seenNames[name] = struct{}{}
			tagNames = append(tagNames, name)
		}
	}

	userTags, err := s.labelRepo.TagsByNames(userID, tagNames)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve tags: %w", err)
	}
	tagsByName := make(map[string]models.Tag, len(userTags))
	for _, tag := range userTags {
		tagsByName[tag.Name] = tag
	}

	today := analytics.DateOf(time.Now())

	tasks := make([]*models.Task, 0, len(doc.Tasks))
	for _, yt := range doc.Tasks {
		if yt.Title == "" {
			return 0, ErrImportTitleRequired
		}

		dueDate := today
		if yt.DueDate != "" {
			parsed, err := time.Parse("2006-01-02", yt.DueDate)
			if err != nil {
				return 0, fmt.Errorf("%w: bad due_date %q for %q", ErrImportInvalidYAML, yt.DueDate, yt.Title)
			}
			dueDate = parsed.UTC()
		}

		var tags []models.Tag
		for _, name := range yt.Tags {
			tag, ok := tagsByName[name]
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrImportUnknownTag, name)
			}
			tags = append(tags, tag)
		}

		tasks = append(tasks, &models.Task{
			UserID:      userID,
			Title:       yt.Title,
			Description: yt.Description,
			DueDate:     dueDate,
			StatusID:    statuses[0].ID,
			AssigneeID:  userID,
			PriorityID:  priorities[0].ID,
			Tags:        tags,
		})
	}

	if err := s.taskRepo.CreateAll(tasks); err != nil {
		return 0, fmt.Errorf("failed to import tasks: %w", err)
	}

	return len(tasks), nil
}
