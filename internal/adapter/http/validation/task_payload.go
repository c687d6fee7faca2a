package validation

import (
	"bytes"
	"encoding/json"
	"errors"

	"planloop/internal/adapter/http/dto"
	"planloop/internal/adapter/http/mapper"
	"planloop/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput turns a bound create request into domain input.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	input := domain.CreateTaskInput{
		Title:    req.Title,
		Subtasks: mapper.ToSubtasks(req.Subtasks),
		Tags:     req.Tags,
	}

	if req.DueDate != nil {
		due, err := domain.ParseDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &due
	}
	if req.Recurrence != nil {
		input.Recurrence = domain.Recurrence(*req.Recurrence)
	}
	if req.CustomInterval != nil {
		input.CustomInterval = *req.CustomInterval
	}
	if req.CustomUnit != nil {
		input.CustomUnit = domain.Recurrence(*req.CustomUnit)
	}
	if input.Recurrence == domain.RecurrenceCustom && !input.CustomUnit.BaseUnit() {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	return input, nil
}

// BuildTaskPatch turns a bound update request plus the raw body into a
// patch. The raw message map distinguishes absent fields from fields
// sent as null, which matters for clearable fields like due_date.
func BuildTaskPatch(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.TaskPatch, domain.UpdateIntent, error) {
	patch := domain.TaskPatch{}

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
		}
		patch.Title = req.Title
	}

	if hasJSONField(raw, "due_date") {
		patch.DueDateSet = true
		if !isJSONNull(raw["due_date"]) {
			if req.DueDate == nil {
				return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
			}
			due, err := domain.ParseDate(*req.DueDate)
			if err != nil {
				return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
			}
			patch.DueDate = &due
		}
	}

	if hasJSONField(raw, "tags") {
		patch.TagsSet = true
		patch.Tags = req.Tags
	}

	if hasJSONField(raw, "subtasks") {
		patch.SubtasksSet = true
		patch.Subtasks = mapper.ToSubtasks(req.Subtasks)
	}

	if hasJSONField(raw, "recurrence") {
		if req.Recurrence == nil {
			return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
		}
		value := domain.Recurrence(*req.Recurrence)
		patch.Recurrence = &value
	}
	if hasJSONField(raw, "custom_interval") {
		if req.CustomInterval == nil {
			return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
		}
		patch.CustomInterval = req.CustomInterval
	}
	if hasJSONField(raw, "custom_unit") {
		if req.CustomUnit == nil {
			return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
		}
		value := domain.Recurrence(*req.CustomUnit)
		patch.CustomUnit = &value
	}

	intent := domain.UpdateIntent{DragMove: req.DragMove}
	if req.EditScope != nil {
		switch *req.EditScope {
		case "all":
			intent.Scope = domain.EditScopeAll
		case "this_and_following":
			intent.Scope = domain.EditScopeThisAndFollowing
		default:
			return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
		}
	}

	if !hasTaskPatchFields(patch) {
		return domain.TaskPatch{}, domain.UpdateIntent{}, ErrInvalidTaskPayload
	}
	return patch, intent, nil
}

func hasTaskPatchFields(p domain.TaskPatch) bool {
	return p.Title != nil ||
		p.DueDateSet ||
		p.TagsSet ||
		p.SubtasksSet ||
		p.Recurrence != nil ||
		p.CustomInterval != nil ||
		p.CustomUnit != nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
