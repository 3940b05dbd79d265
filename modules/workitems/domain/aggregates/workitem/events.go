package workitem

import (
	"context"
	"encoding/json"

	"github.com/iota-uz/taskboard/pkg/composables"
)

type CreatedEvent struct {
	ActorID uint
	Result  *WorkItem
}

type UpdatedEvent struct {
	ActorID uint
	Before  *WorkItem
	Result  *WorkItem
	Diff    json.RawMessage
}

type DeletedEvent struct {
	ActorID uint
	Result  *WorkItem
}

func NewCreatedEvent(ctx context.Context, result *WorkItem) *CreatedEvent {
	return &CreatedEvent{ActorID: actorID(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, before, result *WorkItem, diff json.RawMessage) *UpdatedEvent {
	return &UpdatedEvent{ActorID: actorID(ctx), Before: before, Result: result, Diff: diff}
}

func NewDeletedEvent(ctx context.Context, result *WorkItem) *DeletedEvent {
	return &DeletedEvent{ActorID: actorID(ctx), Result: result}
}

func actorID(ctx context.Context) uint {
	u, err := composables.UseUser(ctx)
	if err != nil {
		return 0
	}
	return u.ID()
}
