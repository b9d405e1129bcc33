package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/biznexus-ai/backend/internal/calendar"
)

const schedulerAgentName = "Scheduler Agent"

const schedulerInstruction = "You are an efficient scheduling assistant for a small business owner. " +
	"You know the calendar of upcoming events and help plan meetings, audits " +
	"and supplier calls around it. Point out conflicts, suggest free slots, " +
	"and keep answers short and time-specific."

// SchedulerAgent answers calendar questions from the event store.
type SchedulerAgent struct {
	events *calendar.Store
}

func NewSchedulerAgent(events *calendar.Store) *SchedulerAgent {
	return &SchedulerAgent{events: events}
}

func (a *SchedulerAgent) Name() string { return schedulerAgentName }

func (a *SchedulerAgent) SystemInstruction() string { return schedulerInstruction }

func (a *SchedulerAgent) Context(ctx context.Context) string {
	events := a.events.List()
	if len(events) == 0 {
		return "The calendar is currently empty."
	}

	var b strings.Builder
	b.WriteString("Upcoming calendar events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "- %s at %s (%s)\n", e.Title, e.Start, e.Type)
	}
	return b.String()
}
