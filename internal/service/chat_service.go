package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/menu-assistant/internal/agent"
	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"github.com/Lixing-Zhang/menu-assistant/internal/repository"
)

// ChatService answers chat messages using the menu agent
type ChatService struct {
	agent *agent.Agent
	log   *slog.Logger
}

// NewChatService builds the agent over the repository's items.
// The menu is read once here; the repository never changes after load.
func NewChatService(ctx context.Context, repo repository.MenuRepository, links agent.Links, log *slog.Logger) (*ChatService, error) {
	items, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu: %w", err)
	}

	return &ChatService{
		agent: agent.New(items, links),
		log:   log,
	}, nil
}

// Reply classifies a message and returns the agent's answer. It never fails.
func (s *ChatService) Reply(ctx context.Context, message string) models.AgentResult {
	reply := s.agent.Classify(message)

	s.log.DebugContext(ctx, "chat message classified",
		"intent", reply.Intent,
		"message_length", len(message),
		"actions", len(reply.Result.Actions),
	)

	return reply.Result
}
