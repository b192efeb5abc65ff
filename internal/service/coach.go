package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
)

var ErrInvalidMessage = errors.New("message must be between 1 and 2000 characters")

const (
	// maxChatHistory is the number of stored messages kept per conversation.
	maxChatHistory = 40
	// MaxChatMessageLength caps a single user message, in characters.
	MaxChatMessageLength = 2000
)

// ChatModel continues a conversation. history holds the earlier turns, oldest first.
type ChatModel interface {
	Chat(ctx context.Context, instruction string, history []models.ChatMessage, message string) (string, error)
}

// CoachService is a conversational nutrition coach personalized with the
// user's profile. Conversations reset at the store's day boundary.
type CoachService struct {
	model  ChatModel
	store  *storage.KeyValueStore
	logger *zap.Logger
	locks  keyMutex
}

// Ensure CoachService implements ICoachService
var _ ICoachService = (*CoachService)(nil)

// NewCoachService creates a new CoachService instance
func NewCoachService(model ChatModel, store *storage.KeyValueStore, logger *zap.Logger) *CoachService {
	return &CoachService{
		model:  model,
		store:  store,
		logger: logger,
	}
}

// History returns today's conversation, opening with the coach's greeting.
func (s *CoachService) History(ctx context.Context, userID string, profile models.UserProfile) []models.ChatMessage {
	turns := storage.ReadDaily(ctx, s.store, storage.UserKey(coachChatPrefix, userID), []models.ChatMessage{})
	return withGreeting(profile, turns)
}

// Send adds message to today's conversation and returns the coach's reply
// along with the updated conversation. A failed reply leaves the
// conversation unchanged.
func (s *CoachService) Send(ctx context.Context, userID string, profile models.UserProfile, message string) (string, []models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > MaxChatMessageLength {
		return "", nil, ErrInvalidMessage
	}

	key := storage.UserKey(coachChatPrefix, userID)
	unlock := s.locks.lock(key)
	defer unlock()

	conversation := storage.LoadDaily(ctx, s.store, key, []models.ChatMessage{})
	reply, err := s.model.Chat(ctx, coachInstruction(profile), conversation.Value(), message)
	if err != nil {
		s.logger.Warn("coach reply failed", zap.String("user_id", userID), zap.Error(err))
		return "", nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", nil, fmt.Errorf("%w: empty reply", ErrGenerationFailed)
	}

	turns := conversation.Update(ctx, func(prev []models.ChatMessage) []models.ChatMessage {
		next := append(slices.Clone(prev),
			models.ChatMessage{Role: models.ChatRoleUser, Text: message},
			models.ChatMessage{Role: models.ChatRoleModel, Text: reply})
		if len(next) > maxChatHistory {
			next = next[len(next)-maxChatHistory:]
		}
		return next
	})
	return reply, withGreeting(profile, turns), nil
}

// Reset clears today's conversation.
func (s *CoachService) Reset(ctx context.Context, userID string) {
	key := storage.UserKey(coachChatPrefix, userID)
	unlock := s.locks.lock(key)
	defer unlock()
	storage.Remove(ctx, s.store, key)
}

// Greeting is the coach's opening line. It is shown to the user but never
// sent to the model.
func Greeting(profile models.UserProfile) string {
	return fmt.Sprintf("Hi, %s! I'm your Nutrition Coach. How can I help you reach your goals today?", orDefault(profile.Name, "there"))
}

func withGreeting(profile models.UserProfile, turns []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(turns)+1)
	out = append(out, models.ChatMessage{Role: models.ChatRoleModel, Text: Greeting(profile)})
	return append(out, turns...)
}

func coachInstruction(profile models.UserProfile) string {
	return fmt.Sprintf(`You are the "Nutrition Coach", a friendly and knowledgeable AI assistant.
Answer questions about nutrition, diet and health clearly, accurately and encouragingly.
Use the user's profile to personalize your answers, but do not mention that you have it unless it is directly relevant to the question.
Keep a positive, motivating tone.
The user's profile is: Age: %d, Weight: %.1f kg, Height: %.1f cm, Goal: %s, Allergies: %s, Restrictions: %s.`,
		profile.Age, profile.Weight, profile.Height, describeGoal(profile.Goal),
		orNone(profile.Allergies), orNone(profile.Restrictions))
}
