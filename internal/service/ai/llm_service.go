package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/elenchus/socratic-tutor/backend/internal/config"
	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
)

// Service is the production Gateway backed by an eino chat chain.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the gateway from configuration. Missing credentials
// yield ErrConfiguration so main can report the failure once and refuse to
// serve dialogue routes.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: set ARK_API_KEY (or AK/SK pair) and ARK_MODEL", ErrConfiguration)
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// CreateSession seeds a local conversational handle. The prior transcript is
// converted to model messages up front so every send replays full context.
func (s *Service) CreateSession(_ context.Context, prior []dialogue.Turn, systemInstruction string) (Session, error) {
	sess := &chatSession{
		id:      uuid.NewString(),
		svc:     s,
		system:  systemInstruction,
		history: historyMessages(prior),
	}
	log.Printf("[ai] session %s created with %d prior turns", sess.id, len(prior))
	return sess, nil
}

// GenerateOnce performs a one-shot generation with no session context.
func (s *Service) GenerateOnce(ctx context.Context, promptText string) (string, error) {
	response, err := s.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(promptText)})
	if err != nil {
		return "", fmt.Errorf("one-shot generation failed: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", fmt.Errorf("%w: empty generation result", ErrMalformedResponse)
	}
	return response.Content, nil
}

// chatSession holds the handle's in-memory conversation state.
type chatSession struct {
	mu      sync.Mutex
	id      string
	svc     *Service
	system  string
	history []*schema.Message
}

// SendStream starts a streaming exchange. The returned stream folds the
// exchange into the session history once fully consumed, so only sealed
// replies become part of the context for later sends.
func (c *chatSession) SendStream(ctx context.Context, text string) (Stream, error) {
	c.mu.Lock()
	snapshot := append([]*schema.Message(nil), c.history...)
	c.mu.Unlock()

	input := map[string]any{
		"system":  c.system,
		"history": snapshot,
		"query":   text,
	}

	reader, err := c.svc.chain.Stream(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to stream chat chain output: %w", err)
	}

	return &chunkStream{session: c, query: text, reader: reader}, nil
}

func (c *chatSession) appendExchange(query, reply string) {
	c.mu.Lock()
	c.history = append(c.history,
		schema.UserMessage(query),
		schema.AssistantMessage(reply, nil),
	)
	c.mu.Unlock()
}

// chunkStream adapts the eino stream reader to the Gateway contract.
type chunkStream struct {
	session *chatSession
	query   string
	reader  *schema.StreamReader[*schema.Message]
	chunks  []*schema.Message
	sealed  bool
}

// Recv returns the next non-empty fragment, or io.EOF once the stream ends.
func (s *chunkStream) Recv() (string, error) {
	for {
		chunk, err := s.reader.Recv()
		if errors.Is(err, io.EOF) {
			s.seal()
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if chunk == nil {
			continue
		}
		s.chunks = append(s.chunks, chunk)
		if chunk.Content == "" {
			continue
		}
		return chunk.Content, nil
	}
}

// Close releases the underlying reader without sealing.
func (s *chunkStream) Close() {
	s.reader.Close()
}

func (s *chunkStream) seal() {
	if s.sealed {
		return
	}
	s.sealed = true

	full, err := schema.ConcatMessages(s.chunks)
	if err != nil || full == nil || full.Content == "" {
		log.Printf("[ai] session %s: exchange not folded into history: %v", s.session.id, err)
		return
	}
	s.session.appendExchange(s.query, full.Content)
}

// historyMessages converts transcript turns to model messages, mirroring the
// role mapping the streaming chain expects.
func historyMessages(turns []dialogue.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}
	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Speaker {
		case dialogue.SpeakerStudent:
			history = append(history, schema.UserMessage(turn.Text))
		case dialogue.SpeakerTutor:
			history = append(history, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return history
}
