package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"lengolf/models"
	ai "lengolf/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompletion replays a fixed sequence of model responses.
type scriptedCompletion struct {
	responses []*ai.ChatResponse
	err       error
	calls     int
}

func (s *scriptedCompletion) Complete(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	idx := s.calls
	s.calls++
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

type fakeRetrieval struct {
	similar []models.SimilarExchange
	replies map[string]string
}

func (f *fakeRetrieval) Retrieve(_ context.Context, _ string, _ models.Channel, _ string) (string, []models.SimilarExchange) {
	return "ex-1", f.similar
}

func (f *fakeRetrieval) RecordReply(_ context.Context, exchangeID, reply string) {
	if f.replies == nil {
		f.replies = make(map[string]string)
	}
	f.replies[exchangeID] = reply
}

type memHistory struct {
	msgs map[string][]models.Message
}

func (m *memHistory) Get(_ context.Context, conversationID string) ([]models.Message, error) {
	return m.msgs[conversationID], nil
}

func (m *memHistory) Append(_ context.Context, conversationID string, msgs ...models.Message) error {
	if m.msgs == nil {
		m.msgs = make(map[string][]models.Message)
	}
	m.msgs[conversationID] = append(m.msgs[conversationID], msgs...)
	return nil
}

// fakeExecutor returns canned results per action and records execution order.
type fakeExecutor struct {
	results  map[models.ActionName]models.FunctionResult
	executed []models.ActionName
}

func (f *fakeExecutor) Execute(_ context.Context, call models.FunctionCall, _ CallMeta) models.FunctionResult {
	f.executed = append(f.executed, call.Name)
	if r, ok := f.results[call.Name]; ok {
		return r
	}
	return models.FunctionResult{Success: true, Payload: map[string]any{"ok": true}}
}

type fakeSuggestions struct {
	created []models.Suggestion
}

func (f *fakeSuggestions) Create(_ context.Context, s models.Suggestion) (string, error) {
	f.created = append(f.created, s)
	return "sug-1", nil
}

func (f *fakeSuggestions) GetByID(_ context.Context, _ string) (*models.Suggestion, error) {
	return nil, nil
}

func (f *fakeSuggestions) SetFeedback(_ context.Context, _, _ string) error { return nil }

type fakeNotifier struct {
	customerTexts []string
	staffAlerts   []string
}

func (f *fakeNotifier) NotifyCustomer(_ context.Context, _ models.Channel, _, text string) error {
	f.customerTexts = append(f.customerTexts, text)
	return nil
}

func (f *fakeNotifier) AlertStaff(_ context.Context, title, _ string) error {
	f.staffAlerts = append(f.staffAlerts, title)
	return nil
}

func newTestService(completion *scriptedCompletion, executor *fakeExecutor) (*DefaultAssistantService, *fakeSuggestions, *fakeNotifier, *memHistory) {
	suggestions := &fakeSuggestions{}
	notifier := &fakeNotifier{}
	history := &memHistory{}
	svc := &DefaultAssistantService{
		Completion:    completion,
		Retrieval:     &fakeRetrieval{},
		History:       history,
		Executor:      executor,
		Suggestions:   suggestions,
		Notifier:      notifier,
		MaxIterations: DefaultMaxIterations,
		Now:           time.Now,
		Loc:           time.UTC,
	}
	return svc, suggestions, notifier, history
}

func incoming(text string) IncomingMessage {
	return IncomingMessage{
		ConversationID: "conv-1",
		Channel:        models.ChannelLine,
		Text:           text,
	}
}

func TestHandleMessageDirectReply(t *testing.T) {
	completion := &scriptedCompletion{responses: []*ai.ChatResponse{
		{Text: "You're welcome! See you soon."},
	}}
	executor := &fakeExecutor{}
	svc, suggestions, notifier, history := newTestService(completion, executor)

	sug, err := svc.HandleMessage(context.Background(), incoming("thank you!"))
	require.NoError(t, err)

	assert.Equal(t, "You're welcome! See you soon.", sug.ResponseText)
	assert.Empty(t, sug.Calls)
	assert.False(t, sug.NeedsHumanHelp)
	assert.Equal(t, 1, sug.Iterations)
	assert.InDelta(t, 0.5, sug.Confidence, 1e-9)

	assert.Empty(t, executor.executed)
	require.Len(t, suggestions.created, 1)
	require.Len(t, notifier.customerTexts, 1)
	assert.Len(t, history.msgs["conv-1"], 2)
}

func TestHandleMessageToolRoundThenReply(t *testing.T) {
	checkCall := models.FunctionCall{Name: models.ActionCheckAvailability, Params: map[string]any{"date": "2025-03-10"}}
	completion := &scriptedCompletion{responses: []*ai.ChatResponse{
		{ToolCalls: []models.FunctionCall{checkCall}},
		{Text: "Bay 2 is free at 14:00, shall I book it?"},
	}}
	executor := &fakeExecutor{}
	svc, _, _, _ := newTestService(completion, executor)

	sug, err := svc.HandleMessage(context.Background(), incoming("anything free tomorrow at 2pm?"))
	require.NoError(t, err)

	assert.Equal(t, []models.ActionName{models.ActionCheckAvailability}, executor.executed)
	assert.Equal(t, 2, sug.Iterations)
	assert.InDelta(t, 0.6, sug.Confidence, 1e-9)
	assert.Len(t, sug.Calls, 1)
}

func TestHandleMessageApprovalStopsTurn(t *testing.T) {
	create := models.FunctionCall{Name: models.ActionCreateBooking}
	lookup := models.FunctionCall{Name: models.ActionLookupCustomer}
	completion := &scriptedCompletion{responses: []*ai.ChatResponse{
		{ToolCalls: []models.FunctionCall{create, lookup}},
		{Text: "should never be requested"},
	}}
	executor := &fakeExecutor{results: map[models.ActionName]models.FunctionResult{
		models.ActionCreateBooking: {
			Success:          true,
			RequiresApproval: true,
			ApprovalSummary:  "New booking: Khun Somchai",
			ApprovalID:       "ap-1",
		},
	}}
	svc, _, notifier, _ := newTestService(completion, executor)

	sug, err := svc.HandleMessage(context.Background(), incoming("book bay 14:00 tomorrow"))
	require.NoError(t, err)

	// The second requested action never executes and the loop never returns
	// to the model.
	assert.Equal(t, []models.ActionName{models.ActionCreateBooking}, executor.executed)
	assert.Equal(t, 1, completion.calls)
	assert.Equal(t, "ap-1", sug.ApprovalID)
	assert.Equal(t, "New booking: Khun Somchai", sug.ResponseText)

	// Customer reply is held until staff decide.
	assert.Empty(t, notifier.customerTexts)
}

func TestHandleMessageOrderedExecution(t *testing.T) {
	lookup := models.FunctionCall{Name: models.ActionLookupBooking}
	cancel := models.FunctionCall{Name: models.ActionCancelBooking}
	completion := &scriptedCompletion{responses: []*ai.ChatResponse{
		{ToolCalls: []models.FunctionCall{lookup, cancel}},
	}}
	executor := &fakeExecutor{results: map[models.ActionName]models.FunctionResult{
		models.ActionCancelBooking: {
			Success: true, RequiresApproval: true,
			ApprovalSummary: "Cancel booking bk-1", ApprovalID: "ap-2",
		},
	}}
	svc, _, _, _ := newTestService(completion, executor)

	sug, err := svc.HandleMessage(context.Background(), incoming("cancel my booking tomorrow"))
	require.NoError(t, err)

	assert.Equal(t, []models.ActionName{models.ActionLookupBooking, models.ActionCancelBooking}, executor.executed)
	assert.Equal(t, "ap-2", sug.ApprovalID)
}

func TestHandleMessageIterationCeiling(t *testing.T) {
	looping := &ai.ChatResponse{ToolCalls: []models.FunctionCall{{Name: models.ActionLookupCustomer}}}
	completion := &scriptedCompletion{responses: []*ai.ChatResponse{looping}}
	executor := &fakeExecutor{}
	svc, _, _, _ := newTestService(completion, executor)

	sug, err := svc.HandleMessage(context.Background(), incoming("hmm"))
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxIterations, completion.calls)
	assert.Equal(t, DefaultMaxIterations, sug.Iterations)
	assert.True(t, sug.NeedsHumanHelp)
	assert.Equal(t, fallbackReply, sug.ResponseText)
	assert.Zero(t, sug.Confidence)
}

func TestHandleMessageCompletionFailure(t *testing.T) {
	completion := &scriptedCompletion{err: errors.New("model unavailable")}
	executor := &fakeExecutor{}
	svc, suggestions, _, _ := newTestService(completion, executor)

	sug, err := svc.HandleMessage(context.Background(), incoming("hello"))
	require.NoError(t, err)

	assert.True(t, sug.NeedsHumanHelp)
	assert.Equal(t, fallbackReply, sug.ResponseText)
	require.Len(t, suggestions.created, 1)
}

func TestConfidenceBounds(t *testing.T) {
	assert.Equal(t, 0.0, scoreConfidence(3, true, true))
	assert.InDelta(t, 0.55, scoreConfidence(0, true, false), 1e-9)
	assert.InDelta(t, 0.95, scoreConfidence(10, true, false), 1e-9)
	for rounds := 0; rounds <= 20; rounds++ {
		c := scoreConfidence(rounds, rounds%2 == 0, false)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 0.95)
	}
}
