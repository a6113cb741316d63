package usecase

import (
	"context"

	"cekkuota-bot/internal/domain/model"
)

type SentMessage struct {
	ChatID string
	Text   string
}

type MockMessenger struct {
	SendTextFunc       func(ctx context.Context, chatID, text string) error
	FetchUpdatesFunc   func(ctx context.Context, offset int64, waitSeconds int) ([]model.Update, error)
	LatestUpdateIDFunc func(ctx context.Context) (int64, bool, error)
	ClearWebhookFunc   func(ctx context.Context) error

	Sent           []SentMessage
	FetchOffsets   []int64
	ClearedWebhook bool
}

func (m *MockMessenger) SendText(ctx context.Context, chatID, text string) error {
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text})
	if m.SendTextFunc != nil {
		return m.SendTextFunc(ctx, chatID, text)
	}
	return nil
}

func (m *MockMessenger) FetchUpdates(ctx context.Context, offset int64, waitSeconds int) ([]model.Update, error) {
	m.FetchOffsets = append(m.FetchOffsets, offset)
	if m.FetchUpdatesFunc != nil {
		return m.FetchUpdatesFunc(ctx, offset, waitSeconds)
	}
	return nil, nil
}

func (m *MockMessenger) LatestUpdateID(ctx context.Context) (int64, bool, error) {
	if m.LatestUpdateIDFunc != nil {
		return m.LatestUpdateIDFunc(ctx)
	}
	return 0, false, nil
}

func (m *MockMessenger) ClearWebhook(ctx context.Context) error {
	m.ClearedWebhook = true
	if m.ClearWebhookFunc != nil {
		return m.ClearWebhookFunc(ctx)
	}
	return nil
}

type MockQuotaChecker struct {
	CheckFunc func(ctx context.Context, msisdn string) (int, []byte)

	Checked []string
}

func (m *MockQuotaChecker) Check(ctx context.Context, msisdn string) (int, []byte) {
	m.Checked = append(m.Checked, msisdn)
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, msisdn)
	}
	return 0, nil
}

type MockCursorStore struct {
	Value int64

	Saves []int64
}

func (m *MockCursorStore) Load() int64 { return m.Value }

func (m *MockCursorStore) Save(id int64) {
	m.Value = id
	m.Saves = append(m.Saves, id)
}

type MockDispatcher struct {
	DispatchFunc func(ctx context.Context, chatID, text string) error

	Dispatched []SentMessage
}

func (m *MockDispatcher) Dispatch(ctx context.Context, chatID, text string) error {
	m.Dispatched = append(m.Dispatched, SentMessage{ChatID: chatID, Text: text})
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, chatID, text)
	}
	return nil
}
