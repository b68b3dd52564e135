package agentmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentmemory/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Interface compliance (compile-time assertions)
var (
	_ Callback = (*FunctionCallback)(nil)
	_ Callback = (*LoggingCallback)(nil)
	_ Callback = (*RecordValidationCallback)(nil)
	_ Callback = (*MockCallback)(nil)
)

// MockCallback for testing callback orchestration
type MockCallback struct {
	mock.Mock
	callbackType CallbackType
}

func NewMockCallback(callbackType CallbackType) *MockCallback {
	return &MockCallback{callbackType: callbackType}
}

func (m *MockCallback) Type() CallbackType { return m.callbackType }

func (m *MockCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	args := m.Called(ctx, callbackCtx)
	return args.Error(0)
}

// -------------------- CallbackManager Tests --------------------

func TestCallbackManager_ExecutesInRegistrationOrder(t *testing.T) {
	manager := NewCallbackManager()
	var order []string

	manager.RegisterCallback(NewFunctionCallback(CallbackAfterRecord, func(ctx context.Context, callbackCtx *CallbackContext) error {
		order = append(order, "first")
		return nil
	}))
	manager.RegisterCallback(NewFunctionCallback(CallbackAfterRecord, func(ctx context.Context, callbackCtx *CallbackContext) error {
		order = append(order, "second")
		return nil
	}))

	err := manager.ExecuteCallbacks(context.Background(), CallbackAfterRecord, &CallbackContext{CallbackType: CallbackAfterRecord})
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCallbackManager_NoCallbacksRegistered(t *testing.T) {
	manager := NewCallbackManager()

	err := manager.ExecuteCallbacks(context.Background(), CallbackOnSave, &CallbackContext{CallbackType: CallbackOnSave})
	assert.NoError(t, err)
}

func TestCallbackManager_ErrorStopsChain(t *testing.T) {
	manager := NewCallbackManager()
	callbackCtx := &CallbackContext{CallbackType: CallbackBeforeRecord}

	failing := NewMockCallback(CallbackBeforeRecord)
	failing.On("Execute", mock.Anything, callbackCtx).Return(assert.AnError)
	skipped := NewMockCallback(CallbackBeforeRecord)

	manager.RegisterCallback(failing)
	manager.RegisterCallback(skipped)

	err := manager.ExecuteCallbacks(context.Background(), CallbackBeforeRecord, callbackCtx)
	assert.ErrorIs(t, err, assert.AnError)
	failing.AssertExpectations(t)
	skipped.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestCallbackManager_RoutesByType(t *testing.T) {
	manager := NewCallbackManager()

	recordOnly := NewMockCallback(CallbackBeforeRecord)
	manager.RegisterCallback(recordOnly)

	err := manager.ExecuteCallbacks(context.Background(), CallbackAfterSuggest, &CallbackContext{CallbackType: CallbackAfterSuggest})
	assert.NoError(t, err)
	recordOnly.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

// -------------------- FunctionCallback Tests --------------------

func TestFunctionCallback(t *testing.T) {
	var received *CallbackContext

	callback := NewFunctionCallback(CallbackOnLoad, func(ctx context.Context, callbackCtx *CallbackContext) error {
		received = callbackCtx
		return nil
	})
	assert.Equal(t, CallbackOnLoad, callback.Type())

	callbackCtx := &CallbackContext{CallbackType: CallbackOnLoad, Dir: "/tmp/memory"}
	err := callback.Execute(context.Background(), callbackCtx)
	assert.NoError(t, err)
	assert.Same(t, callbackCtx, received)
}

// -------------------- LoggingCallback Tests --------------------

func TestLoggingCallback_FormatsByContext(t *testing.T) {
	var messages []string
	logger := func(message string) { messages = append(messages, message) }

	recordLog := NewLoggingCallback(CallbackBeforeRecord, logger)
	err := recordLog.Execute(context.Background(), &CallbackContext{
		CallbackType: CallbackBeforeRecord,
		Execution:    &TaskExecution{TaskID: "task-1", Category: "coding"},
	})
	assert.NoError(t, err)

	suggestLog := NewLoggingCallback(CallbackAfterSuggest, logger)
	err = suggestLog.Execute(context.Background(), &CallbackContext{
		CallbackType: CallbackAfterSuggest,
		Suggestion:   &core.Suggestion{RecommendedAction: "tdd", Confidence: 0.42},
	})
	assert.NoError(t, err)

	saveLog := NewLoggingCallback(CallbackOnSave, logger)
	err = saveLog.Execute(context.Background(), &CallbackContext{
		CallbackType: CallbackOnSave,
		Dir:          "/tmp/memory",
	})
	assert.NoError(t, err)

	if len(messages) != 3 {
		t.Fatalf("expected 3 log messages, got %d", len(messages))
	}
	assert.Contains(t, messages[0], "task-1")
	assert.Contains(t, messages[0], "coding")
	assert.Contains(t, messages[1], "tdd")
	assert.Contains(t, messages[1], "0.42")
	assert.Contains(t, messages[2], "/tmp/memory")
}

func TestLoggingCallback_NilLogger(t *testing.T) {
	callback := NewLoggingCallback(CallbackOnLoad, nil)

	err := callback.Execute(context.Background(), &CallbackContext{CallbackType: CallbackOnLoad})
	assert.NoError(t, err)
}

// -------------------- RecordValidationCallback Tests --------------------

func TestRecordValidationCallback(t *testing.T) {
	callback := NewRecordValidationCallback(func(exec *TaskExecution) error {
		if exec.Category == "" {
			return errors.New("category is required")
		}
		return nil
	})
	assert.Equal(t, CallbackBeforeRecord, callback.Type())

	err := callback.Execute(context.Background(), &CallbackContext{
		CallbackType: CallbackBeforeRecord,
		Execution:    &TaskExecution{Category: ""},
	})
	assert.EqualError(t, err, "category is required")

	err = callback.Execute(context.Background(), &CallbackContext{
		CallbackType: CallbackBeforeRecord,
		Execution:    &TaskExecution{Category: "coding"},
	})
	assert.NoError(t, err)

	// Contexts without an execution pass through untouched.
	err = callback.Execute(context.Background(), &CallbackContext{CallbackType: CallbackBeforeRecord})
	assert.NoError(t, err)
}

func TestRecordValidationCallback_NilValidator(t *testing.T) {
	callback := NewRecordValidationCallback(nil)

	err := callback.Execute(context.Background(), &CallbackContext{
		CallbackType: CallbackBeforeRecord,
		Execution:    &TaskExecution{Category: "coding"},
	})
	assert.NoError(t, err)
}
