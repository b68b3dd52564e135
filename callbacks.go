package agentmemory

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentmemory/core"
)

// CallbackType defines the specific lifecycle points where callbacks can be
// executed.
//
// Callbacks provide a flexible mechanism for hooking into the memory
// lifecycle without modifying core logic. Available callback types:
//   - BeforeRecord/AfterRecord: Around writing a task execution to memory
//   - AfterSuggest: After a suggestion has been computed
//   - OnSave/OnLoad: After a snapshot operation completed successfully
//
// Callbacks are executed synchronously and can influence execution flow by
// returning errors that terminate the operation.
type CallbackType string

const (
	// CallbackBeforeRecord is triggered before a task execution is written.
	// Use for validation, enrichment, or auditing; returning an error vetoes
	// the recording.
	CallbackBeforeRecord CallbackType = "before_record"

	// CallbackAfterRecord is triggered after a task execution was written.
	// Use for metrics collection, change notification, or checkpointing.
	CallbackAfterRecord CallbackType = "after_record"

	// CallbackAfterSuggest is triggered after a suggestion was computed.
	// Use for logging recommendations or measuring confidence drift.
	CallbackAfterSuggest CallbackType = "after_suggest"

	// CallbackOnSave is triggered after a snapshot save completed.
	CallbackOnSave CallbackType = "on_save"

	// CallbackOnLoad is triggered after a snapshot load completed, including
	// the implicit load at construction time.
	CallbackOnLoad CallbackType = "on_load"
)

// CallbackContext provides context information for callback execution.
//
// Only the fields relevant to the triggering callback type are populated:
// Execution for record hooks, Episode for AfterRecord, Suggestion for
// AfterSuggest, and Dir for snapshot hooks. Metadata offers extensible
// storage for custom callback data.
type CallbackContext struct {
	// CallbackType indicates which callback type triggered this execution.
	// Allows shared callback implementations to behave differently based on
	// the lifecycle phase.
	CallbackType CallbackType

	// Execution is the task execution being recorded. BeforeRecord callbacks
	// may modify it in place before it is written.
	Execution *TaskExecution

	// Episode is the stored episode. Populated for AfterRecord.
	Episode *core.Episode

	// Suggestion is the computed recommendation. Populated for AfterSuggest.
	Suggestion *core.Suggestion

	// Dir is the snapshot directory. Populated for OnSave and OnLoad.
	Dir string

	// Metadata provides extensible storage for custom callback data.
	Metadata map[string]interface{}
}

// Callback defines the interface for memory lifecycle hooks.
//
// Implementations should be:
//   - Fast: Callbacks run synchronously and can block the operation
//   - Safe: Handle errors gracefully and avoid panics
//   - Stateless: Don't rely on mutable state between invocations
//
// Error Handling:
// Callbacks that return errors will terminate the associated operation.
// Use this mechanism for validation or to enforce business rules.
type Callback interface {
	// Type returns the callback type this implementation handles. Used by
	// the callback manager to route callbacks to appropriate handlers.
	Type() CallbackType

	// Execute performs the callback logic with the provided context.
	// Returning an error will terminate the associated operation.
	Execute(ctx context.Context, callbackCtx *CallbackContext) error
}

// FunctionCallback wraps a function as a callback implementation.
//
// This is a convenience wrapper that allows simple functions to be used as
// callbacks without implementing the full Callback interface.
//
// Example:
//
//	auditCallback := NewFunctionCallback(
//	    CallbackAfterRecord,
//	    func(ctx context.Context, callbackCtx *CallbackContext) error {
//	        log.Printf("recorded: %s", callbackCtx.Episode.ID)
//	        return nil
//	    },
//	)
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, callbackCtx *CallbackContext) error
}

// NewFunctionCallback creates a new function-based callback.
//
// Parameters:
//   - callbackType: The callback type this function should handle
//   - fn: The function to execute when the callback is triggered
func NewFunctionCallback(
	callbackType CallbackType,
	fn func(ctx context.Context, callbackCtx *CallbackContext) error,
) *FunctionCallback {
	return &FunctionCallback{
		callbackType: callbackType,
		fn:           fn,
	}
}

// Type returns the callback type this function handles.
func (c *FunctionCallback) Type() CallbackType {
	return c.callbackType
}

// Execute calls the wrapped function with the provided context.
func (c *FunctionCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	return c.fn(ctx, callbackCtx)
}

// CallbackManager orchestrates callback execution throughout the memory
// lifecycle.
//
// The manager provides a centralized registry for callbacks. Multiple
// callbacks can be registered per type; they execute sequentially in
// registration order, and any callback returning an error terminates
// execution and prevents subsequent callbacks from running.
//
// Thread Safety:
// The CallbackManager is not inherently thread-safe for registration. Once
// registration is complete, callback execution is safe for concurrent use.
type CallbackManager struct {
	callbacks map[CallbackType][]Callback
}

// NewCallbackManager creates a new callback manager instance.
func NewCallbackManager() *CallbackManager {
	return &CallbackManager{
		callbacks: make(map[CallbackType][]Callback),
	}
}

// RegisterCallback adds a callback to the manager for its declared type.
//
// Multiple callbacks can be registered for the same type and will be
// executed in registration order.
func (cm *CallbackManager) RegisterCallback(callback Callback) {
	callbackType := callback.Type()
	cm.callbacks[callbackType] = append(cm.callbacks[callbackType], callback)
}

// ExecuteCallbacks executes all registered callbacks for the specified type.
//
// Callbacks are executed sequentially in registration order. If any callback
// returns an error, execution stops immediately and the error is returned.
func (cm *CallbackManager) ExecuteCallbacks(
	ctx context.Context,
	callbackType CallbackType,
	callbackCtx *CallbackContext,
) error {
	callbacks, exists := cm.callbacks[callbackType]
	if !exists {
		return nil // No callbacks registered for this type
	}

	for _, callback := range callbacks {
		if err := callback.Execute(ctx, callbackCtx); err != nil {
			return err
		}
	}

	return nil
}

// LoggingCallback provides structured logging for memory lifecycle events.
//
// This callback implementation captures lifecycle events and forwards them
// to a logging function. It's useful for debugging, monitoring, and audit
// trails.
//
// Example:
//
//	logger := func(message string) {
//	    log.Printf("[MEMORY] %s", message)
//	}
//	callback := NewLoggingCallback(CallbackAfterRecord, logger)
type LoggingCallback struct {
	callbackType CallbackType
	logger       func(message string)
}

// NewLoggingCallback creates a new logging callback.
//
// Parameters:
//   - callbackType: The callback type to handle
//   - logger: Function to call with formatted log messages
func NewLoggingCallback(callbackType CallbackType, logger func(message string)) *LoggingCallback {
	return &LoggingCallback{
		callbackType: callbackType,
		logger:       logger,
	}
}

// Type returns the callback type this logger handles.
func (c *LoggingCallback) Type() CallbackType {
	return c.callbackType
}

// Execute logs the lifecycle event with context information.
//
// The log message includes the callback type plus the task or directory
// details when available. If no logger function is configured, the callback
// silently succeeds.
func (c *LoggingCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	if c.logger != nil {
		switch {
		case callbackCtx.Execution != nil:
			c.logger(fmt.Sprintf("[%s] Task: %s, Category: %s", c.callbackType, callbackCtx.Execution.TaskID, callbackCtx.Execution.Category))
		case callbackCtx.Suggestion != nil:
			c.logger(fmt.Sprintf("[%s] Recommended: %q, Confidence: %.2f", c.callbackType, callbackCtx.Suggestion.RecommendedAction, callbackCtx.Suggestion.Confidence))
		default:
			c.logger(fmt.Sprintf("[%s] Dir: %s", c.callbackType, callbackCtx.Dir))
		}
	}
	return nil
}

// RecordValidationCallback validates task executions before they are
// recorded.
//
// This callback provides a mechanism to enforce business rules on incoming
// recordings, for example requiring a non-empty category or rejecting
// implausible execution times. The validator receives the execution about to
// be written and can return an error to veto it.
//
// Example:
//
//	validator := func(exec *TaskExecution) error {
//	    if exec.Category == "" {
//	        return errors.New("category is required")
//	    }
//	    return nil
//	}
//	callback := NewRecordValidationCallback(validator)
type RecordValidationCallback struct {
	validator func(exec *TaskExecution) error
}

// NewRecordValidationCallback creates a new record validation callback.
//
// Parameters:
//   - validator: Function to validate executions before recording
func NewRecordValidationCallback(validator func(exec *TaskExecution) error) *RecordValidationCallback {
	return &RecordValidationCallback{
		validator: validator,
	}
}

// Type returns the callback type (always CallbackBeforeRecord).
func (c *RecordValidationCallback) Type() CallbackType {
	return CallbackBeforeRecord
}

// Execute validates the execution about to be recorded.
//
// If a validator is configured and the context carries an execution, the
// validator decides whether recording proceeds. Validation errors are
// returned to veto the recording.
func (c *RecordValidationCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	if c.validator != nil && callbackCtx.Execution != nil {
		return c.validator(callbackCtx.Execution)
	}
	return nil
}
