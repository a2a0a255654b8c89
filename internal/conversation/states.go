package conversation

import "strings"

// State is a step in the guided conversation flow.
type State string

const (
	StateInitial               State = "INITIAL"
	StateServiceSelection      State = "SERVICE_SELECTION"
	StateLocationInput         State = "LOCATION_INPUT"
	StateDescriptionInput      State = "DESCRIPTION_INPUT"
	StateUrgencySelection      State = "URGENCY_SELECTION"
	StateConfirmation          State = "CONFIRMATION"
	StateCancellationConfirm   State = "CANCELLATION_CONFIRM"
	StateModificationSelection State = "MODIFICATION_SELECTION"
	StatePaymentSelection      State = "PAYMENT_SELECTION"
	StateCompleted             State = "COMPLETED"
)

// States returns the closed set of conversation states.
func States() []State {
	return []State{
		StateInitial, StateServiceSelection, StateLocationInput,
		StateDescriptionInput, StateUrgencySelection, StateConfirmation,
		StateCancellationConfirm, StateModificationSelection,
		StatePaymentSelection, StateCompleted,
	}
}

// NormalizeState clamps an arbitrary string to a known state. Unknown values
// fall back to INITIAL so a bad classifier answer can never wedge a session.
func NormalizeState(raw string) (State, bool) {
	candidate := State(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range States() {
		if s == candidate {
			return s, true
		}
	}
	return StateInitial, false
}

// SystemAction is what the engine asks the rest of the system to do after a
// turn. The set is closed; anything else is clamped to a clarification.
type SystemAction string

const (
	ActionSendMessage          SystemAction = "send_message"
	ActionCreateRequest        SystemAction = "create_request"
	ActionCancelRequest        SystemAction = "cancel_request"
	ActionUpdateRequest        SystemAction = "update_request"
	ActionSearchProviders      SystemAction = "search_providers"
	ActionEscalateToHuman      SystemAction = "escalate_to_human"
	ActionRequestClarification SystemAction = "request_clarification"
)

// SystemActions returns the closed action set.
func SystemActions() []SystemAction {
	return []SystemAction{
		ActionSendMessage, ActionCreateRequest, ActionCancelRequest,
		ActionUpdateRequest, ActionSearchProviders, ActionEscalateToHuman,
		ActionRequestClarification,
	}
}

// NormalizeAction clamps an arbitrary string to a known system action.
func NormalizeAction(raw string) (SystemAction, bool) {
	candidate := SystemAction(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range SystemActions() {
		if a == candidate {
			return a, true
		}
	}
	return ActionRequestClarification, false
}
