// Package dialogflow holds the webhook wire contract toward the conversational
// intent dispatcher, plus the normalization helpers that turn its loosely typed
// parameter values into plain scalars.
package dialogflow

import "strings"

// Intent display names dispatched by the webhook handler.
const (
	IntentFindRide            = "Find Ride"
	IntentCheckStatus         = "Check Status"
	IntentConfirmGroup        = "Confirm Group"
	IntentRejectGroup         = "Reject Group"
	IntentCheckAvailableRides = "Check Available Rides"
)

// Parameter names used by the ride intents.
const (
	ParamGivenName   = "given-name"
	ParamPhoneNumber = "phone-number"
	ParamLocation    = "location"
	ParamDate        = "date"
	ParamTime        = "time"
)

// Intent is the matched intent of a webhook call.
type Intent struct {
	DisplayName string `json:"displayName"`
}

// Context is a Dialogflow conversation context. The handler uses it to carry
// the confirmation parameters (phone + name) across turns.
type Context struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

// QueryResult is the NLU outcome delivered with a webhook call.
type QueryResult struct {
	Intent         Intent         `json:"intent"`
	Parameters     map[string]any `json:"parameters"`
	OutputContexts []Context      `json:"outputContexts"`
}

// WebhookRequest is the inbound webhook payload.
type WebhookRequest struct {
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

// WebhookResponse is the fulfillment answer returned to the dispatcher.
// Every code path produces one; the webhook never answers without text.
type WebhookResponse struct {
	FulfillmentText string    `json:"fulfillmentText"`
	OutputContexts  []Context `json:"outputContexts,omitempty"`
}

// ContextParams returns the parameters of the first context whose name ends
// with the given suffix, or nil when no such context is present.
func ContextParams(contexts []Context, suffix string) map[string]any {
	for _, ctx := range contexts {
		if strings.HasSuffix(ctx.Name, suffix) {
			return ctx.Parameters
		}
	}
	return nil
}
