package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Roshanpeter07/GLIMCarPool/internal/config"
	"github.com/Roshanpeter07/GLIMCarPool/internal/dialogflow"
	"github.com/Roshanpeter07/GLIMCarPool/internal/replies"
	"github.com/Roshanpeter07/GLIMCarPool/internal/rides"

	"github.com/gin-gonic/gin"
)

// Webhook handles one inbound intent call. Every path, including internal
// failure, answers 200 with a fulfillment text: the conversational surface
// must always have something to say.
func (h *Handler) Webhook(c *gin.Context) {
	var req dialogflow.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("ERROR: Failed to parse webhook payload: %v", err)
		h.reply(c, dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyParseError),
		})
		return
	}

	var resp dialogflow.WebhookResponse
	switch req.QueryResult.Intent.DisplayName {
	case dialogflow.IntentFindRide:
		resp = h.handleFindRide(&req)
	case dialogflow.IntentCheckStatus:
		resp = h.handleCheckStatus(&req)
	case dialogflow.IntentConfirmGroup:
		resp = h.handleConfirmation(&req, true)
	case dialogflow.IntentRejectGroup:
		resp = h.handleConfirmation(&req, false)
	case dialogflow.IntentCheckAvailableRides:
		resp = h.handleCheckAvailableRides(&req)
	default:
		resp = dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyNotUnderstood),
		}
	}

	h.reply(c, resp)
}

func (h *Handler) reply(c *gin.Context, resp dialogflow.WebhookResponse) {
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) backendError() dialogflow.WebhookResponse {
	return dialogflow.WebhookResponse{
		FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyBackendError),
	}
}

func (h *Handler) handleFindRide(req *dialogflow.WebhookRequest) dialogflow.WebhookResponse {
	stored, matches, err := h.Rides.RegisterRequest(req.QueryResult.Parameters)
	if err != nil {
		return h.backendError()
	}

	if len(matches) == 0 {
		return dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.Format(h.Lang, replies.KeyRegisteredNoMatch, stored.Location),
		}
	}

	return dialogflow.WebhookResponse{
		FulfillmentText: h.Replies.Format(h.Lang, replies.KeyMatchesFound,
			stored.DisplayName, len(matches), stored.Location),
		OutputContexts: []dialogflow.Context{{
			Name:          req.Session + "/contexts/" + config.ConfirmContextSuffix,
			LifespanCount: config.ConfirmContextLifespan,
			Parameters: map[string]any{
				"phone": stored.Identity,
				"name":  stored.DisplayName,
			},
		}},
	}
}

func (h *Handler) handleCheckStatus(req *dialogflow.WebhookRequest) dialogflow.WebhookResponse {
	identity := dialogflow.ToScalarString(req.QueryResult.Parameters[dialogflow.ParamPhoneNumber])

	stored, err := h.Rides.CheckStatus(identity)
	if errors.Is(err, rides.ErrRequestNotFound) {
		return dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyNoRecord),
		}
	}
	if err != nil {
		return h.backendError()
	}

	group := stored.GroupRef
	if group == "" {
		group = h.Replies.GetString(h.Lang, replies.KeyNoGroup)
	}
	return dialogflow.WebhookResponse{
		FulfillmentText: h.Replies.Format(h.Lang, replies.KeyStatus, stored.Status, group),
	}
}

func (h *Handler) handleConfirmation(req *dialogflow.WebhookRequest, confirmed bool) dialogflow.WebhookResponse {
	ctxParams := dialogflow.ContextParams(req.QueryResult.OutputContexts, config.ConfirmContextSuffix)
	identity := dialogflow.ToScalarString(ctxParams["phone"])
	if identity == "" {
		return dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.GetString(h.Lang, replies.KeySessionExpired),
		}
	}

	if !confirmed {
		if err := h.Resolver.Reject(identity); errors.Is(err, rides.ErrRequestNotFound) {
			return dialogflow.WebhookResponse{
				FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyUserNotFound),
			}
		} else if err != nil {
			return h.backendError()
		}
		return dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyGroupRejected),
		}
	}

	groupID, err := h.Resolver.Confirm(identity)
	switch {
	case errors.Is(err, rides.ErrRequestNotFound):
		return dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyUserNotFound),
		}
	case errors.Is(err, rides.ErrClusterBusy):
		return dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.GetString(h.Lang, replies.KeyClusterBusy),
		}
	case err != nil:
		return h.backendError()
	}

	return dialogflow.WebhookResponse{
		FulfillmentText: h.Replies.Format(h.Lang, replies.KeyGroupConfirmed, groupID),
	}
}

func (h *Handler) handleCheckAvailableRides(req *dialogflow.WebhookRequest) dialogflow.WebhookResponse {
	dateStr := dialogflow.ToScalarString(req.QueryResult.Parameters[dialogflow.ParamDate])

	date, groups, err := h.Rides.AvailableRides(dateStr)
	if err != nil {
		return h.backendError()
	}

	if len(groups) == 0 {
		return dialogflow.WebhookResponse{
			FulfillmentText: h.Replies.Format(h.Lang, replies.KeyNoRides, date),
		}
	}

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, h.Replies.Format(h.Lang, replies.KeyRideLine, g.GroupID, g.Time, g.Location))
	}
	return dialogflow.WebhookResponse{
		FulfillmentText: h.Replies.Format(h.Lang, replies.KeyRidesHeader, date, strings.Join(lines, "\n")),
	}
}
