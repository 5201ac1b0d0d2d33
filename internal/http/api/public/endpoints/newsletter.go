package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/public/packets"
	"github.com/parish-tech/steeple/internal/newsletter"
)

type NewsletterController struct {
	verification *newsletter.VerificationService
}

func newNewsletterController(v *newsletter.VerificationService) *NewsletterController {
	return &NewsletterController{verification: v}
}

// NewsletterModule mounts the public subscribe/verify/resubscribe endpoints.
func NewsletterModule(v *newsletter.VerificationService) api.Module {
	ctl := newNewsletterController(v)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/newsletter-subscribers/subscribe", ctl.subscribe)
		c.PUBLIC_POST("/newsletter-subscribers/verify", ctl.verify)
		c.PUBLIC_POST("/newsletter-subscribers/resubscribe", ctl.resubscribe)
	})
}

// POST /api/public/newsletter-subscribers/subscribe
func (n *NewsletterController) subscribe(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SubscribeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	flow := newsletter.NewFlow()
	if !flow.SubmitEmail(request.Email) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "email is required"}
	}

	if _, err := n.verification.Subscribe(ctx, request.Email, request.Name); err != nil {
		switch {
		case errors.Is(err, newsletter.ErrInvalidEmail):
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid email address"}
		case errors.Is(err, newsletter.ErrAlreadyActive):
			return nil, &api.APIError{Code: http.StatusConflict, Message: "already subscribed"}
		default:
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not subscribe"}
		}
	}

	return api.Data(packets.SubscribeResponse{
		Status:  string(flow.Status),
		Message: "verification code sent",
	}), nil
}

// POST /api/public/newsletter-subscribers/verify
func (n *NewsletterController) verify(ctx *gin.Context) (any, *api.APIError) {
	var request packets.VerifyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	verified, err := n.verification.Verify(ctx, request.Email, request.Code)
	if err != nil {
		// infrastructure failure: the subscription stays pending
		log.Error().Err(err).Msg("verification check failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not verify"}
	}

	flow := newsletter.NewFlow()
	flow.SubmitEmail(request.Email)
	flow.SubmitCode(verified, time.Now())

	response := packets.VerifyResponse{
		Verified: verified,
		Status:   string(flow.Status),
		Message:  flow.Message,
	}
	if verified {
		response.DismissAfterMS = int(newsletter.DismissDelay.Milliseconds())
	}
	return api.Data(response), nil
}

// POST /api/public/newsletter-subscribers/resubscribe
func (n *NewsletterController) resubscribe(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ResubscribeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	sub, err := n.verification.Resubscribe(ctx, request.Email)
	if err != nil {
		switch {
		case errors.Is(err, newsletter.ErrInvalidEmail):
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid email address"}
		case errors.Is(err, newsletter.ErrNeverVerified):
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "email was never verified"}
		default:
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not resubscribe"}
		}
	}

	return api.Data(packets.SubscribeResponse{
		Status:  string(sub.Status),
		Message: "subscription reactivated",
	}), nil
}
