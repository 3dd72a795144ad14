package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/muthuvel/santhai/app/jobs"
	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/queue"
	"github.com/muthuvel/santhai/pkg/response"
	"gorm.io/gorm"
)

// CampaignInput is the admin campaign form. ScheduledAt in the future
// schedules the send; absent means the campaign waits for an explicit
// send action.
type CampaignInput struct {
	Name           string     `json:"name" validate:"required,min=2,max=200"`
	Type           string     `json:"type" validate:"required,in=email,whatsapp,both"`
	TargetAudience string     `json:"target_audience" validate:"required,in=all,active,inactive"`
	Subject        string     `json:"subject" validate:"nullable,max=200"`
	Message        string     `json:"message" validate:"required"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
}

// AdminCampaignController manages marketing campaigns. Admin-only.
type AdminCampaignController struct {
	campaigns *services.CampaignService
}

func NewAdminCampaignController(campaigns *services.CampaignService) *AdminCampaignController {
	return &AdminCampaignController{campaigns: campaigns}
}

func (c *AdminCampaignController) Index(w http.ResponseWriter, r *http.Request) {
	list, err := c.campaigns.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("campaigns list", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load campaigns")
		return
	}
	response.Success(w, list)
}

func (c *AdminCampaignController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	campaign, err := c.campaigns.Campaign(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load campaign")
		return
	}
	response.Success(w, campaign)
}

func (c *AdminCampaignController) Create(w http.ResponseWriter, r *http.Request) {
	var in CampaignInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actorID, _ := middleware.UserIDFromCtx(r)
	campaign := models.Campaign{
		Name:           in.Name,
		Type:           in.Type,
		TargetAudience: in.TargetAudience,
		Subject:        in.Subject,
		Message:        in.Message,
		ScheduledAt:    in.ScheduledAt,
		CreatedBy:      actorID,
	}
	if err := c.campaigns.Create(&campaign); err != nil {
		logger.WithCtx(r.Context()).Error("campaign create", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create campaign")
		return
	}
	response.Created(w, campaign)
}

// Send queues the campaign for immediate delivery.
func (c *AdminCampaignController) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	campaign, err := c.campaigns.Campaign(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load campaign")
		return
	}
	if campaign.Status == models.CampaignStatusSent {
		response.Error(w, http.StatusConflict, "Campaign already sent")
		return
	}

	if err := queue.Dispatch(&jobs.CampaignSendJob{CampaignID: id}); err != nil {
		logger.WithCtx(r.Context()).Error("campaign send", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not queue campaign")
		return
	}
	response.Success(w, map[string]string{"message": "Campaign queued for sending"})
}
