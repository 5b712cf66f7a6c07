package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"intake-backend/internal/events"
	"intake-backend/internal/export"
	"intake-backend/internal/models"
	"intake-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RecordStore is the persistence the intake handlers need.
type RecordStore interface {
	InsertWithDefaults(ctx context.Context, payload, defaults models.Payload) (uint, error)
	ListSummary(ctx context.Context) ([]models.PatientSummary, error)
	Get(ctx context.Context, id uint) (*models.PatientRecord, error)
	Delete(ctx context.Context, id uint) error
	SetFavorite(ctx context.Context, id uint, favorite bool) error
	ExportAll(ctx context.Context) ([]models.PatientRecord, error)
	Columns(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// MirrorWriter writes the secondary JSON copy of a submission.
type MirrorWriter interface {
	Write(payload models.Payload) (string, error)
}

// IntakeHandler serves the intake and admin endpoints.
type IntakeHandler struct {
	store  RecordStore
	mirror MirrorWriter
	events events.Publisher
	log    *logrus.Entry
	now    func() time.Time
}

// NewIntakeHandler wires the handlers to their collaborators. A nil publisher
// disables intake events.
func NewIntakeHandler(s RecordStore, m MirrorWriter, p events.Publisher, log *logrus.Entry) *IntakeHandler {
	if p == nil {
		p = events.NopPublisher{}
	}
	return &IntakeHandler{store: s, mirror: m, events: p, log: log, now: time.Now}
}

var errMissingBody = errors.New("request body must be a JSON object")

func (h *IntakeHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": msgNotFound})
	case store.IsValidation(err):
		message := msgInvalidValue
		if errors.Is(err, store.ErrNoValidFields) {
			message = msgNoValidFields
		}
		h.log.WithError(err).WithField("op", op).Debug("rejected payload")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
	default:
		h.log.WithError(err).WithField("op", op).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": err.Error(),
			"details": fmt.Sprintf("%+v", err),
		})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, msgInvalidID)
		return 0, false
	}
	return uint(id), true
}

func bindPayload(c *gin.Context) (models.Payload, error) {
	var payload models.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errMissingBody
	}
	return payload, nil
}

// Submit stores a new intake form, then mirrors it to a JSON file and
// announces it. Only the insert decides the response.
func (h *IntakeHandler) Submit(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	stamp := h.now().Format(models.TimestampLayout)
	id, err := h.store.InsertWithDefaults(c.Request.Context(), payload, models.Payload{models.ColTimestamp: stamp})
	if err != nil {
		h.respondError(c, "submit", err)
		return
	}

	if _, ok := payload[models.ColTimestamp]; !ok {
		payload[models.ColTimestamp] = stamp
	}
	log := h.log.WithField("id", id)
	if path, err := h.mirror.Write(payload); err != nil {
		log.WithError(err).Warn("mirror write failed")
	} else {
		log.WithField("file", path).Debug("mirror written")
	}

	event := events.IntakeEvent{ID: id}
	event.Name, _ = payload[models.ColName].(string)
	event.Timestamp, _ = payload[models.ColTimestamp].(string)
	if err := h.events.Publish(c.Request.Context(), event); err != nil {
		log.WithError(err).Warn("intake event not published")
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": msgSaved, "id": id})
}

// List returns the summary of every record, newest first.
func (h *IntakeHandler) List(c *gin.Context) {
	summaries, err := h.store.ListSummary(c.Request.Context())
	if err != nil {
		h.respondError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "pacientes": summaries})
}

// Detail returns one full record.
func (h *IntakeHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "detail", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "paciente": rec})
}

// Delete removes one record.
func (h *IntakeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "delete", err)
		return
	}
	h.log.WithField("id", id).Info("patient deleted")
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": msgDeleted})
}

// ToggleFavorite sets the favorite flag from a {"favorito": bool} body.
func (h *IntakeHandler) ToggleFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, err := bindPayload(c)
	if err != nil {
		badRequest(c, msgInvalidBody)
		return
	}
	raw, present := payload[models.ColFavorite]
	if !present {
		badRequest(c, msgMissingFavorite)
		return
	}
	fav, err := models.ParseFavorite(raw)
	if err != nil {
		badRequest(c, msgInvalidFavorite)
		return
	}

	if err := h.store.SetFavorite(c.Request.Context(), id, fav == 1); err != nil {
		h.respondError(c, "favorite", err)
		return
	}

	label := "não favorito"
	if fav == 1 {
		label = "favorito"
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Status de favorito atualizado para " + label})
}

// ExportCSV sends every record as a CSV attachment.
func (h *IntakeHandler) ExportCSV(c *gin.Context) {
	ctx := c.Request.Context()
	records, err := h.store.ExportAll(ctx)
	if err != nil {
		h.respondError(c, "export", err)
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": msgNothingToExport})
		return
	}
	columns, err := h.store.Columns(ctx)
	if err != nil {
		h.respondError(c, "export", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, columns, records); err != nil {
		h.respondError(c, "export", errors.Wrap(err, "write csv"))
		return
	}
	c.Header("Content-Disposition", "attachment;filename="+export.FileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ReadProbe answers liveness checks after pinging the database.
func (h *IntakeHandler) ReadProbe(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "probe success"})
}
