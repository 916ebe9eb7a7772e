package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"log-journal-system/internal/model"
	"log-journal-system/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LogHandler struct {
	store *service.LogStore
	media *service.MediaIntake
}

func NewLogHandler(store *service.LogStore, media *service.MediaIntake) *LogHandler {
	return &LogHandler{store: store, media: media}
}

// createBody is the non-multipart form of a create request (JSON or
// urlencoded); it carries no media.
type createBody struct {
	Type    *string `json:"type" form:"type"`
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
}

// HandleListLogs returns every log, newest first.
func (h *LogHandler) HandleListLogs(c *fiber.Ctx) error {
	logs, err := h.store.ListAll(c.UserContext())
	if err != nil {
		log.Printf("list logs: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "success",
		"data":    logs,
	})
}

// HandleCreateLog stores the optional media file first and then inserts the
// log. Nothing is inserted when the upload is rejected.
func (h *LogHandler) HandleCreateLog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		input model.LogInput
		form  *multipart.Form
	)
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		var err error
		form, err = c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"msg": "Error: malformed multipart form",
			})
		}
		input = inputFromForm(form.Value)
	} else {
		body := new(createBody)
		if err := c.BodyParser(body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"msg": "Error: invalid request body",
			})
		}
		input = model.LogInput{Title: body.Title, Content: body.Content}
		if body.Type != nil {
			input.Type = *body.Type
		}
	}

	if strings.TrimSpace(input.Type) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Error: type is required",
		})
	}

	mediaURL, err := h.media.Accept(ctx, form)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"msg": verr.Msg,
			})
		}
		log.Printf("store media: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	input.MediaURL = mediaURL

	entry, err := h.store.Insert(ctx, input)
	if err != nil {
		log.Printf("insert log: %v", err)
		if mediaURL != nil {
			if rmErr := h.media.Discard(ctx, *mediaURL); rmErr != nil {
				log.Printf("discard media %s: %v", *mediaURL, rmErr)
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "success",
		"data":    entry,
	})
}

// HandleDeleteLog removes a log by id. The media file it references stays
// on disk, and a missing id is reported as zero changes.
func (h *LogHandler) HandleDeleteLog(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid log id",
		})
	}

	changes, err := h.store.DeleteByID(c.UserContext(), id)
	if err != nil {
		log.Printf("delete log %d: %v", id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "deleted",
		"changes": changes,
	})
}

func inputFromForm(values map[string][]string) model.LogInput {
	input := model.LogInput{
		Title:   formValue(values, "title"),
		Content: formValue(values, "content"),
	}
	if t := formValue(values, "type"); t != nil {
		input.Type = *t
	}
	return input
}

// formValue distinguishes an absent field (nil) from an empty one.
func formValue(values map[string][]string, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}
