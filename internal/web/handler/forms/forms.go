// Package forms accepts submissions of admin defined forms.
package forms

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/form"
	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/filestore"
	"github.com/unilabvision/myuni/internal/i18n"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/web/handler"
)

const (
	// Path of the submit endpoint.
	Path = handler.APIPath + "/forms/submit"

	// MaxFiles is the number of files a submission may carry.
	MaxFiles = 5
	// MaxFileSize is the decoded size limit of one file.
	MaxFileSize = 5 << 20
	// MaxBodySize is the largest valid request: every file at the limit,
	// base64 encoded, plus room for the form fields.
	MaxBodySize = MaxFiles*((MaxFileSize+2)/3*4) + 1<<20
)

// Service is the forms handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	notifier mail.Notifier
	store    filestore.Store
	validate *validator.Validate
}

// Handler is the forms handler.
var Handler = Service{}

type fileUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

type submitRequest struct {
	FormConfigID handler.FlexID `json:"form_config_id"`
	FormData     map[string]any `json:"form_data"`
	Files        []fileUpload   `json:"files"`
	Lang         string         `json:"lang"`
}

// Init registers the submit route. store may be nil when uploads are disabled.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, notifier mail.Notifier, store filestore.Store) {
	if app == nil || cfg == nil || db == nil || notifier == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.notifier = notifier
	s.store = store
	s.validate = validator.New()

	app.Post(Path, s.Submit)
}

// Submit validates and stores a submission, then sends the notifications.
func (s *Service) Submit(c *fiber.Ctx) error {
	var in submitRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.Lang(c), i18n.InvalidRequest)
	}

	lang := handler.Lang(c, in.Lang)

	if in.FormConfigID == 0 {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.FormNotFound)
	}

	fc, err := form.GetActiveConfig(s.db, uint64(in.FormConfigID))
	if errors.Is(err, form.ErrFormNotFound) {
		return handler.Fail(c, fiber.StatusBadRequest, lang, i18n.FormNotFound)
	}

	if err != nil {
		log.Error().Err(err).Uint64("form_config_id", uint64(in.FormConfigID)).Msg("failed to load form config")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	if in.FormData == nil {
		in.FormData = map[string]any{}
	}

	if ferr := ValidateFields(s.validate, fc.Fields, in.FormData); ferr != nil {
		return handler.FailMessage(c, fiber.StatusBadRequest, ferr.Message(lang))
	}

	uploads, key := s.decodeFiles(in.Files)
	if key != "" {
		return handler.Fail(c, fiber.StatusBadRequest, lang, key)
	}

	sub := models.FormSubmission{
		FormConfigID:   fc.ID,
		Data:           in.FormData,
		SubmitterEmail: SubmitterEmail(fc.Fields, in.FormData),
		IP:             c.IP(),
	}

	for _, u := range uploads {
		stored, errStore := s.store.Put(c.UserContext(), u.name, u.contentType, u.data)
		if errStore != nil {
			log.Error().Err(errStore).Str("file", u.name).Uint64("form_config_id", fc.ID).Msg("failed to store form file")
			return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
		}

		sub.Files = append(sub.Files, stored)
	}

	if err = form.CreateSubmission(s.db, &sub); err != nil {
		log.Error().Err(err).Uint64("form_config_id", fc.ID).Msg("failed to save form submission")
		return handler.Fail(c, fiber.StatusInternalServerError, lang, i18n.InternalError)
	}

	emailSent := s.notify(c, fc, &sub, lang)

	return c.JSON(fiber.Map{
		"success":      true,
		"submissionId": sub.ID,
		"emailSent":    emailSent,
	})
}

type upload struct {
	name        string
	contentType string
	data        []byte
}

// decodeFiles decodes the base64 payloads. A non-empty key is the reason
// the files were rejected.
func (s *Service) decodeFiles(files []fileUpload) ([]upload, i18n.Key) {
	if len(files) == 0 {
		return nil, ""
	}

	if s.store == nil {
		return nil, i18n.FormUploadDisabled
	}

	if len(files) > MaxFiles {
		return nil, i18n.FormTooManyFiles
	}

	out := make([]upload, 0, len(files))

	for _, f := range files {
		raw := payload(f.Data)
		if base64.StdEncoding.DecodedLen(len(raw)) > MaxFileSize+3 {
			return nil, i18n.FormFileTooLarge
		}

		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil || len(data) == 0 {
			return nil, i18n.InvalidRequest
		}

		if len(data) > MaxFileSize {
			return nil, i18n.FormFileTooLarge
		}

		contentType := f.Type
		if contentType == "" {
			contentType = fiber.MIMEOctetStream
		}

		out = append(out, upload{name: f.Name, contentType: contentType, data: data})
	}

	return out, ""
}

// payload strips a data URL prefix from a base64 payload.
func payload(data string) string {
	if strings.HasPrefix(data, "data:") {
		if _, after, ok := strings.Cut(data, ","); ok {
			return after
		}
	}

	return strings.TrimSpace(data)
}

// recipients splits a comma separated address list.
func recipients(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}

	return out
}

// notify sends the notification and the optional confirmation. It reports
// whether the notification went out.
func (s *Service) notify(c *fiber.Ctx, fc *models.FormConfig, sub *models.FormSubmission, lang i18n.Lang) bool {
	ctx := c.UserContext()

	fields := make([]map[string]any, 0, len(fc.Fields))
	for _, f := range fc.Fields {
		fields = append(fields, map[string]any{"label": label(f), "value": display(sub.Data[f.Name])})
	}

	files := make([]map[string]any, 0, len(sub.Files))
	for _, f := range sub.Files {
		files = append(files, map[string]any{"name": f.Name, "url": f.URL, "size": f.Size})
	}

	data := map[string]any{
		"form_name":     fc.Name,
		"fields":        fields,
		"files":         files,
		"submission_id": sub.ID,
	}

	var err error
	if to := recipients(fc.NotifyEmail); len(to) > 0 {
		_, err = s.notifier.Send(ctx, mail.FormNotification, lang, to, data)
	} else {
		_, err = s.notifier.NotifyAdmins(ctx, mail.FormNotification, lang, data)
	}

	sent := err == nil
	if !sent {
		log.Warn().Err(err).Str("submission_id", sub.ID).Msg("form notification not sent")
	}

	if fc.SendConfirmation && sub.SubmitterEmail != "" {
		if _, errConfirm := s.notifier.Send(ctx, mail.FormConfirmation, lang, []string{sub.SubmitterEmail}, data); errConfirm != nil {
			log.Warn().Err(errConfirm).Str("submission_id", sub.ID).Msg("form confirmation not sent")
		}
	}

	if sent {
		if err = form.MarkEmailSent(s.db, sub.ID); err != nil {
			log.Error().Err(err).Str("submission_id", sub.ID).Msg("failed to flag form submission")
		}
	}

	return sent
}
