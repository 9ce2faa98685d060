package routes

import (
	"errors"
	"io"
	"net/http"

	"github.com/mbolis/event-intake/app"
	"github.com/mbolis/event-intake/database"
	"github.com/mbolis/event-intake/forms"
	"github.com/mbolis/event-intake/httpx"
	"github.com/mbolis/event-intake/log"
	"github.com/mbolis/event-intake/metrics"
)

// SubmitForm validates a registration for form and persists it as one row.
func SubmitForm(app app.App, form *forms.FormSchema) http.HandlerFunc {
	code := form.Name

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			metrics.CountSubmission(form.Name, "method")
			httpx.LogStatusMsg(w, r, http.StatusMethodNotAllowed, log.DebugLevel, code+".method", "Método não permitido")
			return
		}
		if app.Gateway == nil {
			metrics.CountSubmission(form.Name, "config")
			httpx.LogStatusMsg(w, r, http.StatusInternalServerError, log.ErrorLevel, code+".config", "Configurações do banco de dados ausentes")
			return
		}

		log.WithFields(log.Fields{"form": form.Name, "ip": r.RemoteAddr}).Debug("submission received")

		body, err := io.ReadAll(r.Body)
		if err != nil {
			// an unreadable body counts as no data
			log.Debugf("%s.read_body: %s", code, err)
			body = nil
		}
		payload := forms.ParsePayload(r.Header.Get("Content-Type"), body)

		submission, err := form.Validate(payload)
		if err != nil {
			var verr *forms.ValidationError
			if !errors.As(err, &verr) {
				httpx.LogInternalError(w, r, code+".validate", "Erro interno do servidor", err)
				return
			}
			level := log.DebugLevel
			if verr.Reason == forms.ReasonSpam {
				level = log.WarnLevel
			}
			metrics.CountSubmission(form.Name, string(verr.Reason))
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, level, code+"."+string(verr.Reason), "%s", verr.Message)
			return
		}

		id, err := app.Gateway.Insert(r.Context(), form.Table, form.BuildRow(submission))
		if err != nil {
			msg := "Erro ao salvar dados no banco"
			var derr *database.Error
			if errors.As(err, &derr) {
				msg = derr.Message
			}
			metrics.CountSubmission(form.Name, "db")
			httpx.LogInternalError(w, r, code+".db.insert", msg, err)
			return
		}

		metrics.CountSubmission(form.Name, "ok")
		httpx.Success(w, r, code+".db.insert", form.Messages.Success, id)
	}
}
